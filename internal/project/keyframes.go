package project

import (
	"context"
	"fmt"

	"cropaway/internal/keyframe"
)

// SaveTrack replaces the persisted keyframes of a clip with the contents of
// the given track. The swap is transactional so a failed save never leaves a
// partial timeline behind.
func (s *Store) SaveTrack(ctx context.Context, clipID int64, track *keyframe.Track) error {
	ctx = ensureContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM keyframes WHERE clip_id = ?`, clipID); err != nil {
		return fmt.Errorf("clear keyframes: %w", err)
	}

	if track != nil {
		for _, kf := range track.Keyframes() {
			stateJSON, err := encodeState(kf.State)
			if err != nil {
				return fmt.Errorf("encode keyframe %s: %w", kf.ID, err)
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO keyframes (id, clip_id, timestamp_seconds, curve, state_json)
                 VALUES (?, ?, ?, ?, ?)`,
				kf.ID,
				clipID,
				kf.Timestamp,
				kf.Curve,
				stateJSON,
			); err != nil {
				return fmt.Errorf("insert keyframe %s: %w", kf.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadTrack reconstructs a clip's keyframe track, ordered by timestamp. A
// clip with no keyframes yields an empty track.
func (s *Store) LoadTrack(ctx context.Context, clipID int64) (*keyframe.Track, error) {
	ctx = ensureContext(ctx)

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, timestamp_seconds, curve, state_json
         FROM keyframes WHERE clip_id = ? ORDER BY timestamp_seconds`,
		clipID,
	)
	if err != nil {
		return nil, fmt.Errorf("query keyframes: %w", err)
	}
	defer rows.Close()

	var keyframes []keyframe.Keyframe
	for rows.Next() {
		var (
			id        string
			timestamp float64
			curveStr  string
			stateJSON string
		)
		if err := rows.Scan(&id, &timestamp, &curveStr, &stateJSON); err != nil {
			return nil, fmt.Errorf("scan keyframe: %w", err)
		}
		state, err := decodeState(stateJSON)
		if err != nil {
			return nil, fmt.Errorf("decode keyframe %s: %w", id, err)
		}
		curve, err := keyframe.ParseCurve(curveStr)
		if err != nil {
			curve = keyframe.CurveLinear
		}
		keyframes = append(keyframes, keyframe.Keyframe{
			ID:        id,
			Timestamp: timestamp,
			Curve:     curve,
			State:     state,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keyframes: %w", err)
	}

	return keyframe.FromKeyframes(keyframes, s.tolerance), nil
}
