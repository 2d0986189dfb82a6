package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cropaway/internal/crop"
)

const clipColumns = "id, name, source_path, duration_seconds, crop_mode, keyframing_enabled, created_at, updated_at"

// NewClip inserts a clip with the given name and source path. The clip
// starts in rectangle mode with keyframing disabled.
func (s *Store) NewClip(ctx context.Context, name, sourcePath string, duration float64) (*Clip, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO clips (
            name, source_path, duration_seconds, crop_mode, keyframing_enabled,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name,
		nullableString(sourcePath),
		duration,
		crop.ModeRectangle,
		0,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert clip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetClip(ctx, id)
}

// GetClip fetches a clip by identifier. A missing clip returns (nil, nil).
func (s *Store) GetClip(ctx context.Context, id int64) (*Clip, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clipColumns+` FROM clips WHERE id = ?`, id)
	clip, err := scanClip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get clip: %w", err)
	}
	return clip, nil
}

// ListClips returns all clips ordered by creation time.
func (s *Store) ListClips(ctx context.Context) ([]*Clip, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+clipColumns+` FROM clips ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	defer rows.Close()

	var clips []*Clip
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, rows.Err()
}

// UpdateClip persists changes to an existing clip.
func (s *Store) UpdateClip(ctx context.Context, clip *Clip) error {
	if clip == nil {
		return errors.New("clip is nil")
	}
	if !clip.Mode.Valid() {
		return fmt.Errorf("unknown crop mode %q", clip.Mode)
	}
	clip.UpdatedAt = time.Now().UTC()
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE clips
         SET name = ?, source_path = ?, duration_seconds = ?, crop_mode = ?,
             keyframing_enabled = ?, updated_at = ?
         WHERE id = ?`,
		clip.Name,
		nullableString(clip.SourcePath),
		clip.Duration,
		clip.Mode,
		boolToInt(clip.KeyframingEnabled),
		clip.UpdatedAt.Format(time.RFC3339Nano),
		clip.ID,
	); err != nil {
		return fmt.Errorf("update clip: %w", err)
	}
	return nil
}

// DeleteClip removes a clip and, through the foreign key cascade, its
// keyframes. It reports whether a row was deleted.
func (s *Store) DeleteClip(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM clips WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete clip: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanClip(scanner interface{ Scan(dest ...any) error }) (*Clip, error) {
	var (
		id         int64
		name       string
		sourcePath sql.NullString
		duration   sql.NullFloat64
		modeStr    string
		keyframing sql.NullInt64
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&sourcePath,
		&duration,
		&modeStr,
		&keyframing,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	clip := &Clip{
		ID:         id,
		Name:       name,
		SourcePath: sourcePath.String,
		Duration:   duration.Float64,
		Mode:       crop.Mode(modeStr),
	}
	if keyframing.Valid {
		clip.KeyframingEnabled = keyframing.Int64 != 0
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		clip.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		clip.UpdatedAt = updated
	}
	return clip, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
