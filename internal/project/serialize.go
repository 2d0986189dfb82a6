package project

import (
	"encoding/json"
	"fmt"

	"cropaway/internal/crop"
	"cropaway/internal/geometry"
)

// The state record is the JSON shape stored in the keyframes table. Fields
// for inactive modes are omitted; absent fields decode to the mode defaults.
type stateRecord struct {
	CropRect       *rectRecord    `json:"crop_rect,omitempty"`
	CircleCenter   *pointRecord   `json:"circle_center,omitempty"`
	CircleRadius   *float64       `json:"circle_radius,omitempty"`
	FreehandPoints []pointRecord  `json:"freehand_points,omitempty"`
	FreehandPath   []vertexRecord `json:"freehand_path,omitempty"`
	AIBoundingBox  *rectRecord    `json:"ai_bounding_box,omitempty"`
	AIMask         []byte         `json:"ai_mask,omitempty"`
	AIPrompt       string         `json:"ai_prompt,omitempty"`
}

type rectRecord struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type pointRecord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type vertexRecord struct {
	Position   pointRecord  `json:"position"`
	ControlIn  *pointRecord `json:"control_in,omitempty"`
	ControlOut *pointRecord `json:"control_out,omitempty"`
}

func rectToRecord(r geometry.Rect) *rectRecord {
	return &rectRecord{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func recordToRect(r *rectRecord) geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func pointToRecord(p geometry.Point) pointRecord {
	return pointRecord{X: p.X, Y: p.Y}
}

func recordToPoint(p pointRecord) geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

func encodeState(state crop.State) (string, error) {
	record := stateRecord{
		CropRect:     rectToRecord(state.Rect),
		CircleCenter: func() *pointRecord { p := pointToRecord(state.CircleCenter); return &p }(),
		CircleRadius: &state.CircleRadius,
		AIPrompt:     state.AIPrompt,
	}
	record.AIBoundingBox = rectToRecord(state.AIBox)
	if len(state.AIMask) > 0 {
		record.AIMask = state.AIMask
	}
	for _, p := range state.FreehandPoints {
		record.FreehandPoints = append(record.FreehandPoints, pointToRecord(p))
	}
	for _, v := range state.FreehandPath {
		vertex := vertexRecord{Position: pointToRecord(v.Position)}
		if v.HasControlIn {
			in := pointToRecord(v.ControlIn)
			vertex.ControlIn = &in
		}
		if v.HasControlOut {
			out := pointToRecord(v.ControlOut)
			vertex.ControlOut = &out
		}
		record.FreehandPath = append(record.FreehandPath, vertex)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal crop state: %w", err)
	}
	return string(data), nil
}

func decodeState(raw string) (crop.State, error) {
	var record stateRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return crop.State{}, fmt.Errorf("unmarshal crop state: %w", err)
	}

	state := crop.Default()
	if record.CropRect != nil {
		state.Rect = recordToRect(record.CropRect)
	}
	if record.CircleCenter != nil {
		state.CircleCenter = recordToPoint(*record.CircleCenter)
	}
	if record.CircleRadius != nil {
		state.CircleRadius = *record.CircleRadius
	}
	if record.AIBoundingBox != nil {
		state.AIBox = recordToRect(record.AIBoundingBox)
	}
	if len(record.AIMask) > 0 {
		state.AIMask = append([]byte(nil), record.AIMask...)
	}
	state.AIPrompt = record.AIPrompt
	for _, p := range record.FreehandPoints {
		state.FreehandPoints = append(state.FreehandPoints, recordToPoint(p))
	}
	for _, v := range record.FreehandPath {
		vertex := crop.PathVertex{Position: recordToPoint(v.Position)}
		if v.ControlIn != nil {
			vertex.ControlIn = recordToPoint(*v.ControlIn)
			vertex.HasControlIn = true
		}
		if v.ControlOut != nil {
			vertex.ControlOut = recordToPoint(*v.ControlOut)
			vertex.HasControlOut = true
		}
		state.FreehandPath = append(state.FreehandPath, vertex)
	}
	return state, nil
}
