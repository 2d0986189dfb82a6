package project

import (
	"time"

	"cropaway/internal/crop"
)

// Clip is a video clip persisted in SQLite. Each clip owns one keyframe
// track and a crop mode.
type Clip struct {
	ID                int64
	Name              string
	SourcePath        string
	Duration          float64
	Mode              crop.Mode
	KeyframingEnabled bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
