package project

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cropaway/internal/crop"
	"cropaway/internal/keyframe"
	"cropaway/internal/services"
)

// scenarioVersion tags the YAML document format.
const scenarioVersion = "1"

// Scenario is the YAML exchange document for one or more clips and their
// keyframe timelines.
type Scenario struct {
	Version string    `yaml:"version"`
	Clips   []ClipDoc `yaml:"clips"`
}

// ClipDoc is one clip inside a scenario document.
type ClipDoc struct {
	Name       string        `yaml:"name"`
	SourcePath string        `yaml:"source,omitempty"`
	Duration   float64       `yaml:"duration"`
	Mode       string        `yaml:"mode"`
	Keyframing bool          `yaml:"keyframing"`
	Keyframes  []KeyframeDoc `yaml:"keyframes"`
}

// KeyframeDoc is one keyframe inside a scenario document. The state fields
// mirror the persisted JSON record.
type KeyframeDoc struct {
	Time  float64 `yaml:"time"`
	Curve string  `yaml:"curve"`
	State string  `yaml:"state"`
}

// ExportScenario collects a clip and its track into a scenario document.
func (s *Store) ExportScenario(ctx context.Context, clipIDs ...int64) (*Scenario, error) {
	scenario := &Scenario{Version: scenarioVersion}
	for _, clipID := range clipIDs {
		clip, err := s.GetClip(ctx, clipID)
		if err != nil {
			return nil, err
		}
		if clip == nil {
			return nil, services.Wrap(services.ErrNotFound, "project", "export", fmt.Sprintf("clip %d not found", clipID), nil)
		}
		track, err := s.LoadTrack(ctx, clipID)
		if err != nil {
			return nil, err
		}

		doc := ClipDoc{
			Name:       clip.Name,
			SourcePath: clip.SourcePath,
			Duration:   clip.Duration,
			Mode:       string(clip.Mode),
			Keyframing: clip.KeyframingEnabled,
		}
		for _, kf := range track.Keyframes() {
			stateJSON, err := encodeState(kf.State)
			if err != nil {
				return nil, err
			}
			doc.Keyframes = append(doc.Keyframes, KeyframeDoc{
				Time:  kf.Timestamp,
				Curve: string(kf.Curve),
				State: stateJSON,
			})
		}
		scenario.Clips = append(scenario.Clips, doc)
	}
	return scenario, nil
}

// ImportScenario creates clips and tracks from a scenario document and
// returns the new clips in document order.
func (s *Store) ImportScenario(ctx context.Context, scenario *Scenario) ([]*Clip, error) {
	if scenario == nil {
		return nil, services.Wrap(services.ErrValidation, "project", "import", "scenario is nil", nil)
	}

	var clips []*Clip
	for _, doc := range scenario.Clips {
		mode, err := crop.ParseMode(doc.Mode)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "project", "import", fmt.Sprintf("clip %q", doc.Name), err)
		}

		clip, err := s.NewClip(ctx, doc.Name, doc.SourcePath, doc.Duration)
		if err != nil {
			return nil, err
		}
		clip.Mode = mode
		clip.KeyframingEnabled = doc.Keyframing
		if err := s.UpdateClip(ctx, clip); err != nil {
			return nil, err
		}

		track := keyframe.FromKeyframes(nil, s.tolerance)
		for _, kfDoc := range doc.Keyframes {
			state, err := decodeState(kfDoc.State)
			if err != nil {
				return nil, services.Wrap(services.ErrValidation, "project", "import", fmt.Sprintf("clip %q keyframe at %g", doc.Name, kfDoc.Time), err)
			}
			curve, err := keyframe.ParseCurve(kfDoc.Curve)
			if err != nil {
				return nil, services.Wrap(services.ErrValidation, "project", "import", fmt.Sprintf("clip %q keyframe at %g", doc.Name, kfDoc.Time), err)
			}
			if _, ok := track.Insert(kfDoc.Time, state, curve, keyframe.Reject); !ok {
				return nil, services.Wrap(services.ErrConflict, "project", "import", fmt.Sprintf("clip %q has colliding keyframes at %g", doc.Name, kfDoc.Time), nil)
			}
		}
		if err := s.SaveTrack(ctx, clip.ID, track); err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

// WriteScenario writes a scenario document to a YAML file.
func WriteScenario(scenario *Scenario, path string) error {
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

// ReadScenario reads a scenario document from a YAML file.
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("unmarshal scenario: %w", err)
	}
	return &scenario, nil
}
