package config

import (
	"encoding/json"
	"log"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/voltember/stormbolt/internal/lsystem"
)

// Hard limits on the live-tunable parameters. The UI clamps against these
// before any generator sees a value.
const (
	MaxBoltDepth        = 10
	MinScale            = 1e-4
	MaxDisplacement     = 5.0
	MinEmissionInterval = 0.001
)

type Settings struct {
	MaxDepth          int          `json:"max_depth"`
	Displacement      float32      `json:"displacement"`
	BranchChance      float32      `json:"branch_chance"`
	LSystemIterations int          `json:"lsystem_iterations"`
	SegmentLength     float32      `json:"segment_length"`
	AngleVariance     float32      `json:"angle_variance"`
	ProbFF            float32      `json:"prob_ff"`
	ProbPlus          float32      `json:"prob_plus"`
	ProbMinus         float32      `json:"prob_minus"`
	Color             [3]float32   `json:"color"`
	EmissionInterval  float32      `json:"emission_interval"`
	ParticleLifetime  float32      `json:"particle_lifetime"`
	ParticleMinSpeed  float32      `json:"particle_min_speed"`
	ParticleMaxSpeed  float32      `json:"particle_max_speed"`
	Anchors           [][3]float32 `json:"anchors"`
}

func DefaultSettings() *Settings {
	return &Settings{
		MaxDepth:          5,
		Displacement:      0.5,
		BranchChance:      0.3,
		LSystemIterations: 2,
		SegmentLength:     0.08,
		AngleVariance:     30,
		ProbFF:            0.5,
		ProbPlus:          0.25,
		ProbMinus:         0.25,
		Color:             [3]float32{1, 1, 1},
		EmissionInterval:  0.05,
		ParticleLifetime:  1.2,
		ParticleMinSpeed:  0.05,
		ParticleMaxSpeed:  0.3,
		Anchors: [][3]float32{
			{-0.5, 0.8, 0},
			{0.5, -0.8, 0},
		},
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "stormbolt")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaults := DefaultSettings()
			log.Printf("Creating default settings file at %s", settingsPath)
			if err := SaveSettings(defaults); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaults, nil
		}
		return nil, err
	}

	settings, err := ParseSettings(data)
	if err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return DefaultSettings(), nil
	}
	return settings, nil
}

// ParseSettings decodes raw JSON on top of the defaults, warns about
// unrecognised keys and clamps every value into its legal range.
func ParseSettings(data []byte) (*Settings, error) {
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		return nil, err
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	settings.Validate()
	return settings, nil
}

func SaveSettings(settings *Settings) error {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(settingsPath, data, 0644)
}

// Validate clamps every parameter into its legal range, logging anything it
// had to change. Out-of-range values only come from hand-edited settings
// files; the in-process controls already clamp.
func (s *Settings) Validate() {
	clampInt(&s.MaxDepth, 0, MaxBoltDepth, "max_depth")
	clampFloat(&s.Displacement, MinScale, MaxDisplacement, "displacement")
	clampFloat(&s.BranchChance, 0, 1, "branch_chance")
	clampInt(&s.LSystemIterations, 0, lsystem.MaxIterations, "lsystem_iterations")
	clampFloat(&s.SegmentLength, MinScale, 1, "segment_length")
	clampFloat(&s.AngleVariance, 0, 180, "angle_variance")
	for i := range s.Color {
		clampFloat(&s.Color[i], 0, 1, "color")
	}
	clampFloat(&s.EmissionInterval, MinEmissionInterval, 10, "emission_interval")
	clampFloat(&s.ParticleLifetime, MinScale, 30, "particle_lifetime")
	clampFloat(&s.ParticleMinSpeed, 0, 10, "particle_min_speed")
	clampFloat(&s.ParticleMaxSpeed, s.ParticleMinSpeed, 10, "particle_max_speed")

	sum := s.ProbFF + s.ProbPlus + s.ProbMinus
	if sum <= 0 {
		defaults := DefaultSettings()
		log.Printf("Invalid rule probabilities (sum %.3f), using defaults", sum)
		s.ProbFF, s.ProbPlus, s.ProbMinus = defaults.ProbFF, defaults.ProbPlus, defaults.ProbMinus
	} else if math.Abs(float64(sum)-1) > 1e-3 {
		log.Printf("Rule probabilities sum to %.3f, renormalising", sum)
		s.ProbFF /= sum
		s.ProbPlus /= sum
		s.ProbMinus /= sum
	}

	if len(s.Anchors) < 2 {
		log.Printf("Need at least two anchors, using defaults")
		s.Anchors = DefaultSettings().Anchors
	}
}

func clampFloat(v *float32, lo, hi float32, name string) {
	if *v < lo {
		log.Printf("Clamping %s from %.4f to %.4f", name, *v, lo)
		*v = lo
	} else if *v > hi {
		log.Printf("Clamping %s from %.4f to %.4f", name, *v, hi)
		*v = hi
	}
}

func clampInt(v *int, lo, hi int, name string) {
	if *v < lo {
		log.Printf("Clamping %s from %d to %d", name, *v, lo)
		*v = lo
	} else if *v > hi {
		log.Printf("Clamping %s from %d to %d", name, *v, hi)
		*v = hi
	}
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
