// Package voice defines the immutable speaker profile consumed by the
// prosody generator and the formant synthesizer.
package voice

import "fmt"

// Profile parameterizes one speaker. Once bound to a Synth instance it
// is never mutated — hot-swapping a voice means constructing a fresh
// Synth (see internal/synth).
type Profile struct {
	Name        string `yaml:"name"`
	Gender      string `yaml:"gender"`
	Accent      string `yaml:"accent"`
	BasePitch   float64 `yaml:"base_pitch"`
	FormantScale float64 `yaml:"formant_scale"`
	DurationScale float64 `yaml:"duration_scale"`
	NoiseLevel  float64 `yaml:"noise_level"`
	Brightness  float64 `yaml:"brightness"`
	Description string `yaml:"description"`
}

// Validate reports a ConfigError-class problem if the profile is
// unusable for synthesis (spec.md §7 ConfigError).
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("voice profile: name is required")
	}
	if p.BasePitch <= 0 {
		return fmt.Errorf("voice profile %q: base_pitch must be positive, got %v", p.Name, p.BasePitch)
	}
	if p.FormantScale <= 0 {
		return fmt.Errorf("voice profile %q: formant_scale must be positive, got %v", p.Name, p.FormantScale)
	}
	if p.DurationScale <= 0 {
		return fmt.Errorf("voice profile %q: duration_scale must be positive, got %v", p.Name, p.DurationScale)
	}
	if p.NoiseLevel < 0 || p.NoiseLevel > 1 {
		return fmt.Errorf("voice profile %q: noise_level must be in [0,1], got %v", p.Name, p.NoiseLevel)
	}
	if p.Brightness < -1 || p.Brightness > 1 {
		return fmt.Errorf("voice profile %q: brightness must be in [-1,1], got %v", p.Name, p.Brightness)
	}
	return nil
}

// Default returns a neutral profile usable when no voices directory is
// found, so a caller always has something to fall back to.
func Default() Profile {
	return Profile{
		Name:          "default",
		Gender:        "neutral",
		Accent:        "neutral",
		BasePitch:     125,
		FormantScale:  1.0,
		DurationScale: 1.0,
		NoiseLevel:    0.35,
		Brightness:    0.0,
		Description:   "Neutral fallback voice.",
	}
}
