package voiceio

import (
	"os"
	"path/filepath"
	"testing"
)

func writeVoice(t *testing.T, dir, name, body string) {
	t.Helper()
	d := filepath.Join(dir, name)
	if err := os.MkdirAll(d, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(d, "voice.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingDirYieldsEmptyMap(t *testing.T) {
	profiles, results, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 || results != nil {
		t.Fatalf("expected empty load, got profiles=%v results=%v", profiles, results)
	}
}

func TestLoadParsesSubfolders(t *testing.T) {
	dir := t.TempDir()
	writeVoice(t, dir, "diego", `
name: Diego
gender: male
accent: spanish
base_pitch: 105.0
formant_scale: 1.15
duration_scale: 1.0
noise_level: 0.30
brightness: -0.15
description: "Diego: young adult male"
`)

	profiles, results, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("unexpected load results: %+v", results)
	}
	p, ok := profiles["Diego"]
	if !ok {
		t.Fatalf("expected profile keyed by name, got %v", profiles)
	}
	if p.BasePitch != 105.0 || p.FormantScale != 1.15 {
		t.Fatalf("unexpected profile fields: %+v", p)
	}
}

func TestLoadReportsPerVoiceFailureWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	writeVoice(t, dir, "good", `
name: Good
base_pitch: 120
formant_scale: 1.0
duration_scale: 1.0
noise_level: 0.3
brightness: 0
`)
	// "bad" has base_pitch 0 -> fails Validate.
	writeVoice(t, dir, "bad", `
name: Bad
base_pitch: 0
formant_scale: 1.0
duration_scale: 1.0
noise_level: 0.3
brightness: 0
`)

	profiles, results, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected exactly one good profile, got %v", profiles)
	}
	var sawFailure bool
	for _, r := range results {
		if r.Err != nil {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Fatal("expected one load result to report an error")
	}
}
