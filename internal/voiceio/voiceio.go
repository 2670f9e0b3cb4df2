// Package voiceio implements the external "voice-profile source"
// collaborator from spec.md §6: a directory of subfolders, each holding
// one YAML record describing a speaker. A missing directory is not an
// error — it yields an empty map so the caller can fall back to
// voice.Default — and a bad subfolder is reported per-voice instead of
// aborting the whole scan. Any other failure to read the directory
// itself is returned as an error.
package voiceio

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hubenschmidt/klatt-tts/internal/voice"
)

// LoadResult reports the outcome of loading one voice subfolder.
type LoadResult struct {
	Dir  string
	Name string
	Err  error
}

// Load walks dir's immediate subfolders, parses the single *.yaml file
// in each as a voice.Profile, and returns the profiles keyed by name
// plus a per-subfolder load report. A missing dir is not an error.
func Load(dir string) (map[string]voice.Profile, []LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]voice.Profile{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("voiceio: read dir %s: %w", dir, err)
	}

	profiles := make(map[string]voice.Profile)
	var results []LoadResult

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		p, loadErr := loadOne(sub)
		results = append(results, LoadResult{Dir: sub, Name: p.Name, Err: loadErr})
		if loadErr != nil {
			continue
		}
		profiles[p.Name] = p
	}

	return profiles, results, nil
}

func loadOne(dir string) (voice.Profile, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return voice.Profile{}, fmt.Errorf("glob %s: %w", dir, err)
	}
	if len(matches) == 0 {
		matches, err = filepath.Glob(filepath.Join(dir, "*.yml"))
		if err != nil {
			return voice.Profile{}, fmt.Errorf("glob %s: %w", dir, err)
		}
	}
	if len(matches) == 0 {
		return voice.Profile{}, fmt.Errorf("voiceio: no voice file in %s", dir)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return voice.Profile{}, fmt.Errorf("voiceio: read %s: %w", matches[0], err)
	}

	var p voice.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return voice.Profile{}, fmt.Errorf("voiceio: parse %s: %w", matches[0], err)
	}
	if err := p.Validate(); err != nil {
		return voice.Profile{}, err
	}
	return p, nil
}

// SearchDirs enumerates the directories searched for voices, in order,
// per spec.md §6.
var SearchDirs = []string{"voices", "./voices", "../voices"}

// Find runs Load over SearchDirs and returns the first directory that
// exists, along with its loaded profiles.
func Find() (map[string]voice.Profile, []LoadResult, error) {
	for _, dir := range SearchDirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		return Load(dir)
	}
	return map[string]voice.Profile{}, nil, nil
}
