package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTeam reads and parses a team YAML file, then validates it.
func LoadTeam(path string) (*Team, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open team file %s: %w", path, err)
	}
	defer f.Close()

	var t Team
	if err := yaml.NewDecoder(f).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode team file %s: %w", path, err)
	}

	if t.Batters == nil {
		t.Batters = make([]Batter, 0)
	}
	if t.Pitchers == nil {
		t.Pitchers = make([]Pitcher, 0)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// FindTeam resolves a team by short code or name within a directory of
// team files. Matching is case-insensitive on the short code first, then
// the file stem.
func FindTeam(dir, key string) (*Team, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read teams dir %s: %w", dir, err)
	}

	key = strings.ToLower(key)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".yaml")
		if strings.ToLower(stem) != key {
			continue
		}
		return LoadTeam(filepath.Join(dir, e.Name()))
	}

	// Fall back to scanning file contents for a short-code match.
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		t, err := LoadTeam(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		if strings.ToLower(t.Short) == key {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no team %q in %s", ErrBadTeamFile, key, dir)
}
