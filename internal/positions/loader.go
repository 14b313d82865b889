package positions

import (
	"fmt"
	"os"
	"sort"

	"github.com/yildizm/TalentTrack/internal/config"
)

// Loader resolves position templates from the embedded defaults and
// any user-configured directories. Later sources override earlier
// ones by name, so user templates shadow the built-ins.
type Loader struct {
	cfg config.PositionsConfig
}

func NewLoader(cfg config.PositionsConfig) *Loader {
	return &Loader{cfg: cfg}
}

// Load returns all known positions sorted by name
func (l *Loader) Load() ([]*Position, error) {
	byName := make(map[string]*Position)

	if l.cfg.EnableDefaults {
		defaults, err := LoadDefaults()
		if err != nil {
			return nil, err
		}
		for _, p := range defaults {
			byName[p.Name] = p
		}
	}

	for _, dir := range l.cfg.Directories {
		expanded := config.ExpandPath(dir)
		if _, err := os.Stat(expanded); os.IsNotExist(err) {
			continue
		}
		loaded, err := LoadFromDirectory(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to load positions from %s: %w", dir, err)
		}
		for _, p := range loaded {
			if err := p.Validate(); err != nil {
				continue // Skip malformed entries
			}
			byName[p.Name] = p
		}
	}

	positions := make([]*Position, 0, len(byName))
	for _, p := range byName {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Name < positions[j].Name
	})
	return positions, nil
}

// Find returns the position with the given name
func (l *Loader) Find(name string) (*Position, error) {
	positions, err := l.Load()
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown position %q", name)
}
