package positions

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

//go:embed embedded_positions.yaml
var defaultPositionsYAML []byte

// Position is a reusable job definition used to build match and bias
// requests without retyping the description each time
type Position struct {
	Name           string   `yaml:"name" json:"name"`
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description" json:"description"`
	RequiredSkills []string `yaml:"required_skills,omitempty" json:"required_skills,omitempty"`
	JobID          string   `yaml:"job_id,omitempty" json:"job_id,omitempty"`
	Tags           []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Validate checks the fields a usable template needs
func (p *Position) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	if p.Title == "" {
		return fmt.Errorf("missing required field: title")
	}
	if p.Description == "" {
		return fmt.Errorf("missing required field: description")
	}
	return nil
}

// LoadFromFile loads positions from a single YAML file. The file may
// hold one position or a list.
func LoadFromFile(filename string) ([]*Position, error) {
	if err := validatePositionFilePath(filename); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	// #nosec G304 - path is validated above
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Try to parse as a single position first.
	var position Position
	if err := yaml.Unmarshal(data, &position); err == nil && position.Name != "" {
		return []*Position{&position}, nil
	}

	var positions []*Position
	if err := yaml.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return positions, nil
}

// LoadFromDirectory loads every YAML position file under a directory
func LoadFromDirectory(directory string) ([]*Position, error) {
	var positions []*Position

	err := filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			filePositions, err := LoadFromFile(path)
			if err != nil {
				return nil // Continue with other files
			}
			positions = append(positions, filePositions...)
		}
		return nil
	})

	return positions, err
}

// LoadDefaults loads the embedded default positions
func LoadDefaults() ([]*Position, error) {
	var positions []*Position
	if err := yaml.Unmarshal(defaultPositionsYAML, &positions); err != nil {
		return nil, fmt.Errorf("failed to parse embedded default positions: %w", err)
	}
	return positions, nil
}

// validatePositionFilePath validates that a position file path is safe to read
func validatePositionFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("position file must have .yaml or .yml extension")
	}

	return nil
}
