package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Problem kinds understood by searchctl.
const (
	KindTiles  = "tiles"
	KindSudoku = "sudoku"
)

// ProblemFile is the YAML description of a puzzle to solve.
//
// Example:
//
//	kind: sudoku
//	strategy: pdfs
//	workers: 4
//	board: |
//	  53..7....
//	  6..195...
//	  ...
type ProblemFile struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Board    string `yaml:"board"`
	Strategy string `yaml:"strategy,omitempty"`
	Workers  int    `yaml:"workers,omitempty"`
	RunID    string `yaml:"run_id,omitempty"`
}

// LoadProblemFile reads and validates a problem file.
func LoadProblemFile(path string) (*ProblemFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	return ParseProblem(data)
}

// ParseProblem decodes YAML problem data and validates it.
func ParseProblem(data []byte) (*ProblemFile, error) {
	var p ProblemFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse problem: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks required fields.
func (p *ProblemFile) Validate() error {
	var errs []error
	p.Kind = strings.ToLower(strings.TrimSpace(p.Kind))
	switch p.Kind {
	case KindTiles, KindSudoku:
	case "":
		errs = append(errs, errors.New("kind is required"))
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q (want %s or %s)", p.Kind, KindTiles, KindSudoku))
	}
	if strings.TrimSpace(p.Board) == "" {
		errs = append(errs, errors.New("board is required"))
	}
	if p.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers cannot be negative (%d)", p.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid problem: %w", errors.Join(errs...))
	}
	return nil
}
