package model

import (
	"errors"
	"fmt"
)

// Role — смысловое имя колонки, выбранной по позиции.
type Role string

const (
	RoleKey     Role = "key"
	RoleBound   Role = "bound"
	RoleTarget  Role = "target"
	RoleMatch   Role = "match"
	RoleCompare Role = "compare"
)

var (
	PrimaryRoles   = []Role{RoleKey, RoleBound}
	ReferenceRoles = []Role{RoleTarget, RoleMatch, RoleCompare}
)

// FileSchema — раскладка одного входного файла. Колонки задаются позицией
// (0-based), а не заголовком: шапки в исходных файлах нестабильны.
type FileSchema struct {
	Label     string       `yaml:"label" json:"label"`
	Sheet     string       `yaml:"sheet" json:"sheet,omitempty"` // пусто — первый лист
	HeaderRow int          `yaml:"header_row" json:"headerRow"`  // 1-based
	Columns   map[Role]int `yaml:"columns" json:"columns"`
}

// MinColumns — сколько колонок нужно, чтобы достать все роли.
func (f FileSchema) MinColumns() int {
	n := 0
	for _, idx := range f.Columns {
		if idx+1 > n {
			n = idx + 1
		}
	}
	return n
}

func (f FileSchema) validate(roles []Role) error {
	if f.HeaderRow < 1 {
		return fmt.Errorf("%s: header_row must be >= 1, got %d", f.Label, f.HeaderRow)
	}
	var errs []error
	for _, r := range roles {
		idx, ok := f.Columns[r]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: column for role %q is not set", f.Label, r))
			continue
		}
		if idx < 0 {
			errs = append(errs, fmt.Errorf("%s: column for role %q is negative (%d)", f.Label, r, idx))
		}
	}
	return errors.Join(errs...)
}

type OutputSchema struct {
	Sheet    string `yaml:"sheet" json:"sheet"`
	FileName string `yaml:"file_name" json:"fileName"`
}

type ModeSchema struct {
	Primary   FileSchema   `yaml:"primary" json:"primary"`
	Reference FileSchema   `yaml:"reference" json:"reference"`
	Output    OutputSchema `yaml:"output" json:"output"`
	Threshold float64      `yaml:"threshold" json:"threshold"` // дефолт для tolerance
}

func (m ModeSchema) Validate() error {
	var errs []error
	if err := m.Primary.validate(PrimaryRoles); err != nil {
		errs = append(errs, err)
	}
	if err := m.Reference.validate(ReferenceRoles); err != nil {
		errs = append(errs, err)
	}
	if m.Output.Sheet == "" || m.Output.FileName == "" {
		errs = append(errs, errors.New("output sheet and file_name are required"))
	}
	if m.Threshold < 0 || m.Threshold > 1 {
		errs = append(errs, fmt.Errorf("threshold must be in [0, 1], got %v", m.Threshold))
	}
	return errors.Join(errs...)
}

// Schema — единственное место, где объявлены позиции колонок.
type Schema struct {
	Nearest   ModeSchema `yaml:"nearest" json:"nearest"`
	Tolerance ModeSchema `yaml:"tolerance" json:"tolerance"`
}

func (s Schema) For(m Mode) (ModeSchema, bool) {
	switch m {
	case ModeNearest:
		return s.Nearest, true
	case ModeTolerance:
		return s.Tolerance, true
	}
	return ModeSchema{}, false
}

func (s Schema) Validate() error {
	var errs []error
	if err := s.Nearest.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("nearest: %w", err))
	}
	if err := s.Tolerance.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tolerance: %w", err))
	}
	return errors.Join(errs...)
}
