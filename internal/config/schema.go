package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"lookup-service/internal/lookup/model"
)

// DefaultSchema — встроенная раскладка колонок.
//
// Для tolerance основная таблица берётся в компактном варианте (key=0,
// bound=4). Полный лист выгрузки кладёт те же поля в 16 и 25 — такой
// вариант включается через LOOKUP_SCHEMA_FILE (см. configs/schema.yaml).
func DefaultSchema() model.Schema {
	return model.Schema{
		Nearest: model.ModeSchema{
			Primary: model.FileSchema{
				Label:     "Bán ra",
				Sheet:     "Smart_KTSC_OK",
				HeaderRow: 1,
				Columns:   map[model.Role]int{model.RoleKey: 16, model.RoleBound: 25},
			},
			Reference: model.FileSchema{
				Label:     "NXT",
				Sheet:     "F8_D",
				HeaderRow: 23, // 22 строки шапки отчёта
				Columns:   map[model.Role]int{model.RoleTarget: 2, model.RoleMatch: 4, model.RoleCompare: 14},
			},
			Output: model.OutputSchema{Sheet: "Smart_KTSC_OK", FileName: "BAN_RA_lookup_result.xlsx"},
		},
		Tolerance: model.ModeSchema{
			Primary: model.FileSchema{
				Label:     "Data",
				HeaderRow: 1,
				Columns:   map[model.Role]int{model.RoleKey: 0, model.RoleBound: 4},
			},
			Reference: model.FileSchema{
				Label:     "Mapping",
				HeaderRow: 1,
				Columns:   map[model.Role]int{model.RoleTarget: 2, model.RoleMatch: 4, model.RoleCompare: 14},
			},
			Output:    model.OutputSchema{Sheet: "Data_Result", FileName: "data_lookup_result.xlsx"},
			Threshold: 0.03,
		},
	}
}

// LoadSchema читает YAML поверх встроенной схемы и проверяет результат.
// Секция columns в файле заменяет колонки файла целиком.
func LoadSchema(path string) (model.Schema, error) {
	s := DefaultSchema()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return model.Schema{}, fmt.Errorf("schema file: %w", err)
		}
		var raw rawSchema
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return model.Schema{}, fmt.Errorf("schema file %s: %w", path, err)
		}
		merge(&s.Nearest, raw.Nearest)
		merge(&s.Tolerance, raw.Tolerance)
	}
	if err := s.Validate(); err != nil {
		return model.Schema{}, fmt.Errorf("schema: %w", err)
	}
	return s, nil
}

// rawMode — то же, что ModeSchema, но порог 0 отличим от «не задан».
type rawMode struct {
	Primary   model.FileSchema   `yaml:"primary"`
	Reference model.FileSchema   `yaml:"reference"`
	Output    model.OutputSchema `yaml:"output"`
	Threshold *float64           `yaml:"threshold"`
}

type rawSchema struct {
	Nearest   rawMode `yaml:"nearest"`
	Tolerance rawMode `yaml:"tolerance"`
}

func merge(dst *model.ModeSchema, src rawMode) {
	mergeFile(&dst.Primary, src.Primary)
	mergeFile(&dst.Reference, src.Reference)
	if src.Output.Sheet != "" {
		dst.Output.Sheet = src.Output.Sheet
	}
	if src.Output.FileName != "" {
		dst.Output.FileName = src.Output.FileName
	}
	if src.Threshold != nil {
		dst.Threshold = *src.Threshold
	}
}

func mergeFile(dst *model.FileSchema, src model.FileSchema) {
	if src.Label != "" {
		dst.Label = src.Label
	}
	if src.Sheet != "" {
		dst.Sheet = src.Sheet
	}
	if src.HeaderRow != 0 {
		dst.HeaderRow = src.HeaderRow
	}
	if len(src.Columns) > 0 {
		dst.Columns = src.Columns
	}
}
