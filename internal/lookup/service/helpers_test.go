package service

import (
	"lookup-service/internal/lookup/model"
)

func nearestSchema() model.ModeSchema {
	return model.ModeSchema{
		Primary: model.FileSchema{Label: "Bán ra", Sheet: "Smart_KTSC_OK", HeaderRow: 1,
			Columns: map[model.Role]int{model.RoleKey: 16, model.RoleBound: 25}},
		Reference: model.FileSchema{Label: "NXT", Sheet: "F8_D", HeaderRow: 23,
			Columns: map[model.Role]int{model.RoleTarget: 2, model.RoleMatch: 4, model.RoleCompare: 14}},
		Output: model.OutputSchema{Sheet: "Smart_KTSC_OK", FileName: "BAN_RA_lookup_result.xlsx"},
	}
}

func toleranceSchema() model.ModeSchema {
	return model.ModeSchema{
		Primary: model.FileSchema{Label: "Data", HeaderRow: 1,
			Columns: map[model.Role]int{model.RoleKey: 0, model.RoleBound: 4}},
		Reference: model.FileSchema{Label: "Mapping", HeaderRow: 1,
			Columns: map[model.Role]int{model.RoleTarget: 2, model.RoleMatch: 4, model.RoleCompare: 14}},
		Output:    model.OutputSchema{Sheet: "Data_Result", FileName: "data_lookup_result.xlsx"},
		Threshold: 0.03,
	}
}

// row собирает строку ширины width; незаданные ячейки пустые.
func row(width int, cells map[int]string) []model.Cell {
	out := make([]model.Cell, width)
	for i, v := range cells {
		out[i] = model.ParseCell(v)
	}
	return out
}

func header(width int) []string {
	h := make([]string, width)
	for i := range h {
		h[i] = "c" + string(rune('A'+i%26))
	}
	return h
}

// nearestPrimary: строки (key, z) в колонках 16 и 25.
func nearestPrimary(pairs ...[2]string) model.Table {
	t := model.Table{Header: header(26)}
	for i, p := range pairs {
		t.Rows = append(t.Rows, row(26, map[int]string{0: string(rune('a' + i)), 16: p[0], 25: p[1]}))
	}
	return t
}

// reference: строки (match, compare, target) в колонках 4, 14, 2.
func reference(triples ...[3]string) model.Table {
	t := model.Table{Header: header(15)}
	for _, tr := range triples {
		t.Rows = append(t.Rows, row(15, map[int]string{4: tr[0], 14: tr[1], 2: tr[2]}))
	}
	return t
}

// tolerancePrimary: строки (key, v) в колонках 0 и 4.
func tolerancePrimary(pairs ...[2]string) model.Table {
	t := model.Table{Header: header(5)}
	for _, p := range pairs {
		t.Rows = append(t.Rows, row(5, map[int]string{0: p[0], 4: p[1]}))
	}
	return t
}

func texts(res model.Result) []string {
	out := make([]string, len(res.Lookups))
	for i, l := range res.Lookups {
		out[i] = l.Text()
	}
	return out
}
