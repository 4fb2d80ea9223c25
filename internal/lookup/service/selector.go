package service

import (
	"lookup-service/internal/lookup/model"
)

// Projection — выбранные по позиции колонки, переименованные в роли.
type Projection struct {
	Roles []model.Role
	Rows  [][]model.Cell
	pos   map[model.Role]int
}

func (p Projection) Len() int { return len(p.Rows) }

func (p Projection) Get(row int, r model.Role) model.Cell {
	i, ok := p.pos[r]
	if !ok || row < 0 || row >= len(p.Rows) {
		return model.Cell{}
	}
	return p.Rows[row][i]
}

// checkWidth — хватает ли колонок в таблице для схемы файла.
func checkWidth(t model.Table, fs model.FileSchema) *SchemaError {
	need := fs.MinColumns()
	if have := t.Width(); have < need {
		return &SchemaError{Kind: TooFewColumns, File: fs.Label, Sheet: fs.Sheet, Have: have, Need: need}
	}
	return nil
}

// Select вырезает из таблицы колонки ролей по их позициям; порядок строк сохраняется.
func Select(t model.Table, fs model.FileSchema, roles []model.Role) (Projection, error) {
	if err := checkWidth(t, fs); err != nil {
		return Projection{}, err
	}
	p := Projection{
		Roles: roles,
		Rows:  make([][]model.Cell, len(t.Rows)),
		pos:   make(map[model.Role]int, len(roles)),
	}
	for i, r := range roles {
		p.pos[r] = i
	}
	for ri := range t.Rows {
		row := make([]model.Cell, len(roles))
		for i, r := range roles {
			col, ok := fs.Columns[r]
			if !ok {
				continue
			}
			row[i] = t.At(ri, col)
		}
		p.Rows[ri] = row
	}
	return p, nil
}

// Validate проверяет ширину обеих таблиц до любого сопоставления.
func Validate(req model.Request, ms model.ModeSchema) Validation {
	var v Validation
	v.Add(checkWidth(req.Primary, ms.Primary))
	v.Add(checkWidth(req.Reference, ms.Reference))
	return v
}

func primaryRows(p Projection) []model.PrimaryRow {
	out := make([]model.PrimaryRow, p.Len())
	for i := range out {
		out[i] = model.PrimaryRow{
			Index: i,
			Key:   p.Get(i, model.RoleKey),
			Bound: p.Get(i, model.RoleBound),
		}
	}
	return out
}

func referenceRows(p Projection) []model.ReferenceRow {
	out := make([]model.ReferenceRow, p.Len())
	for i := range out {
		out[i] = model.ReferenceRow{
			Index:   i,
			Target:  p.Get(i, model.RoleTarget),
			Match:   p.Get(i, model.RoleMatch),
			Compare: p.Get(i, model.RoleCompare),
		}
	}
	return out
}
