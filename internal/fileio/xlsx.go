package fileio

import (
	"fmt"
	"io"
	"strconv"

	excelize "github.com/xuri/excelize/v2"

	"lookup-service/internal/lookup/model"
)

// readXLSX читает лист сырыми значениями (без форматов отображения),
// чтобы числа приходили как "1234.5", а не "1,234.50". Тип каждой ячейки
// берётся из книги: строка "00123" остаётся текстом, у чисел сохраняется
// формат (даты остаются датами при записи).
func readXLSX(r io.Reader, sheet string) ([][]model.Cell, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := sheet
	if name == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		name = list[0]
	} else if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}

	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	fmts := make(map[int]model.NumFmt) // styleID → формат числа
	rows := make([][]model.Cell, len(raw))
	for i, rec := range raw {
		cells := make([]model.Cell, len(rec))
		for j, v := range rec {
			if v == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			if cells[j], err = typedCell(f, name, axis, v, fmts); err != nil {
				return nil, fmt.Errorf("%s!%s: %w", name, axis, err)
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

func typedCell(f *excelize.File, sheet, axis, raw string, fmts map[int]model.NumFmt) (model.Cell, error) {
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return model.Cell{}, err
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		nf, err := numFmt(f, sheet, axis, fmts)
		if err != nil {
			return model.Cell{}, err
		}
		return model.Number(raw, nf), nil
	case excelize.CellTypeBool:
		return model.Bool(raw == "1"), nil
	default:
		// shared/inline строки, строковый результат формулы, ошибки (#N/A), ISO-даты
		return model.Text(raw), nil
	}
}

func numFmt(f *excelize.File, sheet, axis string, cache map[int]model.NumFmt) (model.NumFmt, error) {
	id, err := f.GetCellStyle(sheet, axis)
	if err != nil || id == 0 {
		return model.NumFmt{}, err
	}
	if nf, ok := cache[id]; ok {
		return nf, nil
	}
	st, err := f.GetStyle(id)
	if err != nil {
		return model.NumFmt{}, err
	}
	nf := model.NumFmt{ID: st.NumFmt}
	if st.CustomNumFmt != nil {
		nf.Code = *st.CustomNumFmt
	}
	cache[id] = nf
	return nf, nil
}

// WriteXLSX пишет таблицу одним листом через stream writer.
// Текст пишется строкой, числа числом со своим форматом, логические
// значения — bool; пустые ячейки пропускаются.
func WriteXLSX(w io.Writer, sheet string, t model.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if def := f.GetSheetName(0); def != sheet {
		if err := f.SetSheetName(def, sheet); err != nil {
			return err
		}
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	hdr := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		if h != "" {
			hdr[i] = h
		}
	}
	if err := sw.SetRow("A1", hdr); err != nil {
		return err
	}

	styles := make(map[model.NumFmt]int)
	for i, rec := range t.Rows {
		vals := make([]interface{}, len(rec))
		for j, c := range rec {
			vals[j] = cellValue(f, c, styles)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, vals); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func cellValue(f *excelize.File, c model.Cell, styles map[model.NumFmt]int) interface{} {
	switch c.Kind {
	case model.KindNumber:
		v, err := strconv.ParseFloat(c.Raw, 64)
		if err != nil {
			return c.Raw
		}
		if c.Fmt.IsZero() {
			return v
		}
		return excelize.Cell{StyleID: styleFor(f, c.Fmt, styles), Value: v}
	case model.KindBool:
		return c.Raw == "TRUE"
	case model.KindText:
		return c.Raw
	default:
		return nil
	}
}

// styleFor — стиль с нужным форматом числа, один на формат. Формат, который
// excelize не принимает, даёт стиль по умолчанию: значение важнее вида.
func styleFor(f *excelize.File, nf model.NumFmt, styles map[model.NumFmt]int) int {
	if id, ok := styles[nf]; ok {
		return id
	}
	st := &excelize.Style{NumFmt: nf.ID}
	if nf.Code != "" {
		code := nf.Code
		st.CustomNumFmt = &code
	}
	id, err := f.NewStyle(st)
	if err != nil {
		id = 0
	}
	styles[nf] = id
	return id
}
