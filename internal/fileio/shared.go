package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"lookup-service/internal/lookup/model"
)

// ErrSheetNotFound — в книге нет нужного листа (или нет листов вообще).
var ErrSheetNotFound = errors.New("sheet not found")

// ErrUnsupported — расширение файла не поддерживается.
var ErrUnsupported = errors.New("unsupported file type")

type Options struct {
	Sheet     string // имя листа; пусто — первый лист
	HeaderRow int    // строка заголовков (1-based); строки выше пропускаются
}

// ReadTable выбирает парсер по расширению и возвращает лист как таблицу:
// шапка из HeaderRow, ниже — строки данных в исходном порядке.
// Хвостовые пустые строки отбрасываются, пустые строки внутри — нет.
func ReadTable(r io.Reader, filename string, opt Options) (model.Table, error) {
	var (
		rows [][]model.Cell
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		// тип ячейки берём из книги, а не угадываем по тексту
		rows, err = readXLSX(r, opt.Sheet)
	case ".xls":
		var raw [][]string
		raw, err = readXLS(r, opt.Sheet)
		rows = parseRows(raw)
	case ".csv":
		// у CSV один безымянный лист, требование к имени листа не проверяется
		var raw [][]string
		raw, err = readCSV(r)
		rows = parseRows(raw)
	default:
		return model.Table{}, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	if err != nil {
		return model.Table{}, err
	}
	return toTable(rows, opt.HeaderRow), nil
}

// parseRows — для форматов без типов ячеек (CSV, .xls) тип выводится из текста.
func parseRows(raw [][]string) [][]model.Cell {
	rows := make([][]model.Cell, len(raw))
	for i, rec := range raw {
		cells := make([]model.Cell, len(rec))
		for j, v := range rec {
			cells[j] = model.ParseCell(v)
		}
		rows[i] = cells
	}
	return rows
}

// toTable отрезает строки выше шапки и хвостовые пустые; значения не трогаем.
func toTable(rows [][]model.Cell, headerRow int) model.Table {
	if headerRow < 1 {
		headerRow = 1
	}
	end := len(rows)
	for end > 0 && isEmptyRow(rows[end-1]) {
		end--
	}
	rows = rows[:end]

	h := headerRow - 1
	if h >= len(rows) {
		return model.Table{}
	}
	header := make([]string, len(rows[h]))
	for i, c := range rows[h] {
		header[i] = c.Raw
	}
	return model.Table{
		Header: header,
		Rows:   append(make([][]model.Cell, 0, len(rows)-h-1), rows[h+1:]...),
	}
}

func isEmptyRow(rec []model.Cell) bool {
	for _, c := range rec {
		if strings.TrimSpace(c.Raw) != "" {
			return false
		}
	}
	return true
}
