package service

import (
	"fmt"

	"lookup-service/internal/lookup/model"
)

// Assemble дописывает колонку lookup_result к исходной таблице. Шапка,
// порядок строк и все исходные ячейки не меняются; входная таблица не
// модифицируется.
func Assemble(primary model.Table, lookups []model.LookupResult) (model.Table, error) {
	if len(lookups) != len(primary.Rows) {
		return model.Table{}, fmt.Errorf("assemble: %d results for %d rows", len(lookups), len(primary.Rows))
	}
	w := primary.Width()

	header := make([]string, w+1)
	copy(header, primary.Header)
	header[w] = model.ResultColumn

	rows := make([][]model.Cell, len(primary.Rows))
	for i, src := range primary.Rows {
		row := make([]model.Cell, w+1)
		copy(row, src)
		row[w] = model.Text(lookups[i].Text())
		rows[i] = row
	}
	return model.Table{Header: header, Rows: rows}, nil
}
