package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-service/internal/lookup/model"
)

func TestAssemble_AppendsResultColumn(t *testing.T) {
	in := model.Table{
		Header: []string{"Mã", "Tên"},
		Rows: [][]model.Cell{
			{model.Text("SP01"), model.Text("Áo")},
			{model.Text("SP02")},
			{model.Text("SP03"), model.Text("Quần"), model.ParseCell("5")},
		},
	}
	out, err := Assemble(in, []model.LookupResult{model.Found("A", 0), model.NotFound, model.Found("", 2)})
	require.NoError(t, err)

	assert.Equal(t, []string{"Mã", "Tên", "", model.ResultColumn}, out.Header)
	require.Len(t, out.Rows, 3)
	for i, r := range out.Rows {
		require.Len(t, r, 4, "row %d", i)
	}
	assert.Equal(t, "A", out.Rows[0][3].Raw)
	assert.Equal(t, model.NotFoundText, out.Rows[1][3].Raw)
	assert.Equal(t, model.NotFoundText, out.Rows[2][3].Raw)
	assert.Equal(t, "5", out.Rows[2][2].Raw)
	assert.True(t, out.Rows[1][1].IsEmpty())

	// исходная таблица не тронута
	assert.Equal(t, []string{"Mã", "Tên"}, in.Header)
	assert.Len(t, in.Rows[1], 1)
}

func TestAssemble_LengthMismatch(t *testing.T) {
	in := model.Table{Header: []string{"a"}, Rows: [][]model.Cell{{model.Text("x")}}}
	_, err := Assemble(in, nil)
	assert.Error(t, err)
}
