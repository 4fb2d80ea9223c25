package service

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"lookup-service/internal/lookup/model"
)

// NBSP, перевод строки и возврат каретки удаляются, а не заменяются пробелом.
var invisible = strings.NewReplacer("\u00A0", "", "\n", "", "\r", "")

// NormalizeText обрезает пробелы по краям и вырезает невидимые символы.
func NormalizeText(s string) string {
	return invisible.Replace(strings.TrimSpace(s))
}

// NormalizeCell применяет NormalizeText к текстовым ячейкам; числа и пустые
// ячейки проходят без изменений. С UnicodeNFC текст дополнительно
// приводится к составной форме (NFC).
func NormalizeCell(c model.Cell, opt model.Options) model.Cell {
	if c.Kind != model.KindText {
		return c
	}
	s := NormalizeText(c.Raw)
	if opt.UnicodeNFC {
		s = norm.NFC.String(s)
	}
	return model.Text(s)
}

func normalizeKeys(prim []model.PrimaryRow, refs []model.ReferenceRow, opt model.Options) {
	for i := range prim {
		prim[i].Key = NormalizeCell(prim[i].Key, opt)
	}
	for i := range refs {
		refs[i].Match = NormalizeCell(refs[i].Match, opt)
	}
}
