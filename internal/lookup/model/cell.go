package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"lookup-service/internal/utils"
)

type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// NumFmt — формат отображения числа в исходной книге: встроенный ID
// либо свой код ("dd/mm/yyyy"). Нулевое значение — General.
type NumFmt struct {
	ID   int
	Code string
}

func (n NumFmt) IsZero() bool { return n.ID == 0 && n.Code == "" }

// Cell — значение ячейки как оно пришло из файла (сырой текст + тип).
// Fmt заполняется только для чисел из xlsx.
type Cell struct {
	Raw  string
	Kind Kind
	Fmt  NumFmt
}

// Text — строковая ячейка; пустая строка даёт пустую ячейку.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Raw: s, Kind: KindText}
}

// Number — числовая ячейка с типом из книги. Сырое значение, которое не
// разбирается как число, остаётся текстом.
func Number(raw string, f NumFmt) Cell {
	if _, err := decimal.NewFromString(raw); err != nil {
		return Text(raw)
	}
	return Cell{Raw: raw, Kind: KindNumber, Fmt: f}
}

// Bool — логическая ячейка; Raw хранится как TRUE/FALSE.
func Bool(v bool) Cell {
	if v {
		return Cell{Raw: "TRUE", Kind: KindBool}
	}
	return Cell{Raw: "FALSE", Kind: KindBool}
}

// ParseCell определяет тип по сырому значению (CSV и .xls, где типа нет): "" → empty,
// строгое число без пробелов → number, всё остальное → text.
func ParseCell(raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	if strings.TrimSpace(raw) == raw {
		if _, err := decimal.NewFromString(raw); err == nil {
			return Cell{Raw: raw, Kind: KindNumber}
		}
	}
	return Cell{Raw: raw, Kind: KindText}
}

func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// Key — значение для соединения таблиц. Числа сравниваются по значению
// (1 == 1.0 == 1e0), текст — как есть, пустая ячейка ключа не имеет.
func (c Cell) Key() string {
	switch c.Kind {
	case KindNumber:
		if d, err := decimal.NewFromString(c.Raw); err == nil {
			return d.String()
		}
		return c.Raw
	case KindText, KindBool:
		return c.Raw
	default:
		return ""
	}
}

// Decimal приводит ячейку к числу так же строго, как pandas.to_numeric:
// текст допускается только в обычной записи ("12.5", "-3", "1e3").
func (c Cell) Decimal() (decimal.Decimal, bool) {
	switch c.Kind {
	case KindNumber, KindText:
		d, err := decimal.NewFromString(strings.TrimSpace(c.Raw))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// LocaleDecimal дополнительно понимает локальные записи в тексте:
// "1.234,5", "1 234,5", "(12)".
func (c Cell) LocaleDecimal() (decimal.Decimal, bool) {
	if d, ok := c.Decimal(); ok || c.Kind != KindText {
		return d, ok
	}
	cleaned, ok := utils.CleanNumber(c.Raw)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
