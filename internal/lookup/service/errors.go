package service

import (
	"errors"
	"fmt"
	"strings"

	"lookup-service/internal/lookup/model"
)

// ErrThreshold — порог допуска вне [0, 1].
var ErrThreshold = errors.New("sai số cho phép phải nằm trong khoảng [0, 1]")

type SchemaErrorKind int

const (
	MissingSheet SchemaErrorKind = iota + 1
	TooFewColumns
)

// SchemaError — нет нужного листа или не хватает колонок. Сообщение
// показывается пользователю как есть.
type SchemaError struct {
	Kind  SchemaErrorKind
	File  string // подпись файла из схемы: "Bán ra", "NXT", "Data", "Mapping"
	Sheet string
	Have  int
	Need  int
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Kind == MissingSheet {
		return fmt.Sprintf("File %s: sheet '%s' không tồn tại hoặc không đọc được.", e.File, e.Sheet)
	}
	if e.Sheet != "" {
		return fmt.Sprintf("Sheet '%s' chỉ có %d cột, cần ít nhất %d cột.", e.Sheet, e.Have, e.Need)
	}
	return fmt.Sprintf("File %s chỉ có %d cột, cần ít nhất %d cột.", e.File, e.Have, e.Need)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// MissingSheetError строит ошибку отсутствующего листа для файла fs.
func MissingSheetError(fs model.FileSchema, cause error) *SchemaError {
	return &SchemaError{Kind: MissingSheet, File: fs.Label, Sheet: fs.Sheet, Err: cause}
}

// ParseError — значение в числовой колонке не приводится к числу.
// Наружу не пробрасывается: ячейка считается пустой, ошибка идёт в отчёт.
type ParseError struct {
	File  string
	Row   int // номер строки в листе, 1-based
	Role  model.Role
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s, dòng %d, cột %s: %q không phải là số", e.File, e.Row, e.Role, e.Value)
}

// UnhandledError — любой другой сбой чтения/сопоставления/записи.
type UnhandledError struct {
	Op  string
	Err error
}

func (e *UnhandledError) Error() string { return "Lỗi: " + e.Op + ": " + e.Err.Error() }
func (e *UnhandledError) Unwrap() error { return e.Err }

// Validation — итог проверок листов и колонок; собирает все проблемы сразу.
type Validation struct {
	Issues []*SchemaError
}

func (v *Validation) Add(e *SchemaError) {
	if e != nil {
		v.Issues = append(v.Issues, e)
	}
}

func (v Validation) OK() bool { return len(v.Issues) == 0 }

func (v Validation) Messages() []string {
	out := make([]string, 0, len(v.Issues))
	for _, e := range v.Issues {
		out = append(out, e.Error())
	}
	return out
}

// Err — nil, если проблем нет, иначе *ValidationError.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return &ValidationError{Issues: v.Issues}
}

type ValidationError struct {
	Issues []*SchemaError
}

func (e *ValidationError) Error() string {
	return strings.Join(Validation{Issues: e.Issues}.Messages(), " ")
}

func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Issues))
	for i, is := range e.Issues {
		out[i] = is
	}
	return out
}

func errUnknownMode(m model.Mode) error {
	return fmt.Errorf("unknown mode %q", m)
}
