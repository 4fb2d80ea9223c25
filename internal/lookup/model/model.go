package model

// Режим поиска.
type Mode string

const (
	ModeNearest   Mode = "nearest"   // ближайшее снизу по порогу (Bán ra & NXT)
	ModeTolerance Mode = "tolerance" // допуск в процентах (Mua vào & NXT, mapping)
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeNearest, ModeTolerance:
		return Mode(s), true
	}
	return "", false
}

// Scope — на каком уровне выбирается победитель.
type Scope string

const (
	ScopeRow Scope = "row" // отдельно для каждой строки основной таблицы
	ScopeKey Scope = "key" // один победитель на ключ, раздаётся всем строкам ключа
)

func ParseScope(s string) (Scope, bool) {
	switch Scope(s) {
	case ScopeRow, ScopeKey:
		return Scope(s), true
	}
	return "", false
}

// DefaultScope — nearest выбирает строку за строкой, tolerance строит
// отображение ключ → результат.
func DefaultScope(m Mode) Scope {
	if m == ModeTolerance {
		return ScopeKey
	}
	return ScopeRow
}

type Options struct {
	Scope         Scope `json:"scope"`         // пусто — DefaultScope(mode)
	UnicodeNFC    bool  `json:"unicodeNfc"`    // дополнительно приводить ключи к NFC (только tolerance)
	LocaleNumbers bool  `json:"localeNumbers"` // понимать "1.234,5" и "(12)" в текстовых ячейках
}

// Table — шапка + строки данных в исходном порядке.
type Table struct {
	Header []string
	Rows   [][]Cell
}

func (t Table) Len() int { return len(t.Rows) }

// Width — ширина самой широкой строки, включая шапку.
func (t Table) Width() int {
	w := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// At — ячейка по координатам; за пределами строки — пустая.
func (t Table) At(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return Cell{}
	}
	return t.Rows[row][col]
}

// Request — один запуск конвейера; не меняется после создания.
type Request struct {
	Mode      Mode
	Primary   Table
	Reference Table
	Threshold float64 // только для tolerance, [0, 1]
}

// PrimaryRow — строка основной таблицы после выбора колонок.
// Bound — потолок z для nearest или опорное значение v (DGVND) для tolerance.
type PrimaryRow struct {
	Index int
	Key   Cell
	Bound Cell
}

// ReferenceRow — строка справочника.
type ReferenceRow struct {
	Index   int
	Target  Cell
	Match   Cell
	Compare Cell
}

const (
	ResultColumn = "lookup_result"
	NotFoundText = "Không tìm thấy"
)

// LookupResult — Found(target) либо NotFound; RefRow — строка справочника-победителя.
type LookupResult struct {
	Found  bool   `json:"found"`
	Target string `json:"target,omitempty"`
	RefRow int    `json:"refRow"`
}

var NotFound = LookupResult{RefRow: -1}

func Found(target string, refRow int) LookupResult {
	return LookupResult{Found: true, Target: target, RefRow: refRow}
}

// Text — значение колонки lookup_result. Найденная строка с пустой целью
// тоже даёт заглушку.
func (r LookupResult) Text() string {
	if !r.Found || r.Target == "" {
		return NotFoundText
	}
	return r.Target
}

type Report struct {
	Mode      Mode     `json:"mode"`
	Scope     Scope    `json:"scope"`
	Threshold *float64 `json:"threshold,omitempty"`
	Rows      int      `json:"rows"`
	Reference int      `json:"reference"`
	Found     int      `json:"found"`
	NotFound  int      `json:"notFound"`
	Coerced   int      `json:"coerced"`           // нечисловые значения в числовых колонках
	Samples   []string `json:"samples,omitempty"` // первые несколько таких значений
	Warnings  []string `json:"warnings,omitempty"`
}

type Result struct {
	Table   Table
	Lookups []LookupResult
	Report  Report
}
