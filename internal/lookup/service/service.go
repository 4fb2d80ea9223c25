package service

import (
	"math"

	"github.com/shopspring/decimal"

	"lookup-service/internal/lookup/model"
)

const maxSamples = 5

// NoMatchWarning — предупреждение, когда ни одна строка не нашла пары.
const NoMatchWarning = "Không tìm thấy kết quả khớp nào."

// stats — счётчики одного запуска (нечисловые значения в числовых колонках).
type stats struct {
	primFile, refFile     string
	primHeader, refHeader int
	locale                bool
	coerced               int
	samples               []string
}

func newStats(ms model.ModeSchema, opt model.Options) *stats {
	return &stats{
		primFile:   ms.Primary.Label,
		refFile:    ms.Reference.Label,
		primHeader: ms.Primary.HeaderRow,
		refHeader:  ms.Reference.HeaderRow,
		locale:     opt.LocaleNumbers,
	}
}

// number приводит ячейку к числу; непустое нечисловое значение считается
// пропуском и попадает в отчёт как ParseError.
func (s *stats) number(c model.Cell, file string, row int, role model.Role) (decimal.Decimal, bool) {
	parse := c.Decimal
	if s.locale {
		parse = c.LocaleDecimal
	}
	d, ok := parse()
	if !ok && !c.IsEmpty() {
		s.coerced++
		if len(s.samples) < maxSamples {
			pe := &ParseError{File: file, Row: row, Role: role, Value: c.Raw}
			s.samples = append(s.samples, pe.Error())
		}
	}
	return d, ok
}

// Run — полный прогон: проверка схемы → выбор колонок → нормализация
// (tolerance) → сопоставление → сборка результата. Ошибки схемы
// возвращаются до любого сопоставления.
func Run(req model.Request, ms model.ModeSchema, opt model.Options) (model.Result, error) {
	if _, ok := model.ParseMode(string(req.Mode)); !ok {
		return model.Result{}, &UnhandledError{Op: "run", Err: errUnknownMode(req.Mode)}
	}
	if opt.Scope == "" {
		opt.Scope = model.DefaultScope(req.Mode)
	}
	if req.Mode == model.ModeTolerance && !validThreshold(req.Threshold) {
		return model.Result{}, ErrThreshold
	}

	if v := Validate(req, ms); !v.OK() {
		return model.Result{}, v.Err()
	}

	pp, err := Select(req.Primary, ms.Primary, model.PrimaryRoles)
	if err != nil {
		return model.Result{}, err
	}
	rp, err := Select(req.Reference, ms.Reference, model.ReferenceRoles)
	if err != nil {
		return model.Result{}, err
	}
	prim := primaryRows(pp)
	refs := referenceRows(rp)

	st := newStats(ms, opt)
	report := model.Report{
		Mode:      req.Mode,
		Scope:     opt.Scope,
		Rows:      len(prim),
		Reference: len(refs),
	}

	var lookups []model.LookupResult
	switch req.Mode {
	case model.ModeNearest:
		lookups = matchNearest(prim, buildIndex(refs, st), opt.Scope, st)
	case model.ModeTolerance:
		normalizeKeys(prim, refs, opt)
		th := req.Threshold
		report.Threshold = &th
		lookups = matchTolerance(prim, buildIndex(refs, st), decimal.NewFromFloat(th), opt.Scope, st)
	}

	out, err := Assemble(req.Primary, lookups)
	if err != nil {
		return model.Result{}, &UnhandledError{Op: "assemble", Err: err}
	}

	for _, l := range lookups {
		if l.Found && l.Target != "" {
			report.Found++
		} else {
			report.NotFound++
		}
	}
	report.Coerced = st.coerced
	report.Samples = st.samples
	if report.Rows > 0 && report.Found == 0 {
		report.Warnings = append(report.Warnings, NoMatchWarning)
	}

	return model.Result{Table: out, Lookups: lookups, Report: report}, nil
}

func validThreshold(t float64) bool {
	return !math.IsNaN(t) && t >= 0 && t <= 1
}
