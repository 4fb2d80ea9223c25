package service

import (
	"github.com/shopspring/decimal"

	"lookup-service/internal/lookup/model"
)

// matchTolerance — режим tolerance: среди строк справочника с тем же
// нормализованным ключом берём ПЕРВУЮ, у которой |compare - v| / v <= threshold.
// Минимальная ошибка не ищется. v == 0 или пустое v — всегда «не найдено».
//
// Деление не выполняется: при v > 0 условие равносильно
// |compare - v| <= threshold * v, и граница проверяется точно.
func matchTolerance(prim []model.PrimaryRow, idx *index, threshold decimal.Decimal, scope model.Scope, st *stats) []model.LookupResult {
	best := make([]*candidate, len(prim))
	eligible := make([]bool, len(prim))
	for i, p := range prim {
		v, ok := st.number(p.Bound, st.primFile, st.primHeader+p.Index+1, model.RoleBound)
		if !ok || v.IsZero() {
			continue
		}
		eligible[i] = true
		limit := threshold.Mul(v)
		for _, e := range idx.lookup(p.Key.Key()) {
			if !e.ok {
				continue
			}
			dev := e.compare.Sub(v).Abs()
			// при v < 0 ошибка |c-v|/v отрицательна и порог проходит всегда
			if v.IsNegative() || dev.LessThanOrEqual(limit) {
				best[i] = &candidate{primary: p, ref: e.row, diff: dev}
				break
			}
		}
	}
	// первый допустимый кандидат ключа побеждает
	return resolve(prim, best, eligible, scope, func(a, b *candidate) bool { return false })
}
