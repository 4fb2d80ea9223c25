package service

import (
	"lookup-service/internal/lookup/model"
)

// matchNearest — режим nearest: среди строк справочника с match == key и
// compare <= z берём строку с минимальным z - compare. При равенстве
// остаётся первая по порядку справочника. Ключи не нормализуются.
func matchNearest(prim []model.PrimaryRow, idx *index, scope model.Scope, st *stats) []model.LookupResult {
	best := make([]*candidate, len(prim))
	eligible := make([]bool, len(prim))
	for i, p := range prim {
		z, ok := st.number(p.Bound, st.primFile, st.primHeader+p.Index+1, model.RoleBound)
		if !ok {
			continue
		}
		eligible[i] = true
		for _, e := range idx.lookup(p.Key.Key()) {
			if !e.ok || e.compare.GreaterThan(z) {
				continue
			}
			diff := z.Sub(e.compare)
			if best[i] == nil || diff.LessThan(best[i].diff) {
				best[i] = &candidate{primary: p, ref: e.row, diff: diff}
			}
		}
	}
	return resolve(prim, best, eligible, scope, func(a, b *candidate) bool {
		return a.diff.LessThan(b.diff)
	})
}
