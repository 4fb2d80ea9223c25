package service

import (
	"github.com/shopspring/decimal"

	"lookup-service/internal/lookup/model"
)

// refEntry — строка справочника с уже разобранным compare.
type refEntry struct {
	row     model.ReferenceRow
	compare decimal.Decimal
	ok      bool // compare — число
}

// индекс справочника по ключу; порядок строк внутри ключа — как в файле
type index struct {
	byKey map[string][]refEntry
}

func buildIndex(rows []model.ReferenceRow, st *stats) *index {
	idx := &index{byKey: make(map[string][]refEntry)}
	for _, r := range rows {
		e := refEntry{row: r}
		e.compare, e.ok = st.number(r.Compare, st.refFile, st.refHeader+r.Index+1, model.RoleCompare)

		k := r.Match.Key()
		if k == "" {
			continue
		}
		idx.byKey[k] = append(idx.byKey[k], e)
	}
	return idx
}

func (idx *index) lookup(key string) []refEntry {
	if key == "" {
		return nil
	}
	return idx.byKey[key]
}

// candidate — пара (строка основной таблицы, строка справочника) с равными ключами.
type candidate struct {
	primary model.PrimaryRow
	ref     model.ReferenceRow
	diff    decimal.Decimal // z - compare для nearest; |compare - v| для tolerance
}

// resolve раздаёт победителей строкам. В ScopeRow каждая строка получает
// своего кандидата; в ScopeKey на ключ остаётся один победитель: более
// ранний, пока better не скажет иначе. Строки без пригодного bound
// (eligible == false) победителя ключа не получают.
func resolve(prim []model.PrimaryRow, best []*candidate, eligible []bool, scope model.Scope, better func(a, b *candidate) bool) []model.LookupResult {
	out := make([]model.LookupResult, len(prim))
	if scope != model.ScopeKey {
		for i, c := range best {
			out[i] = found(c)
		}
		return out
	}

	winners := make(map[string]*candidate)
	for i, c := range best {
		if c == nil {
			continue
		}
		k := prim[i].Key.Key()
		if w, ok := winners[k]; !ok || better(c, w) {
			winners[k] = c
		}
	}
	for i, p := range prim {
		if !eligible[i] {
			out[i] = model.NotFound
			continue
		}
		out[i] = found(winners[p.Key.Key()])
	}
	return out
}

func found(c *candidate) model.LookupResult {
	if c == nil {
		return model.NotFound
	}
	return model.Found(c.ref.Target.Raw, c.ref.Index)
}
