package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-service/internal/lookup/model"
)

func runTolerance(t *testing.T, prim, ref model.Table, threshold float64, opt model.Options) model.Result {
	t.Helper()
	res, err := Run(model.Request{Mode: model.ModeTolerance, Primary: prim, Reference: ref, Threshold: threshold},
		toleranceSchema(), opt)
	require.NoError(t, err)
	return res
}

func TestTolerance_ZeroOrMissingValueNeverMatches(t *testing.T) {
	prim := tolerancePrimary([2]string{"SP01", "0"}, [2]string{"SP01", ""})
	ref := reference([3]string{"SP01", "0", "A"})

	res := runTolerance(t, prim, ref, 1, model.Options{})
	assert.Equal(t, []string{model.NotFoundText, model.NotFoundText}, texts(res))
}

func TestTolerance_BoundaryIsInclusive(t *testing.T) {
	prim := tolerancePrimary([2]string{"K", "100"})

	res := runTolerance(t, prim, reference([3]string{"K", "103", "up"}), 0.03, model.Options{})
	assert.Equal(t, []string{"up"}, texts(res))

	res = runTolerance(t, prim, reference([3]string{"K", "97", "down"}), 0.03, model.Options{})
	assert.Equal(t, []string{"down"}, texts(res))

	res = runTolerance(t, prim, reference([3]string{"K", "103.0001", "over"}), 0.03, model.Options{})
	assert.Equal(t, []string{model.NotFoundText}, texts(res))
}

func TestTolerance_BoundaryHoldsBelowDivisionPrecision(t *testing.T) {
	// ошибка превышает порог на ~3e-18, меньше 16 знаков деления decimal
	prim := tolerancePrimary([2]string{"K", "3"})

	res := runTolerance(t, prim, reference([3]string{"K", "3.09000000000000001", "over"}), 0.03, model.Options{})
	assert.Equal(t, []string{model.NotFoundText}, texts(res))

	res = runTolerance(t, prim, reference([3]string{"K", "2.90999999999999999", "under"}), 0.03, model.Options{})
	assert.Equal(t, []string{model.NotFoundText}, texts(res))

	res = runTolerance(t, prim, reference([3]string{"K", "3.09", "exact"}), 0.03, model.Options{})
	assert.Equal(t, []string{"exact"}, texts(res))
}

func TestTolerance_NegativeValueAlwaysQualifies(t *testing.T) {
	prim := tolerancePrimary([2]string{"K", "-100"})
	ref := reference([3]string{"K", "500", "far"})

	res := runTolerance(t, prim, ref, 0, model.Options{})
	assert.Equal(t, []string{"far"}, texts(res))
}

func TestTolerance_FirstTolerantMatchWinsNotTheClosest(t *testing.T) {
	prim := tolerancePrimary([2]string{"K", "100"})
	ref := reference(
		[3]string{"K", "150", "too far"},
		[3]string{"K", "102.5", "first"},
		[3]string{"K", "100", "exact"},
	)

	res := runTolerance(t, prim, ref, 0.03, model.Options{})
	assert.Equal(t, []string{"first"}, texts(res))
	assert.Equal(t, 1, res.Lookups[0].RefRow)
}

func TestTolerance_KeysAreNormalized(t *testing.T) {
	prim := tolerancePrimary(
		[2]string{"  SP\u00A0001\r\n", "100"},
		[2]string{"SP001", "100"},
	)
	ref := reference([3]string{"SP001 ", "100", "A"})

	res := runTolerance(t, prim, ref, 0.03, model.Options{})
	assert.Equal(t, []string{"A", "A"}, texts(res))
}

func TestTolerance_InvalidCompareIsMissing(t *testing.T) {
	prim := tolerancePrimary([2]string{"K", "100"})
	ref := reference([3]string{"K", "abc", "bad"}, [3]string{"K", "", "empty"}, [3]string{"K", "101", "good"})

	res := runTolerance(t, prim, ref, 0.03, model.Options{})
	assert.Equal(t, []string{"good"}, texts(res))
	assert.Equal(t, 1, res.Report.Coerced)
}

func TestTolerance_LocaleFormattedNumbers(t *testing.T) {
	prim := tolerancePrimary([2]string{"K", "1.000.000"})
	ref := reference([3]string{"K", "1.020.000,5", "vn"})

	// по умолчанию как to_numeric: локальная запись — не число
	res := runTolerance(t, prim, ref, 0.03, model.Options{})
	assert.Equal(t, []string{model.NotFoundText}, texts(res))
	assert.Equal(t, 2, res.Report.Coerced)

	res = runTolerance(t, prim, ref, 0.03, model.Options{LocaleNumbers: true})
	assert.Equal(t, []string{"vn"}, texts(res))
	assert.Zero(t, res.Report.Coerced)
}

func TestTolerance_UnicodeNFCOption(t *testing.T) {
	composed := "\u00C1o"    // Áo
	decomposed := "A\u0301o" // A + combining acute
	prim := tolerancePrimary([2]string{composed, "100"})
	ref := reference([3]string{decomposed, "100", "A"})

	res := runTolerance(t, prim, ref, 0.03, model.Options{})
	assert.Equal(t, []string{model.NotFoundText}, texts(res))

	res = runTolerance(t, prim, ref, 0.03, model.Options{UnicodeNFC: true})
	assert.Equal(t, []string{"A"}, texts(res))
}

func TestTolerance_KeyScopeTakesFirstQualifyingRowOfKey(t *testing.T) {
	prim := tolerancePrimary(
		[2]string{"K", "0"},
		[2]string{"K", "200"},
		[2]string{"K", "100"},
	)
	ref := reference([3]string{"K", "100", "hundred"}, [3]string{"K", "200", "two hundred"})

	res := runTolerance(t, prim, ref, 0.03, model.Options{Scope: model.ScopeRow})
	assert.Equal(t, []string{model.NotFoundText, "two hundred", "hundred"}, texts(res))

	res = runTolerance(t, prim, ref, 0.03, model.Options{Scope: model.ScopeKey})
	assert.Equal(t, []string{model.NotFoundText, "two hundred", "two hundred"}, texts(res))
}

func TestTolerance_DefaultsToKeyScope(t *testing.T) {
	prim := tolerancePrimary(
		[2]string{"K", "200"},
		[2]string{"K", "100"},
		[2]string{"K", "0"},
	)
	ref := reference([3]string{"K", "100", "hundred"}, [3]string{"K", "200", "two hundred"})

	res := runTolerance(t, prim, ref, 0.03, model.Options{})
	assert.Equal(t, model.ScopeKey, res.Report.Scope)
	assert.Equal(t, []string{"two hundred", "two hundred", model.NotFoundText}, texts(res))
}

func TestTolerance_ThresholdOutOfRange(t *testing.T) {
	prim := tolerancePrimary([2]string{"K", "100"})
	ref := reference([3]string{"K", "100", "A"})

	for _, th := range []float64{-0.01, 1.01} {
		_, err := Run(model.Request{Mode: model.ModeTolerance, Primary: prim, Reference: ref, Threshold: th},
			toleranceSchema(), model.Options{})
		assert.ErrorIs(t, err, ErrThreshold)
	}
}
