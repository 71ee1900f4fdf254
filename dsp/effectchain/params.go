package effectchain

import "math"

// Params holds the raw numeric parameters supplied for one named effect.
type Params struct {
	Type string
	Num  map[string]float64
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetInt extracts a parameter truncated toward zero, returning def if it
// is missing, invalid or out of the int range.
func (p Params) GetInt(key string, def int) int {
	v := p.GetNum(key, math.NaN())
	if math.IsNaN(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return def
	}

	return int(v)
}

// getNumIf is GetNum with an extra acceptance test; values failing ok
// fall back to def.
func (p Params) getNumIf(key string, def float64, ok func(float64) bool) float64 {
	v := p.GetNum(key, def)
	if !ok(v) {
		return def
	}

	return v
}
