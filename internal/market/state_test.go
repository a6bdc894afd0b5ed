package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiquidityHeadroom(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		max      float64
		expected float64
	}{
		{"half used", 500, 1000, 0.5},
		{"unused", 0, 1000, 1.0},
		{"fully used", 1000, 1000, 0.0},
		{"over max clamps to zero", 1500, 1000, 0.0},
		{"zero max undefined", 500, 0, 0.0},
		{"negative current clamps to one", -100, 1000, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &State{CurrentExposure: tt.current, MaxExposure: tt.max}
			assert.InDelta(t, tt.expected, st.LiquidityHeadroom(), 1e-9)
		})
	}
}

func TestUtilization_ZeroMaxExposure(t *testing.T) {
	st := &State{CurrentExposure: 500, MaxExposure: 0}
	assert.Equal(t, 0.0, st.Utilization())
}

func TestSideAccessors(t *testing.T) {
	st := &State{
		HomeOdds:           1.9,
		AwayOdds:           2.1,
		OverOdds:           1.95,
		UnderOdds:          1.85,
		HomeSpreadOdds:     1.91,
		AwaySpreadOdds:     1.89,
		ExposureHome:       10,
		ExposureAway:       20,
		ExposureOver:       30,
		ExposureUnder:      40,
		ExposureHomeSpread: 50,
		ExposureAwaySpread: 60,
	}

	assert.Equal(t, 1.9, st.SideOdds(SideHome))
	assert.Equal(t, 2.1, st.SideOdds(SideAway))
	assert.Equal(t, 1.95, st.SideOdds(SideOver))
	assert.Equal(t, 1.85, st.SideOdds(SideUnder))
	assert.Equal(t, 1.91, st.SideOdds(SideHomeSpread))
	assert.Equal(t, 1.89, st.SideOdds(SideAwaySpread))

	assert.Equal(t, 10.0, st.SideExposure(SideHome))
	assert.Equal(t, 60.0, st.SideExposure(SideAwaySpread))
	assert.InDelta(t, 210, st.TrackedExposure(), 1e-9)
}
