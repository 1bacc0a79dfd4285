package curves

import (
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/stretchr/testify/assert"
	"testing"
)

func createDefaultCurve() *DemandCurve {
	return NewDemandCurve(configuration.DefaultControllerConfig().Curve)
}

func TestDemandPercent_BelowBase(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve()

	for _, temp := range []float64{-10, 0, 20, 29.99, 30} {
		// WHEN
		result := curve.DemandPercent(temp)

		// THEN
		assert.Equal(t, 0.0, result, "temp %f", temp)
	}
}

func TestDemandPercent_Anchors(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve()
	expectedInputOutput := map[float64]float64{
		40: 5,
		45: 40,
		55: 200,
	}

	for input, output := range expectedInputOutput {
		// WHEN
		result := curve.DemandPercent(input)

		// THEN
		assert.InDelta(t, output, result, 0.000001, "temp %f", input)
	}
}

func TestDemandPercent_FirstSegment(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve()

	// WHEN
	justAboveBase := curve.DemandPercent(30.000001)
	middle := curve.DemandPercent(35)
	justBelowKnee := curve.DemandPercent(39.999999)

	// THEN
	assert.InDelta(t, 0, justAboveBase, 0.0001)
	assert.InDelta(t, 2.5, middle, 0.000001)
	assert.InDelta(t, 5, justBelowKnee, 0.0001)
}

func TestDemandPercent_SecondSegment(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve()

	// WHEN
	result := curve.DemandPercent(42.5)

	// THEN
	assert.InDelta(t, 22.5, result, 0.000001)
}

func TestDemandPercent_Extrapolated(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve()

	// WHEN
	result := curve.DemandPercent(60)

	// THEN
	assert.InDelta(t, 280, result, 0.000001)
}

func TestDemandPercent_Monotonic(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve()

	// WHEN
	last := curve.DemandPercent(30)
	for temp := 30.0; temp <= 80; temp += 0.25 {
		result := curve.DemandPercent(temp)

		// THEN
		assert.GreaterOrEqual(t, result, last, "temp %f", temp)
		last = result
	}
}

func TestDemandPercent_CustomKnees(t *testing.T) {
	// GIVEN
	curve := NewDemandCurve(configuration.DemandCurveConfig{
		BaseTemp: 20,
		Knees: []configuration.KneeConfig{
			{Temp: 30, Demand: 10},
			{Temp: 40, Demand: 50},
			{Temp: 50, Demand: 100},
		},
	})

	// WHEN
	result := curve.DemandPercent(45)

	// THEN
	assert.InDelta(t, 75, result, 0.000001)
}

func TestTable(t *testing.T) {
	// GIVEN
	curve := createDefaultCurve()

	// WHEN
	points := curve.Table(30, 55, 5)

	// THEN
	assert.Equal(t, []Point{
		{Temp: 30, Demand: 0},
		{Temp: 35, Demand: 2.5},
		{Temp: 40, Demand: 5},
		{Temp: 45, Demand: 40},
		{Temp: 50, Demand: 120},
		{Temp: 55, Demand: 200},
	}, points)
}

func TestTableInvalidStep(t *testing.T) {
	assert.Nil(t, createDefaultCurve().Table(30, 55, 0))
}
