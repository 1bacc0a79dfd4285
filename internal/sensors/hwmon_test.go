package sensors

import (
	"context"
	"errors"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"math"
	"regexp"
	"testing"
)

func createHwMonReader(key string, temps []host.TemperatureStat, err error) *HwMonReader {
	reader := NewHwMonReader(regexp.MustCompile(key))
	reader.sensorsTemperatures = func(ctx context.Context) ([]host.TemperatureStat, error) {
		return temps, err
	}
	return reader
}

var hwmonTemps = []host.TemperatureStat{
	{SensorKey: "coretemp_package_id_0", Temperature: 45},
	{SensorKey: "coretemp_core_0", Temperature: 41},
	{SensorKey: "coretemp_core_1", Temperature: 43},
	{SensorKey: "nvme_composite", Temperature: 38},
}

func TestHwMonReader_FiltersByKey(t *testing.T) {
	// GIVEN
	reader := createHwMonReader(`coretemp_core_\d+`, hwmonTemps, nil)

	// WHEN
	samples, err := reader.Read(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []float64{41, 43}, samples)
}

func TestHwMonReader_PartialResultWithWarnings(t *testing.T) {
	// GIVEN
	reader := createHwMonReader(`coretemp_package`, hwmonTemps, errors.New("some chips could not be read"))

	// WHEN
	samples, err := reader.Read(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []float64{45}, samples)
}

func TestHwMonReader_Error(t *testing.T) {
	// GIVEN
	reader := createHwMonReader(`coretemp`, nil, errors.New("no hwmon"))

	// WHEN
	samples, err := reader.Read(context.Background())

	// THEN
	assert.EqualError(t, err, "no hwmon")
	assert.Nil(t, samples)
}

func TestHwMonReader_NoMatchingKey(t *testing.T) {
	// GIVEN
	reader := createHwMonReader(`k10temp`, hwmonTemps, nil)

	// WHEN
	samples, err := reader.Read(context.Background())

	// THEN
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, samples)
}

func TestHwMonReader_NonFiniteTemperature(t *testing.T) {
	// GIVEN
	temps := []host.TemperatureStat{
		{SensorKey: "coretemp_core_0", Temperature: 41},
		{SensorKey: "coretemp_core_1", Temperature: math.Inf(1)},
	}
	reader := createHwMonReader(`coretemp_core_\d+`, temps, nil)

	// WHEN
	samples, err := reader.Read(context.Background())

	// THEN
	assert.ErrorIs(t, err, ErrNotFinite)
	assert.Nil(t, samples)
}
