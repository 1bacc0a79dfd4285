package sensors

import (
	"context"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/stretchr/testify/assert"
	"regexp"
	"testing"
	"time"
)

const (
	ipmitoolSdrOutput = `Inlet Temp       | 04h | ok  |  7.1 | 21 degrees C
Exhaust Temp     | 01h | ok  |  7.1 | 30 degrees C
Temp             | 0Eh | ok  |  3.1 | 41 degrees C`

	lmSensorsCoreOutput = `Core 0:        +35.0°C  (high = +82.0°C, crit = +92.0°C)
Core 1:        +36.0°C  (high = +82.0°C, crit = +92.0°C)`

	hddtempOutput = `/dev/sda: WDC WD40EFRX-68N32N0: 31°C
/dev/sdb: HGST HUS726040ALA610: 33°C`
)

func TestExtractSamples_Ipmitool(t *testing.T) {
	// GIVEN
	pattern := regexp.MustCompile(`.*\| ([^ ]+) degrees C.*`)
	output := "Inlet Temp       | 04h | ok  |  7.1 | 21 degrees C"

	// WHEN
	samples, err := ExtractSamples(pattern, output)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []float64{21}, samples)
}

func TestExtractSamples_IpmitoolAllLines(t *testing.T) {
	// GIVEN
	pattern := regexp.MustCompile(`.*\| ([^ ]+) degrees C.*`)

	// WHEN
	samples, err := ExtractSamples(pattern, ipmitoolSdrOutput)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []float64{21, 30, 41}, samples)
}

func TestExtractSamples_LmSensors(t *testing.T) {
	// GIVEN
	pattern := regexp.MustCompile(`.*:\s+\+([^ ]+).C.*`)

	// WHEN
	samples, err := ExtractSamples(pattern, lmSensorsCoreOutput)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []float64{35, 36}, samples)
}

func TestExtractSamples_Hddtemp(t *testing.T) {
	// GIVEN
	pattern := regexp.MustCompile(`/dev/sd[a-z]:\s[a-zA-Z0-9-]*\s[a-zA-Z0-9-]*:\s([^ ]+).C`)

	// WHEN
	samples, err := ExtractSamples(pattern, hddtempOutput)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []float64{31, 33}, samples)
}

func TestExtractSamples_WithoutGroup(t *testing.T) {
	// GIVEN
	pattern := regexp.MustCompile(`\d+\.\d+`)

	// WHEN
	samples, err := ExtractSamples(pattern, "42.5 and 43.0")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []float64{42.5, 43}, samples)
}

func TestExtractSamples_NoMatch(t *testing.T) {
	// GIVEN
	pattern := regexp.MustCompile(`.*\| ([^ ]+) degrees C.*`)

	// WHEN
	samples, err := ExtractSamples(pattern, "Inlet Temp | 04h | ns | 7.1 | No Reading")

	// THEN
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Empty(t, samples)
}

func TestExtractSamples_UnparseableMatchDropsAll(t *testing.T) {
	// GIVEN
	pattern := regexp.MustCompile(`temp: (\S+)`)

	// WHEN
	samples, err := ExtractSamples(pattern, "temp: 40\ntemp: n/a")

	// THEN
	assert.Error(t, err)
	assert.Nil(t, samples)
}

func TestExtractSamples_NonFiniteMatchDropsAll(t *testing.T) {
	pattern := regexp.MustCompile(`.*\| ([^ ]+) degrees C.*`)
	for _, value := range []string{"inf", "-Inf", "nan", "1e400"} {
		t.Run(value, func(t *testing.T) {
			// WHEN
			samples, err := ExtractSamples(pattern, "Inlet Temp       | 04h | ok  |  7.1 | "+value+" degrees C")

			// THEN
			assert.Error(t, err)
			assert.Nil(t, samples)
		})
	}
}

func TestCmdReader_Read(t *testing.T) {
	// GIVEN
	config := configuration.SourceConfig{
		ID:      "ambient",
		Pattern: `.*\| ([^ ]+) degrees C.*`,
		Cmd: &configuration.CmdSourceConfig{
			Exec:    "echo",
			Args:    []string{"Inlet Temp       | 04h | ok  |  7.1 | 23 degrees C"},
			Timeout: time.Second,
		},
	}
	reader, _ := NewReader(config)

	// WHEN
	samples, err := reader.Read(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []float64{23}, samples)
}

func TestCmdReader_ReadFailingCommand(t *testing.T) {
	// GIVEN
	config := configuration.SourceConfig{
		ID:      "ambient",
		Pattern: `(\d+)`,
		Cmd: &configuration.CmdSourceConfig{
			Exec: "false",
		},
	}
	reader, _ := NewReader(config)

	// WHEN
	samples, err := reader.Read(context.Background())

	// THEN
	assert.Error(t, err)
	assert.Nil(t, samples)
}
