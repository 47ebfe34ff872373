package worktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 15, 30, 45} {
		for hours := 0; hours <= 12; hours++ {
			if hours == 0 && minutes == 0 {
				continue
			}
			h, m := Decode(Encode(hours, minutes))
			assert.Equal(t, hours, h, "hours for %d:%02d", hours, minutes)
			assert.Equal(t, minutes, m, "minutes for %d:%02d", hours, minutes)
		}
	}
}

func TestEncodeMonotonic(t *testing.T) {
	assert.Less(t, Encode(1, 30), Encode(2, 0))
	assert.Less(t, Encode(2, 0), Encode(2, 30))
	assert.Less(t, Encode(2, 30), Encode(3, 0))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2h30", Format(2.5))
	assert.Equal(t, "3h", Format(3.0))
	assert.Equal(t, "0h30", Format(0.5))
	assert.Equal(t, "1h15", Format(1.25))
}

func TestSumDoesNotDrift(t *testing.T) {
	// naive float summation of ten 0.1-hour-ish values drifts; whole-minute
	// accumulation must not
	halves := make([]float64, 10)
	for i := range halves {
		halves[i] = 0.5
	}
	assert.Equal(t, 5.0, Sum(halves...))

	assert.Equal(t, 4.0, Sum(1.5, 2.0, 0.5))
	assert.Equal(t, 0.0, Sum())
}
