package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollWindowFor(t *testing.T) {
	tests := []struct {
		name    string
		hours   float64
		minutes int
		force   bool
		want    PollWindow
	}{
		{"day before", 23.5, 1410, false, Window24h},
		{"more than a day", 24.5, 1470, false, WindowNone},
		{"three hours sharp", 3.0, 180, false, Window3h},
		{"two hours sharp", 2.0, 120, false, Window3h},
		{"just above three hours", 3.08, 185, false, WindowNone},
		{"fractional hour in band", 2.5, 150, false, WindowNone},
		{"ninety minute band on cadence", 1.25, 75, false, Window90m},
		{"ninety minute band off cadence", 1.2, 72, false, WindowNone},
		{"ninety minute band forced", 1.2, 72, true, Window90m},
		{"last band on cadence", 0.5, 30, false, WindowLast},
		{"last band off cadence", 0.52, 31, false, WindowNone},
		{"last band forced", 0.52, 31, true, WindowLast},
		{"outside every band", 10.0, 600, false, WindowNone},
		{"outside every band forced", 10.0, 600, true, WindowLast},
		{"departed forced", -0.5, -30, true, WindowLast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pollWindowFor(tt.hours, tt.minutes, tt.force))
		})
	}
}
