package season

import (
	"testing"
	"time"
)

func TestSynthesizeWindow(t *testing.T) {
	t.Parallel()

	start, end := SynthesizeWindow(2024)
	if want := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("unexpected start: %s", start)
	}
	if want := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Fatalf("unexpected end: %s", end)
	}
}
