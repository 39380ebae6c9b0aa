package analysis

import (
	"math"
	"testing"
)

func TestFFTTruncatesToPowerOfTwo(t *testing.T) {
	data := make([]float64, 100)
	out := FFT(data)
	if len(out) != 64 {
		t.Errorf("fft length = %d, want 64", len(out))
	}
}

func TestDominantFrequencyOfSine(t *testing.T) {
	// 8 cycles over 256 samples: frequency 8/256 cycles per sample.
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	got := DominantFrequency(data)
	want := 8.0 / float64(n)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("dominant frequency = %g, want %g", got, want)
	}
}

func TestDominantFrequencyFlatSeries(t *testing.T) {
	if got := DominantFrequency(make([]float64, 64)); got != 0 {
		t.Errorf("flat series frequency = %g, want 0", got)
	}
	if got := DominantFrequency([]float64{1}); got != 0 {
		t.Errorf("single sample frequency = %g, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4})
	if s.Mean != 2.5 || s.Min != 1 || s.Max != 4 {
		t.Errorf("summary = %+v", s)
	}
	want := math.Sqrt(1.25)
	if math.Abs(s.StdDev-want) > 1e-12 {
		t.Errorf("stddev = %g, want %g", s.StdDev, want)
	}

	if z := Summarize(nil); z != (Summary{}) {
		t.Errorf("empty summary = %+v", z)
	}
}
