package effect

import (
	"math"
	"testing"
	"time"

	"tableflip.dev/sidekick/pkg/entry"
)

var doses = []entry.Dose{entry.DoseLow, entry.DoseHigh}

func TestEffectAtNonPositiveHourIsZero(t *testing.T) {
	for _, dose := range doses {
		for _, offset := range []float64{-60, -15, 0, 30, 60} {
			for _, hour := range []float64{-5, -0.5, 0} {
				if got := EffectAt(hour, offset, dose); got != 0 {
					t.Fatalf("EffectAt(%v, %v, %d) = %v, want 0", hour, offset, dose, got)
				}
			}
		}
	}
}

func TestEffectAtBounded(t *testing.T) {
	for _, dose := range doses {
		for offset := -60.0; offset <= 60; offset += 15 {
			for hour := -1.0; hour <= 14; hour += 0.25 {
				got := EffectAt(hour, offset, dose)
				if got < 0 || got > 100 || math.IsNaN(got) {
					t.Fatalf("EffectAt(%v, %v, %d) = %v out of range", hour, offset, dose, got)
				}
			}
		}
	}
}

func TestEffectAtTail(t *testing.T) {
	// The base curve reaches 2 at hour 12; shaping compresses that to 100*0.02^1.3.
	want := math.Pow(0.02, displayExponent) * 100
	got := EffectAt(12, 0, entry.DoseLow)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("EffectAt(12) = %v, want %v", got, want)
	}
	if got <= 0 || got >= 1 {
		t.Fatalf("expected a small positive tail, got %v", got)
	}
	if EffectAt(12.5, 0, entry.DoseLow) != 0 {
		t.Fatalf("expected zero past the window")
	}
}

func TestEffectAtPeaks(t *testing.T) {
	if got := EffectAt(1.5, 0, entry.DoseLow); got != 100 {
		t.Fatalf("expected first peak at 100, got %v", got)
	}
	plateau := math.Pow(0.8, displayExponent) * 100
	if got := EffectAt(3.5, 0, entry.DoseLow); math.Abs(got-plateau) > 1e-9 {
		t.Fatalf("expected plateau %v, got %v", plateau, got)
	}
}

func TestEffectAtDoseMonotonic(t *testing.T) {
	for offset := -60.0; offset <= 60; offset += 10 {
		for hour := 0.0; hour <= 13; hour += 0.25 {
			low := EffectAt(hour, offset, entry.DoseLow)
			high := EffectAt(hour, offset, entry.DoseHigh)
			if high < low {
				t.Fatalf("hour %v offset %v: high dose %v < low dose %v", hour, offset, high, low)
			}
		}
	}
}

func TestEffectAtOffsetDelaysOnset(t *testing.T) {
	delayed := EffectAt(1, 30, entry.DoseLow)
	onTime := EffectAt(1, 0, entry.DoseLow)
	early := EffectAt(1, -30, entry.DoseLow)
	if delayed > onTime {
		t.Fatalf("positive offset should delay onset: %v > %v", delayed, onTime)
	}
	if early < onTime {
		t.Fatalf("negative offset should speed onset: %v < %v", early, onTime)
	}
}

func TestBuildEffectPoints(t *testing.T) {
	points := BuildEffectPoints(entry.DoseHigh, 15)
	if len(points) != 25 {
		t.Fatalf("expected 25 points, got %d", len(points))
	}
	for i, p := range points {
		if want := float64(i) * 0.5; p.Hour != want {
			t.Fatalf("point %d: hour %v, want %v", i, p.Hour, want)
		}
		if p.Effect < 0 || p.Effect > 100 {
			t.Fatalf("point %d: effect %v out of range", i, p.Effect)
		}
		if p.Effect != math.Round(p.Effect*100)/100 {
			t.Fatalf("point %d: effect %v not rounded", i, p.Effect)
		}
	}
	if points[0].Hour != 0 || points[24].Hour != 12 {
		t.Fatalf("unexpected span %v..%v", points[0].Hour, points[24].Hour)
	}
}

func TestCurrentMarker(t *testing.T) {
	now := time.Date(2026, time.May, 4, 14, 0, 0, 0, time.Local)

	if m := CurrentMarker(nil, 0, now); m.CurrentHour != 0 || m.IsActive {
		t.Fatalf("expected inactive zero marker, got %+v", m)
	}

	taken := now.Add(-3 * time.Hour)
	m := CurrentMarker(&taken, 30, now)
	if m.CurrentHour != 2.5 || !m.IsActive {
		t.Fatalf("expected active marker at 2.5h, got %+v", m)
	}

	old := now.Add(-13 * time.Hour)
	m = CurrentMarker(&old, 0, now)
	if m.CurrentHour != 12 || m.IsActive {
		t.Fatalf("expected inactive marker clamped to 12, got %+v", m)
	}

	future := now.Add(10 * time.Minute)
	m = CurrentMarker(&future, 0, now)
	if m.CurrentHour != 0 || m.IsActive {
		t.Fatalf("expected inactive marker clamped to 0, got %+v", m)
	}

	edge := now.Add(-12 * time.Hour)
	if m := CurrentMarker(&edge, 0, now); !m.IsActive {
		t.Fatalf("expected marker exactly at 12h to be active, got %+v", m)
	}
}
