// Package effect models a display curve of how strongly a dose is felt over
// the hours after an intake. It is a presentation heuristic, not a
// pharmacological model.
package effect

import (
	"math"
	"time"

	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/timeutil"
)

const (
	WindowStartHours = 0.0
	WindowEndHours   = 12.0

	sampleStep      = 0.5
	displayExponent = 1.3
	highDoseScale   = 1.15
)

// The base curve: ramp to a first peak, settle on a plateau, climb to a
// second peak, then decay exponentially to tailTarget at endHour.
var curve = struct {
	startHour, peak1Hour, plateauStartHour, plateauEndHour, peak2Hour, endHour float64
	peak1Effect, plateauEffect, peak2Effect, tailTarget                        float64
}{
	startHour:        0,
	peak1Hour:        1.5,
	plateauStartHour: 3,
	plateauEndHour:   4,
	peak2Hour:        5.5,
	endHour:          12,
	peak1Effect:      100,
	plateauEffect:    80,
	peak2Effect:      95,
	tailTarget:       2,
}

// decay makes the tail hit tailTarget exactly at endHour.
var decay = math.Log(curve.peak2Effect/curve.tailTarget) / (curve.endHour - curve.peak2Hour)

// Point is one sample of the curve.
type Point struct {
	Hour   float64 `json:"hour"`
	Effect float64 `json:"effect"`
}

// Marker locates "now" on the curve.
type Marker struct {
	CurrentHour float64 `json:"currentHour"`
	IsActive    bool    `json:"isActive"`
}

func lerp(from, to, ratio float64) float64 {
	return from + (to-from)*ratio
}

func baseEffect(hour float64) float64 {
	c := curve
	switch {
	case hour <= c.startHour:
		return 0
	case hour <= c.peak1Hour:
		return lerp(0, c.peak1Effect, (hour-c.startHour)/(c.peak1Hour-c.startHour))
	case hour <= c.plateauStartHour:
		return lerp(c.peak1Effect, c.plateauEffect, (hour-c.peak1Hour)/(c.plateauStartHour-c.peak1Hour))
	case hour <= c.plateauEndHour:
		return c.plateauEffect
	case hour <= c.peak2Hour:
		return lerp(c.plateauEffect, c.peak2Effect, (hour-c.plateauEndHour)/(c.peak2Hour-c.plateauEndHour))
	case hour <= c.endHour:
		return c.peak2Effect * math.Exp(-decay*(hour-c.peak2Hour))
	default:
		return 0
	}
}

func doseScale(dose entry.Dose) float64 {
	if dose == entry.DoseHigh {
		return highDoseScale
	}
	return 1
}

// shape compresses low values for display and bounds the result to [0,100].
func shape(v float64) float64 {
	normalized := timeutil.Clamp(v/100, 0, 1)
	return timeutil.Clamp(math.Pow(normalized, displayExponent)*100, 0, 100)
}

// EffectAt returns the displayed effect in [0,100] hour hours after an
// intake. A positive offset delays onset. Hours at or before zero are always
// zero.
func EffectAt(hour, offsetMinutes float64, dose entry.Dose) float64 {
	if hour <= 0 {
		return 0
	}
	effective := hour - offsetMinutes/60
	return shape(baseEffect(effective) * doseScale(dose))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildEffectPoints samples the curve every half hour across the window.
func BuildEffectPoints(dose entry.Dose, offsetMinutes float64) []Point {
	n := int((WindowEndHours-WindowStartHours)/sampleStep) + 1
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		h := WindowStartHours + float64(i)*sampleStep
		points = append(points, Point{
			Hour:   round2(h),
			Effect: round2(EffectAt(h, offsetMinutes, dose)),
		})
	}
	return points
}

// CurrentMarker places now on the curve of an intake taken at takenAt. The
// hour is clamped into the window for drawing, while IsActive uses the
// unclamped value, so the marker rests on the edge once the window passed.
func CurrentMarker(takenAt *time.Time, offsetMinutes float64, now time.Time) Marker {
	if takenAt == nil {
		return Marker{}
	}
	adjusted := timeutil.HoursBetween(now, *takenAt) - offsetMinutes/60
	return Marker{
		CurrentHour: timeutil.Clamp(adjusted, WindowStartHours, WindowEndHours),
		IsActive:    adjusted >= WindowStartHours && adjusted <= WindowEndHours,
	}
}
