package anim

import "math"

// Segment is one leg of a Timeline: interpolate From to To over DurationMs
// using Easing (nil means Linear).
type Segment struct {
	From, To   float64
	DurationMs float64
	Easing     Curve
}

// Timeline samples a normalized sequence of segments by elapsed time.
// Looping wraps elapsed modulo the total duration; a degenerate all-zero-
// duration timeline resolves to the final segment's To value immediately;
// non-finite elapsed resolves to the first segment's From value.
type Timeline struct {
	Segments []Segment
	Loop     bool
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) // false for NaN and +/-Inf
}

// TotalMs returns the sum of every segment's duration.
func (tl *Timeline) TotalMs() float64 {
	total := 0.0
	for _, s := range tl.Segments {
		total += s.DurationMs
	}
	return total
}

// Sample returns the interpolated value at elapsedMs.
func (tl *Timeline) Sample(elapsedMs float64) float64 {
	if len(tl.Segments) == 0 {
		return 0
	}
	if !isFinite(elapsedMs) {
		return tl.Segments[0].From
	}

	total := tl.TotalMs()
	if total <= 0 {
		return tl.Segments[len(tl.Segments)-1].To
	}

	e := elapsedMs
	if e < 0 {
		e = 0
	}
	if tl.Loop {
		e = mod(e, total)
	} else if e >= total {
		return tl.Segments[len(tl.Segments)-1].To
	}

	acc := 0.0
	for _, seg := range tl.Segments {
		if seg.DurationMs <= 0 {
			if e <= acc {
				return seg.To
			}
			acc += seg.DurationMs
			continue
		}
		if e <= acc+seg.DurationMs {
			t := (e - acc) / seg.DurationMs
			ease := seg.Easing
			if ease == nil {
				ease = Linear
			}
			return Lerp(seg.From, seg.To, ease(clampUnit(t)))
		}
		acc += seg.DurationMs
	}
	return tl.Segments[len(tl.Segments)-1].To
}

// Done reports whether a non-looping timeline has finished by elapsedMs.
func (tl *Timeline) Done(elapsedMs float64) bool {
	if tl.Loop {
		return false
	}
	return isFinite(elapsedMs) && elapsedMs >= tl.TotalMs()
}

func mod(a, b float64) float64 {
	m := a
	for m >= b {
		m -= b
	}
	for m < 0 {
		m += b
	}
	return m
}
