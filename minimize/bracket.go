package minimize

import "math"

const (
	// Expansion ratio for the default magnification step.
	expandGold = 1.618034
	// Maximum magnification allowed for a parabolic-fit step.
	expandLimit = 100.0
	// Guards the parabolic fit against division by zero.
	tiny = 1e-20
	// Probe cap for the outward search, matching the minimizer's own
	// iteration cap. Exceeding it means the function has no bracketable
	// minimum in the search direction.
	maxProbes = 10000
)

// Bracket is a triplet of abscissas straddling a function minimum: the value
// at B is strictly lower than the values at both A and C. A, B, C are
// monotonic but may run in either direction, and may lie outside the
// interval the search started from.
type Bracket struct {
	A, B, C float64
}

// ParabolicBracketer searches outward from an initial interval until it
// brackets a minimum, using parabolic extrapolation through the three most
// recent points and falling back to golden-ratio magnification when the fit
// is degenerate or steps the wrong way.
//
// The zero value is ready to use.
type ParabolicBracketer struct{}

// BracketOut produces a bracketing triplet for f starting from a and b. The
// arguments are reoriented so the search runs downhill; the resulting
// triplet may extend well outside [a, b]. Returns a *BracketError if no
// bracket is found within the probe budget, or if the outward expansion
// escapes to an infinite abscissa or an unbounded-below function value
// before one is found.
func (ParabolicBracketer) BracketOut(f Func, a, b float64) (Bracket, error) {
	ax, bx := a, b
	fa, fb := f(ax), f(bx)
	if fb > fa {
		ax, bx = bx, ax
		fa, fb = fb, fa
	}
	cx := bx + expandGold*(bx-ax)
	fc := f(cx)

	probes := 0
expand:
	for {
		// An infinite probe abscissa, or a NaN or -Inf function value,
		// means there is no finite minimum to bracket in the search
		// direction. Without this check the NaN arithmetic that follows
		// would fall out of the loop as a bogus success.
		if math.IsInf(cx, 0) || math.IsNaN(cx) || math.IsNaN(fc) || math.IsInf(fc, -1) {
			return Bracket{}, &BracketError{Lower: a, Upper: b, Probes: probes}
		}
		if fb < fc {
			break
		}
		probes++
		if probes > maxProbes {
			return Bracket{}, &BracketError{Lower: a, Upper: b, Probes: probes - 1}
		}

		// Parabolic extrapolation through (ax, bx, cx).
		r := (bx - ax) * (fb - fc)
		q := (bx - cx) * (fb - fa)
		denom := 2 * math.Copysign(math.Max(math.Abs(q-r), tiny), q-r)
		u := bx - ((bx-cx)*q-(bx-ax)*r)/denom
		ulim := bx + expandLimit*(cx-bx)

		var fu float64
		switch {
		case (bx-u)*(u-cx) > 0:
			// Parabolic candidate between bx and cx.
			fu = f(u)
			if fu < fc {
				ax, fa = bx, fb
				bx, fb = u, fu
				break expand
			}
			if fu > fb {
				cx, fc = u, fu
				break expand
			}
			// The fit was no help; magnify past cx.
			u = cx + expandGold*(cx-bx)
			fu = f(u)
		case (cx-u)*(u-ulim) > 0:
			// Parabolic candidate beyond cx but within the step limit.
			fu = f(u)
			if fu < fc {
				bx, cx = cx, u
				fb, fc = fc, fu
				u = cx + expandGold*(cx-bx)
				fu = f(u)
			}
		case (u-ulim)*(ulim-cx) >= 0:
			// Clamp a runaway parabolic step to the limit.
			u = ulim
			fu = f(u)
		default:
			// Reject the candidate; magnify past cx.
			u = cx + expandGold*(cx-bx)
			fu = f(u)
		}

		ax, bx, cx = bx, cx, u
		fa, fb, fc = fb, fc, fu
	}

	// The expansion guarantees fb < fc but only fb <= fa. When the outer
	// values tie (a symmetric start, for instance), bisect the low side
	// until the middle value is strictly below both ends.
	for fa == fb {
		probes++
		if probes > maxProbes {
			return Bracket{}, &BracketError{Lower: a, Upper: b, Probes: probes - 1}
		}
		u := 0.5 * (ax + bx)
		if u == ax || u == bx {
			// The tie persists down to adjacent floats: a plateau, with
			// no strict bracket to be had.
			return Bracket{}, &BracketError{Lower: a, Upper: b, Probes: probes}
		}
		fu := f(u)
		switch {
		case math.IsNaN(fu):
			return Bracket{}, &BracketError{Lower: a, Upper: b, Probes: probes}
		case fu < fb:
			return Bracket{A: ax, B: u, C: bx}, nil
		case fu > fb:
			return Bracket{A: u, B: bx, C: cx}, nil
		default:
			ax, fa = u, fu
		}
	}
	return Bracket{A: ax, B: bx, C: cx}, nil
}
