package envelope

// Line represents a tangent line y = Slope*x + Intercept of the log-density.
// Exponentiated, it is one piece of the piecewise-exponential envelope.
type Line struct {
	Slope     float64
	Intercept float64
}

// TangentAt builds the line through (x, value) with the given slope.
func TangentAt(x, value, slope float64) Line {
	return Line{Slope: slope, Intercept: value - slope*x}
}

// Y evaluates the line at x in log space.
func (l Line) Y(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// IntersectX returns the x-coordinate where l and o cross.
// The caller must ensure the slopes differ; parallel lines never cross.
func (l Line) IntersectX(o Line) float64 {
	return (o.Intercept - l.Intercept) / (l.Slope - o.Slope)
}
