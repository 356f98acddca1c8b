package rastutil

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Point tags.
const (
	TagOn    uint8 = 1 << iota // on curve
	TagCubic                   // off curve cubic control (else quadratic)
)

// Glyph outline in 26.6 pixel units, y axis pointing up.
type Outline struct {
	Points []fixed.Point26_6
	Tags   []uint8
	Ends   []int // exclusive end index of each contour
}

func (o *Outline) Empty() bool {
	return len(o.Ends) == 0 || o.Ends[len(o.Ends)-1] == 0
}

func (o *Outline) Translate(dx, dy fixed.Int26_6) {
	if dx == 0 && dy == 0 {
		return
	}
	for i := range o.Points {
		o.Points[i].X += dx
		o.Points[i].Y += dy
	}
}

//----------

// 2x2 matrix in 16.16 fixed point.
type Matrix struct {
	XX, XY int32
	YX, YY int32
}

var MatrixIdentity = Matrix{XX: 1 << 16, YY: 1 << 16}

func (o *Outline) Transform(m Matrix) {
	for i, p := range o.Points {
		o.Points[i] = fixed.Point26_6{
			X: mulFix(p.X, m.XX) + mulFix(p.Y, m.XY),
			Y: mulFix(p.X, m.YX) + mulFix(p.Y, m.YY),
		}
	}
}

func mulFix(a fixed.Int26_6, b int32) fixed.Int26_6 {
	v := int64(a) * int64(b)
	if v >= 0 {
		return fixed.Int26_6((v + 0x8000) >> 16)
	}
	return -fixed.Int26_6((-v + 0x8000) >> 16)
}

//----------

// Moves each point along the bisector of its adjacent edges so that every
// edge is pushed outwards by half the strength in each axis.
func (o *Outline) EmboldenXY(xstr, ystr fixed.Int26_6) {
	area := o.signedArea()
	if area == 0 || (xstr == 0 && ystr == 0) {
		return
	}
	sx := float64(xstr) / 2
	sy := float64(ystr) / 2
	// y up: counter-clockwise contours have the outside on the right
	ccw := area > 0

	shifted := make([]fixed.Point26_6, len(o.Points))
	start := 0
	for _, end := range o.Ends {
		n := end - start
		for i := 0; i < n; i++ {
			p := o.Points[start+i]
			prev := o.Points[start+(i+n-1)%n]
			next := o.Points[start+(i+1)%n]

			inX, inY, ok1 := unitVec(p.X-prev.X, p.Y-prev.Y)
			outX, outY, ok2 := unitVec(next.X-p.X, next.Y-p.Y)
			shifted[start+i] = p
			if !ok1 || !ok2 {
				continue
			}
			d := inX*outX + inY*outY
			if d <= -0.9375 { // near reversal
				continue
			}
			// sum of the outward normals of both edges
			nx, ny := inY+outY, -(inX + outX)
			if !ccw {
				nx, ny = -nx, -ny
			}
			k := 1 / (1 + d)
			shifted[start+i].X += fixed.Int26_6(math.Round(nx * k * sx))
			shifted[start+i].Y += fixed.Int26_6(math.Round(ny * k * sy))
		}
		start = end
	}
	o.Points = shifted
}

func unitVec(dx, dy fixed.Int26_6) (float64, float64, bool) {
	x, y := float64(dx), float64(dy)
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0, false
	}
	return x / l, y / l, true
}

// Shoelace sum over all contours (control points included).
func (o *Outline) signedArea() int64 {
	a := int64(0)
	start := 0
	for _, end := range o.Ends {
		n := end - start
		for i := 0; i < n; i++ {
			p := o.Points[start+i]
			q := o.Points[start+(i+1)%n]
			a += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
		}
		start = end
	}
	return a
}

//----------

// Control box of all points.
func (o *Outline) Bounds() fixed.Rectangle26_6 {
	if o.Empty() {
		return fixed.Rectangle26_6{}
	}
	ps := o.Points[:o.Ends[len(o.Ends)-1]]
	r := fixed.Rectangle26_6{Min: ps[0], Max: ps[0]}
	for _, p := range ps[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}

//----------

type pathSink interface {
	Start(a fixed.Point26_6)
	Add1(b fixed.Point26_6)
	Add2(b, c fixed.Point26_6)
	Add3(b, c, d fixed.Point26_6)
}

// Walks the contours emitting lines, quadratics and cubics. Consecutive
// quadratic controls get an implied on-curve midpoint.
func (o *Outline) decompose(s pathSink, tr func(fixed.Point26_6) fixed.Point26_6) {
	start := 0
	for _, end := range o.Ends {
		o.decomposeContour(s, tr, start, end)
		start = end
	}
}

func (o *Outline) decomposeContour(s pathSink, tr func(fixed.Point26_6) fixed.Point26_6, i0, i1 int) {
	if i1-i0 == 0 {
		return
	}
	ps := o.Points[i0:i1]
	tags := o.Tags[i0:i1]
	on := func(i int) bool { return tags[i]&TagOn != 0 }

	var start fixed.Point26_6
	if on(0) {
		start = tr(ps[0])
	} else {
		last := tr(ps[len(ps)-1])
		if on(len(ps) - 1) {
			start = last
		} else {
			start = midPoint(tr(ps[0]), last)
		}
	}
	s.Start(start)

	q0, on0 := start, true
	var cubic []fixed.Point26_6
	for i, p := range ps {
		q := tr(p)
		if tags[i]&TagCubic != 0 {
			cubic = append(cubic, q)
			continue
		}
		if on(i) {
			switch {
			case len(cubic) >= 2:
				s.Add3(cubic[0], cubic[1], q)
				cubic = cubic[:0]
			case on0:
				s.Add1(q)
			default:
				s.Add2(q0, q)
			}
		} else if !on0 {
			s.Add2(q0, midPoint(q0, q))
		}
		q0, on0 = q, on(i)
	}
	// close
	switch {
	case len(cubic) >= 2:
		s.Add3(cubic[0], cubic[1], start)
	case on0:
		s.Add1(start)
	default:
		s.Add2(q0, start)
	}
}

func midPoint(a, b fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
