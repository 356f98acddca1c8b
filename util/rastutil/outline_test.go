package rastutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"
)

// 10x10 pixel square, counter-clockwise
func squareOutline() *Outline {
	return &Outline{
		Points: []fixed.Point26_6{
			{X: 0, Y: 0},
			{X: 640, Y: 0},
			{X: 640, Y: 640},
			{X: 0, Y: 640},
		},
		Tags: []uint8{TagOn, TagOn, TagOn, TagOn},
		Ends: []int{4},
	}
}

func TestOutlineTranslate(t *testing.T) {
	o := squareOutline()
	o.Translate(21, 0)
	b := o.Bounds()
	want := fixed.Rectangle26_6{Min: fixed.Point26_6{X: 21}, Max: fixed.Point26_6{X: 661, Y: 640}}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Fatal(diff)
	}
}

func TestOutlineTransformShear(t *testing.T) {
	o := squareOutline()
	o.Transform(MatrixIdentity)
	if diff := cmp.Diff(squareOutline(), o); diff != "" {
		t.Fatal(diff)
	}
	o.Transform(Matrix{XX: 1 << 16, XY: 1 << 14, YY: 1 << 16})
	// top edge leans right by a quarter of the height
	if p := o.Points[3]; p.X != 160 || p.Y != 640 {
		t.Fatal(p)
	}
	if p := o.Points[1]; p.X != 640 || p.Y != 0 {
		t.Fatal(p)
	}
}

func TestOutlineEmbolden(t *testing.T) {
	for _, reverse := range []bool{false, true} {
		o := squareOutline()
		if reverse { // clockwise
			o.Points[1], o.Points[3] = o.Points[3], o.Points[1]
		}
		o.EmboldenXY(64, 0)
		b := o.Bounds()
		if b.Min.X != -32 || b.Max.X != 672 {
			t.Fatalf("reverse=%v: %v", reverse, b)
		}
		if b.Min.Y != 0 || b.Max.Y != 640 {
			t.Fatalf("reverse=%v: %v", reverse, b)
		}
	}
}

func TestOutlineEmpty(t *testing.T) {
	o := &Outline{}
	if !o.Empty() {
		t.Fatal()
	}
	if b := o.Bounds(); b != (fixed.Rectangle26_6{}) {
		t.Fatal(b)
	}
	o.EmboldenXY(32, 0) // no-op
}

//----------

type recSink struct {
	ops []string
	pts []fixed.Point26_6
}

func (s *recSink) Start(a fixed.Point26_6) { s.add("start", a) }
func (s *recSink) Add1(b fixed.Point26_6)  { s.add("line", b) }
func (s *recSink) Add2(b, c fixed.Point26_6) {
	s.add("quad", b, c)
}
func (s *recSink) Add3(b, c, d fixed.Point26_6) {
	s.add("cube", b, c, d)
}
func (s *recSink) add(op string, ps ...fixed.Point26_6) {
	s.ops = append(s.ops, op)
	s.pts = append(s.pts, ps...)
}

func identity(p fixed.Point26_6) fixed.Point26_6 { return p }

func TestDecomposeLines(t *testing.T) {
	s := &recSink{}
	squareOutline().decompose(s, identity)
	want := []string{"start", "line", "line", "line", "line", "line"}
	if diff := cmp.Diff(want, s.ops); diff != "" {
		t.Fatal(diff)
	}
	if last := s.pts[len(s.pts)-1]; last != (fixed.Point26_6{}) {
		t.Fatal(last)
	}
}

func TestDecomposeOffCurve(t *testing.T) {
	// two consecutive quadratic controls imply an on-curve midpoint
	o := &Outline{
		Points: []fixed.Point26_6{{X: 0, Y: 0}, {X: 64, Y: 64}, {X: 128, Y: 64}, {X: 192, Y: 0}},
		Tags:   []uint8{TagOn, 0, 0, TagOn},
		Ends:   []int{4},
	}
	s := &recSink{}
	o.decompose(s, identity)
	want := []string{"start", "line", "quad", "quad", "line"}
	if diff := cmp.Diff(want, s.ops); diff != "" {
		t.Fatal(diff)
	}
	// midpoint between the controls
	if p := s.pts[3]; p != (fixed.Point26_6{X: 96, Y: 64}) {
		t.Fatal(p)
	}
}

func TestDecomposeCubic(t *testing.T) {
	o := &Outline{
		Points: []fixed.Point26_6{{X: 0, Y: 0}, {X: 0, Y: 64}, {X: 64, Y: 64}, {X: 64, Y: 0}},
		Tags:   []uint8{TagOn, TagCubic, TagCubic, TagOn},
		Ends:   []int{4},
	}
	s := &recSink{}
	o.decompose(s, identity)
	want := []string{"start", "line", "cube", "line"}
	if diff := cmp.Diff(want, s.ops); diff != "" {
		t.Fatal(diff)
	}
}
