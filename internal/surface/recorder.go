package surface

import (
	"image"
	"image/color"

	"walks/internal/core"
)

// OpKind identifies a recorded draw call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpFillRect
	OpLine
	OpDot
	OpPattern
	OpComposite
)

// Op is one draw call captured by a Recorder.
type Op struct {
	Kind      OpKind
	X1, Y1    float64
	X2, Y2    float64 // line end, or rectangle width/height
	Width     float64 // stroke width or dot radius
	Paint     Paint
	Composite Composite
}

// Recorder is a Canvas that records calls instead of rasterizing them. It is
// used by tests and by dry runs that only need the draw sequence.
type Recorder struct {
	size core.Size
	Ops  []Op

	// Fail, when non-nil, is consulted before every call; a non-nil result is
	// returned from that call and nothing is recorded.
	Fail func(op Op) error

	composite Composite
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder returns a Recorder reporting the given size.
func NewRecorder(size core.Size) *Recorder {
	return &Recorder{size: size}
}

func (r *Recorder) Size() core.Size { return r.size }

func (r *Recorder) Clear(bg color.Color) error {
	op := Op{Kind: OpClear}
	if bg != nil {
		op.Paint = Solid(color.NRGBAModel.Convert(bg).(color.NRGBA))
	}
	return r.record(op)
}

func (r *Recorder) FillRect(x, y, w, h float64, p Paint) error {
	return r.record(Op{Kind: OpFillRect, X1: x, Y1: y, X2: w, Y2: h, Paint: p})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64, p Paint) error {
	return r.record(Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Paint: p})
}

func (r *Recorder) Dot(x, y, radius float64, p Paint) error {
	return r.record(Op{Kind: OpDot, X1: x, Y1: y, Width: radius, Paint: p})
}

func (r *Recorder) FillPattern(tile image.Image) error {
	b := tile.Bounds()
	return r.record(Op{Kind: OpPattern, X2: float64(b.Dx()), Y2: float64(b.Dy())})
}

func (r *Recorder) SetComposite(mode Composite) error {
	if mode > CompositeOverlay {
		return ErrUnsupportedComposite
	}
	if err := r.record(Op{Kind: OpComposite, Composite: mode}); err != nil {
		return err
	}
	r.composite = mode
	return nil
}

// Composite returns the current compositing mode.
func (r *Recorder) Composite() Composite { return r.composite }

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded ops of the given kind in call order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) record(op Op) error {
	if r.Fail != nil {
		if err := r.Fail(op); err != nil {
			return err
		}
	}
	r.Ops = append(r.Ops, op)
	return nil
}
