// Package diagram defines the execution engine's output: an ordered list of
// drawing commands with fully resolved numeric geometry, plus print output
// and the declared user controls. This is the stable contract between the
// engine and the external renderer/stylesheet components.
package diagram

import (
	"github.com/freixas/gamma-sub005/internal/relativity"
)

// Diagram is the complete result of one execution pass.
type Diagram struct {
	Commands []Command `json:"commands"`
	Prints   []string  `json:"prints,omitempty"`
	Controls []Control `json:"controls,omitempty"`
}

// Command is one resolved drawing command. Style is an opaque class/style
// tag for the external stylesheet resolver; the engine passes it through
// unmodified.
type Command struct {
	Kind  string `json:"kind"`
	Args  []Arg  `json:"args,omitempty"`
	Style string `json:"style,omitempty"`
}

// Arg is a named command argument with resolved geometry.
type Arg struct {
	Key string   `json:"key"`
	Val ArgValue `json:"val"`
}

// ValueKind tags an ArgValue.
type ValueKind string

const (
	KindNumber   ValueKind = "number"
	KindString   ValueKind = "string"
	KindBool     ValueKind = "bool"
	KindCoord    ValueKind = "coord"
	KindInterval ValueKind = "interval"
	KindLine     ValueKind = "line"
	KindPath     ValueKind = "path"
	KindFrame    ValueKind = "frame"
	KindObserver ValueKind = "observer"
)

// ArgValue is a resolved argument payload; exactly the field matching Kind
// is set.
type ArgValue struct {
	Kind     ValueKind          `json:"kind"`
	Number   *float64           `json:"number,omitempty"`
	String   *string            `json:"string,omitempty"`
	Bool     *bool              `json:"bool,omitempty"`
	Coord    *relativity.Coord  `json:"coord,omitempty"`
	Interval *IntervalArg       `json:"interval,omitempty"`
	Line     *LineArg           `json:"line,omitempty"`
	Path     []relativity.Coord `json:"path,omitempty"`
	Frame    *FrameArg          `json:"frame,omitempty"`
	Observer *ObserverArg       `json:"observer,omitempty"`
}

// IntervalArg is a resolved numeric range.
type IntervalArg struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// LineArg is a resolved infinite line: angle in degrees plus a point.
type LineArg struct {
	Angle float64          `json:"angle"`
	Point relativity.Coord `json:"point"`
}

// FrameArg is a resolved inertial frame.
type FrameArg struct {
	Origin relativity.Coord `json:"origin"`
	V      float64          `json:"v"`
}

// SegmentArg is one resolved worldline segment. Renderers draw the uniform
// case as a straight run and the accelerated case as the hyperbola through
// Min and Max; infinite flags extend the first/last segment off-canvas.
type SegmentArg struct {
	A              float64           `json:"a"`
	Min            relativity.Moment `json:"min"`
	Max            relativity.Moment `json:"max"`
	InfinitePast   bool              `json:"infinitePast,omitempty"`
	InfiniteFuture bool              `json:"infiniteFuture,omitempty"`
}

// ObserverArg is a resolved worldline.
type ObserverArg struct {
	Segments []SegmentArg `json:"segments"`
}

// Control reports a declared user control, its metadata, and the value
// bound for this pass, so a host can build matching UI.
type Control struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Bool    bool     `json:"bool,omitempty"`
	Number  float64  `json:"number,omitempty"`
	Index   int      `json:"index,omitempty"`
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
	Step    float64  `json:"step,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// Constructors for ArgValue.

func NumberArg(f float64) ArgValue { return ArgValue{Kind: KindNumber, Number: &f} }
func StringArg(s string) ArgValue  { return ArgValue{Kind: KindString, String: &s} }
func BoolArg(b bool) ArgValue      { return ArgValue{Kind: KindBool, Bool: &b} }

func CoordArg(c relativity.Coord) ArgValue { return ArgValue{Kind: KindCoord, Coord: &c} }

func IntervalArgOf(min, max float64) ArgValue {
	return ArgValue{Kind: KindInterval, Interval: &IntervalArg{Min: min, Max: max}}
}

func LineArgOf(l relativity.Line) ArgValue {
	return ArgValue{Kind: KindLine, Line: &LineArg{Angle: l.Angle, Point: l.Point}}
}

func PathArg(p relativity.Path) ArgValue {
	return ArgValue{Kind: KindPath, Path: append([]relativity.Coord(nil), p...)}
}

func FrameArgOf(f relativity.Frame) ArgValue {
	return ArgValue{Kind: KindFrame, Frame: &FrameArg{Origin: f.Origin, V: f.V}}
}

func ObserverArgOf(o *relativity.Observer) ArgValue {
	segs := o.Segments()
	out := make([]SegmentArg, 0, len(segs))
	for _, s := range segs {
		out = append(out, SegmentArg{
			A:              s.A,
			Min:            s.Min,
			Max:            s.Max,
			InfinitePast:   s.InfinitePast,
			InfiniteFuture: s.InfiniteFuture,
		})
	}
	return ArgValue{Kind: KindObserver, Observer: &ObserverArg{Segments: out}}
}
