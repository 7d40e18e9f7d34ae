// Package value defines the closed set of dynamically-tagged runtime values
// the script engine operates on, with their coercion and equality rules.
package value

import (
	"fmt"
	"strconv"

	"github.com/freixas/gamma-sub005/internal/relativity"
)

// Tag enumerates all runtime kinds a Value may hold.
type Tag int

const (
	TagNull Tag = iota
	TagNumber
	TagBool
	TagString
	TagCoord
	TagInterval
	TagLine
	TagPath
	TagFrame
	TagObserver

	// TagAny is only used in function signatures, never on a live value.
	TagAny
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagNumber:
		return "number"
	case TagBool:
		return "boolean"
	case TagString:
		return "string"
	case TagCoord:
		return "coordinate"
	case TagInterval:
		return "interval"
	case TagLine:
		return "line"
	case TagPath:
		return "path"
	case TagFrame:
		return "frame"
	case TagObserver:
		return "observer"
	case TagAny:
		return "any"
	default:
		return "unknown"
	}
}

// Interval is a closed numeric range.
type Interval struct {
	Min float64
	Max float64
}

// Value is the tagged union. Data holds the payload appropriate for Tag:
// float64, bool, string, relativity.Coord, Interval, relativity.Line,
// relativity.Path, relativity.Frame, or *relativity.Observer. Null carries
// nil.
type Value struct {
	Tag  Tag
	Data any
}

// Null is the single null value.
var Null = Value{Tag: TagNull}

func Number(f float64) Value                    { return Value{Tag: TagNumber, Data: f} }
func Bool(b bool) Value                         { return Value{Tag: TagBool, Data: b} }
func String(s string) Value                     { return Value{Tag: TagString, Data: s} }
func CoordVal(c relativity.Coord) Value         { return Value{Tag: TagCoord, Data: c} }
func IntervalVal(iv Interval) Value             { return Value{Tag: TagInterval, Data: iv} }
func LineVal(l relativity.Line) Value           { return Value{Tag: TagLine, Data: l} }
func PathVal(p relativity.Path) Value           { return Value{Tag: TagPath, Data: p} }
func FrameVal(f relativity.Frame) Value         { return Value{Tag: TagFrame, Data: f} }
func ObserverVal(o *relativity.Observer) Value  { return Value{Tag: TagObserver, Data: o} }

// Typed accessors. The bool result is false when the value holds a
// different tag; callers that already validated the tag may ignore it.

func (v Value) AsNumber() (float64, bool) {
	f, ok := v.Data.(float64)
	return f, ok && v.Tag == TagNumber
}

func (v Value) AsBool() (bool, bool) {
	b, ok := v.Data.(bool)
	return b, ok && v.Tag == TagBool
}

func (v Value) AsString() (string, bool) {
	s, ok := v.Data.(string)
	return s, ok && v.Tag == TagString
}

func (v Value) AsCoord() (relativity.Coord, bool) {
	c, ok := v.Data.(relativity.Coord)
	return c, ok && v.Tag == TagCoord
}

func (v Value) AsInterval() (Interval, bool) {
	iv, ok := v.Data.(Interval)
	return iv, ok && v.Tag == TagInterval
}

func (v Value) AsLine() (relativity.Line, bool) {
	l, ok := v.Data.(relativity.Line)
	return l, ok && v.Tag == TagLine
}

func (v Value) AsPath() (relativity.Path, bool) {
	p, ok := v.Data.(relativity.Path)
	return p, ok && v.Tag == TagPath
}

func (v Value) AsFrame() (relativity.Frame, bool) {
	f, ok := v.Data.(relativity.Frame)
	return f, ok && v.Tag == TagFrame
}

func (v Value) AsObserver() (*relativity.Observer, bool) {
	o, ok := v.Data.(*relativity.Observer)
	return o, ok && v.Tag == TagObserver
}

// FrameOf coerces a value to a frame: frames pass through, observers yield
// their instantaneous moving frame at tau = 0.
func FrameOf(v Value) (relativity.Frame, error) {
	switch v.Tag {
	case TagFrame:
		f, _ := v.AsFrame()
		return f, nil
	case TagObserver:
		o, _ := v.AsObserver()
		return relativity.FrameOfObserver(o, relativity.AtTau, 0)
	default:
		return relativity.Frame{}, fmt.Errorf("expected frame or observer, got %s", v.Tag)
	}
}

// Truthy reports a boolean's truth; only booleans are usable as conditions.
func (v Value) Truthy() (bool, error) {
	if b, ok := v.AsBool(); ok {
		return b, nil
	}
	return false, fmt.Errorf("condition must be boolean, got %s", v.Tag)
}

// Equal applies the value equality rules: numeric for numbers, lexical for
// strings, structural for coordinates and frames. Null equals only null.
// All other cross-type comparisons are errors.
func Equal(a, b Value) (bool, error) {
	if a.Tag == TagNull || b.Tag == TagNull {
		return a.Tag == b.Tag, nil
	}
	if a.Tag != b.Tag {
		return false, fmt.Errorf("cannot compare %s with %s", a.Tag, b.Tag)
	}
	switch a.Tag {
	case TagNumber, TagBool, TagString:
		return a.Data == b.Data, nil
	case TagCoord:
		return a.Data == b.Data, nil
	case TagFrame:
		return a.Data == b.Data, nil
	default:
		return false, fmt.Errorf("values of type %s are not comparable", a.Tag)
	}
}

// Format renders a value for print and label text.
func (v Value) Format() string {
	switch v.Tag {
	case TagNull:
		return "null"
	case TagNumber:
		f, _ := v.AsNumber()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case TagBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case TagString:
		s, _ := v.AsString()
		return s
	case TagCoord:
		c, _ := v.AsCoord()
		return fmt.Sprintf("(%g, %g)", c.X, c.T)
	case TagInterval:
		iv, _ := v.AsInterval()
		return fmt.Sprintf("[interval %g, %g]", iv.Min, iv.Max)
	case TagLine:
		l, _ := v.AsLine()
		return fmt.Sprintf("[line angle %g through (%g, %g)]", l.Angle, l.Point.X, l.Point.T)
	case TagPath:
		p, _ := v.AsPath()
		return fmt.Sprintf("[path %d points]", len(p))
	case TagFrame:
		f, _ := v.AsFrame()
		return fmt.Sprintf("[frame origin (%g, %g), velocity %g]", f.Origin.X, f.Origin.T, f.V)
	case TagObserver:
		o, _ := v.AsObserver()
		return fmt.Sprintf("[observer origin (%g, %g), velocity %g]", o.Origin.X, o.Origin.T, o.V0)
	default:
		return "<invalid>"
	}
}
