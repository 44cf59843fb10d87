package extrude

import (
	"fmt"
	"slices"
	"strings"
)

type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
)

// RGB is a colour with channels in [0, 1].
type RGB struct {
	R float64 `yaml:"r" json:"r"`
	G float64 `yaml:"g" json:"g"`
	B float64 `yaml:"b" json:"b"`
}

var Black = RGB{}

// Paint is a solid fill or stroke paint.
type Paint struct {
	Color     RGB       `yaml:"color" json:"color"`
	Opacity   float64   `yaml:"opacity" json:"opacity"`
	BlendMode BlendMode `yaml:"blendMode,omitempty" json:"blendMode,omitempty"`
	Visible   bool      `yaml:"visible" json:"visible"`
}

// SolidPaint returns a visible paint with normal blending.
func SolidPaint(c RGB, opacity float64) Paint {
	return Paint{
		Color:     c,
		Opacity:   opacity,
		BlendMode: BlendNormal,
		Visible:   true,
	}
}

type Cap int

const (
	CapNone Cap = iota
	CapRound
	CapSquare
)

type Join int

const (
	JoinMiter Join = iota
	JoinBevel
	JoinRound
)

type StrokeAlign int

const (
	StrokeCenter StrokeAlign = iota
	StrokeInside
	StrokeOutside
)

// Style describes how a path is painted.
type Style struct {
	Fills        []Paint     `yaml:"fills,omitempty" json:"fills,omitempty"`
	Strokes      []Paint     `yaml:"strokes,omitempty" json:"strokes,omitempty"`
	StrokeWeight float64     `yaml:"strokeWeight,omitempty" json:"strokeWeight,omitempty"`
	StrokeAlign  StrokeAlign `yaml:"strokeAlign,omitempty" json:"strokeAlign,omitempty"`
	StrokeCap    Cap         `yaml:"strokeCap,omitempty" json:"strokeCap,omitempty"`
	StrokeJoin   Join        `yaml:"strokeJoin,omitempty" json:"strokeJoin,omitempty"`
	DashPattern  []float64   `yaml:"dashPattern,omitempty" json:"dashPattern,omitempty"`
}

// Clone returns a copy of s that shares no slices with it.
func (s Style) Clone() Style {
	s.Fills = slices.Clone(s.Fills)
	s.Strokes = slices.Clone(s.Strokes)
	s.DashPattern = slices.Clone(s.DashPattern)
	return s
}

// PaintOverride selects the paints of generated shapes. A disabled override
// produces no paints. An enabled override without a paint keeps the source's
// own paints.
type PaintOverride struct {
	Enabled bool
	Paint   *Paint
}

// Resolve returns the paints to use given the source's own paints.
func (o PaintOverride) Resolve(own []Paint) []Paint {
	if !o.Enabled {
		return []Paint{}
	}
	if o.Paint != nil {
		return []Paint{*o.Paint}
	}
	return slices.Clone(own)
}

var (
	blendModeNames   = [...]string{"normal", "multiply", "screen", "overlay"}
	capNames         = [...]string{"none", "round", "square"}
	joinNames        = [...]string{"miter", "bevel", "round"}
	strokeAlignNames = [...]string{"center", "inside", "outside"}
)

func enumString(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("invalid(%d)", v)
	}
	return names[v]
}

func parseEnum(names []string, kind string, text []byte) (int, error) {
	s := strings.ToLower(string(text))
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, text)
}

func (m BlendMode) String() string { return enumString(blendModeNames[:], int(m)) }
func (c Cap) String() string       { return enumString(capNames[:], int(c)) }
func (j Join) String() string      { return enumString(joinNames[:], int(j)) }
func (a StrokeAlign) String() string {
	return enumString(strokeAlignNames[:], int(a))
}

func (m BlendMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (c Cap) MarshalText() ([]byte, error)       { return []byte(c.String()), nil }
func (j Join) MarshalText() ([]byte, error)      { return []byte(j.String()), nil }
func (a StrokeAlign) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (m *BlendMode) UnmarshalText(text []byte) error {
	v, err := parseEnum(blendModeNames[:], "blend mode", text)
	*m = BlendMode(v)
	return err
}

func (c *Cap) UnmarshalText(text []byte) error {
	v, err := parseEnum(capNames[:], "stroke cap", text)
	*c = Cap(v)
	return err
}

func (j *Join) UnmarshalText(text []byte) error {
	v, err := parseEnum(joinNames[:], "stroke join", text)
	*j = Join(v)
	return err
}

func (a *StrokeAlign) UnmarshalText(text []byte) error {
	v, err := parseEnum(strokeAlignNames[:], "stroke alignment", text)
	*a = StrokeAlign(v)
	return err
}
