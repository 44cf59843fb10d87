// Package params decodes the named parameters of a projection.
//
// Parameters arrive as plain configuration values, either as a map (for
// example from a UI message) or from a YAML or JSON file. Angles are given in
// degrees. Colours are hexadecimal strings (#rgb or #rrggbb) or CSS colour
// names such as "red"; anything else resolves to black.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"honnef.co/go/extrude"
)

var (
	ErrMissing = errors.New("missing parameter")
	ErrInvalid = errors.New("invalid parameter")
)

// Params are the parameters of a projection.
type Params struct {
	// Angle is the projection direction in degrees.
	Angle    float64 `mapstructure:"angle" yaml:"angle" json:"angle"`
	Distance float64 `mapstructure:"distance" yaml:"distance" json:"distance"`
	Invert   bool    `mapstructure:"invert" yaml:"invert" json:"invert"`

	Stroke      bool    `mapstructure:"stroke" yaml:"stroke" json:"stroke"`
	StrokeColor string  `mapstructure:"strokeColor" yaml:"strokeColor,omitempty" json:"strokeColor,omitempty"`
	StrokeAlpha float64 `mapstructure:"strokeAlpha" yaml:"strokeAlpha" json:"strokeAlpha"`

	Fill      bool    `mapstructure:"fill" yaml:"fill" json:"fill"`
	FillColor string  `mapstructure:"fillColor" yaml:"fillColor,omitempty" json:"fillColor,omitempty"`
	FillAlpha float64 `mapstructure:"fillAlpha" yaml:"fillAlpha" json:"fillAlpha"`

	// Group puts all generated shapes into a single group.
	Group bool `mapstructure:"group" yaml:"group" json:"group"`
}

// optional lists the keys that may be absent.
var optional = []string{"strokeColor", "fillColor"}

// Default returns the parameters used when nothing else is specified.
func Default() Params {
	return Params{
		Angle:       45,
		Distance:    100,
		Stroke:      true,
		StrokeAlpha: 1,
		Fill:        true,
		FillAlpha:   1,
	}
}

// Decode decodes parameters from a map. All keys except the colours are
// required. "dist" is accepted as an alias of "distance".
func Decode(m map[string]any) (Params, error) {
	if v, ok := m["dist"]; ok {
		m = maps.Clone(m)
		if _, ok := m["distance"]; !ok {
			m["distance"] = v
		}
		delete(m, "dist")
	}

	var p Params
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		Metadata:         &md,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Params{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Params{}, fmt.Errorf("decoding parameters: %w", err)
	}
	var missing []string
	for _, key := range md.Unset {
		if !slices.Contains(optional, key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return Params{}, fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrMissing)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Map returns the parameters as a map suitable for [Decode].
func (p Params) Map() (map[string]any, error) {
	var m map[string]any
	if err := mapstructure.Decode(p, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads parameters from a YAML or JSON file. The format is chosen by the
// file extension, defaulting to YAML.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read parameters: %w", err)
	}
	var m map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &m); err != nil {
			return Params{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Params{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	p, err := Decode(m)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks that all numbers are finite and the opacities lie in
// [0, 1]. Malformed colours are not an error; they fall back to black.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"angle", p.Angle},
		{"distance", p.Distance},
		{"strokeAlpha", p.StrokeAlpha},
		{"fillAlpha", p.FillAlpha},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s = %g: %w", f.name, f.v, ErrInvalid)
		}
	}
	if p.StrokeAlpha < 0 || p.StrokeAlpha > 1 {
		return fmt.Errorf("strokeAlpha = %g outside [0, 1]: %w", p.StrokeAlpha, ErrInvalid)
	}
	if p.FillAlpha < 0 || p.FillAlpha > 1 {
		return fmt.Errorf("fillAlpha = %g outside [0, 1]: %w", p.FillAlpha, ErrInvalid)
	}
	return nil
}

// Request converts the parameters into a projection request.
func (p Params) Request() extrude.Request {
	return extrude.Request{
		Angle:    p.Angle / 180 * math.Pi,
		Distance: p.Distance,
		Invert:   p.Invert,
		Strokes:  override(p.Stroke, p.StrokeColor, p.StrokeAlpha),
		Fills:    override(p.Fill, p.FillColor, p.FillAlpha),
	}
}

func override(enabled bool, color string, alpha float64) extrude.PaintOverride {
	o := extrude.PaintOverride{Enabled: enabled}
	if color != "" {
		paint := extrude.SolidPaint(extrude.ParseColorOrBlack(color), alpha)
		o.Paint = &paint
	}
	return o
}
