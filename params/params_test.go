package params

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/extrude"
)

func full() map[string]any {
	return map[string]any{
		"angle":       90,
		"distance":    50,
		"invert":      false,
		"stroke":      true,
		"strokeColor": "#ff0000",
		"strokeAlpha": 0.5,
		"fill":        false,
		"fillColor":   "",
		"fillAlpha":   1,
		"group":       true,
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode(full())
	require.NoError(t, err)
	assert.Equal(t, Params{
		Angle:       90,
		Distance:    50,
		Stroke:      true,
		StrokeColor: "#ff0000",
		StrokeAlpha: 0.5,
		FillAlpha:   1,
		Group:       true,
	}, p)
}

func TestDecodeWeak(t *testing.T) {
	m := full()
	m["angle"] = "30"
	m["invert"] = "true"
	p, err := Decode(m)
	require.NoError(t, err)
	assert.Equal(t, 30.0, p.Angle)
	assert.True(t, p.Invert)
}

func TestDecodeDistAlias(t *testing.T) {
	m := full()
	delete(m, "distance")
	m["dist"] = 12
	p, err := Decode(m)
	require.NoError(t, err)
	assert.Equal(t, 12.0, p.Distance)
	assert.Contains(t, m, "dist", "Decode must not modify its argument")
	assert.NotContains(t, m, "distance")
}

func TestDecodeMissing(t *testing.T) {
	m := full()
	delete(m, "angle")
	delete(m, "group")
	_, err := Decode(m)
	require.ErrorIs(t, err, ErrMissing)
	assert.Contains(t, err.Error(), "angle, group")
}

func TestDecodeOptionalColors(t *testing.T) {
	m := full()
	delete(m, "strokeColor")
	delete(m, "fillColor")
	_, err := Decode(m)
	require.NoError(t, err)
}

func TestDecodeUnknown(t *testing.T) {
	m := full()
	m["bogus"] = 1
	_, err := Decode(m)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Params)
	}{
		{"stroke alpha high", func(p *Params) { p.StrokeAlpha = 1.5 }},
		{"fill alpha negative", func(p *Params) { p.FillAlpha = -0.1 }},
		{"NaN angle", func(p *Params) { p.Angle = math.NaN() }},
		{"infinite distance", func(p *Params) { p.Distance = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mod(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalid)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestMapRoundTrip(t *testing.T) {
	p := Default()
	p.FillColor = "#00ff00"
	m, err := p.Map()
	require.NoError(t, err)
	q, err := Decode(m)
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestRequest(t *testing.T) {
	p := Params{
		Angle:       180,
		Distance:    10,
		Invert:      true,
		Stroke:      true,
		StrokeColor: "#0000ff",
		StrokeAlpha: 0.25,
		Fill:        true,
		FillColor:   "nonsense",
		FillAlpha:   1,
	}
	req := p.Request()
	assert.InDelta(t, math.Pi, req.Angle, 1e-12)
	assert.Equal(t, 10.0, req.Distance)
	assert.True(t, req.Invert)

	require.NotNil(t, req.Strokes.Paint)
	assert.True(t, req.Strokes.Enabled)
	assert.Equal(t, extrude.RGB{B: 1}, req.Strokes.Paint.Color)
	assert.Equal(t, 0.25, req.Strokes.Paint.Opacity)

	require.NotNil(t, req.Fills.Paint)
	assert.Equal(t, extrude.Black, req.Fills.Paint.Color)

	p.StrokeColor = ""
	p.Stroke = false
	req = p.Request()
	assert.False(t, req.Strokes.Enabled)
	assert.Nil(t, req.Strokes.Paint)
}

func TestRequestColorNames(t *testing.T) {
	p := Default()
	p.StrokeColor = "red"
	p.FillColor = " #00ff00 "
	req := p.Request()
	require.NotNil(t, req.Strokes.Paint)
	assert.Equal(t, extrude.RGB{R: 1}, req.Strokes.Paint.Color)
	require.NotNil(t, req.Fills.Paint)
	assert.Equal(t, extrude.RGB{G: 1}, req.Fills.Paint.Color)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(`
angle: 45
dist: 20
invert: true
stroke: true
strokeColor: "#123456"
strokeAlpha: 1
fill: true
fillAlpha: 0.5
group: false
`), 0o644))
	p, err := Load(yml)
	require.NoError(t, err)
	assert.Equal(t, 45.0, p.Angle)
	assert.Equal(t, 20.0, p.Distance)
	assert.True(t, p.Invert)
	assert.Equal(t, "#123456", p.StrokeColor)
	assert.Equal(t, 0.5, p.FillAlpha)

	js := filepath.Join(dir, "params.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"angle": 0, "distance": 1, "invert": false,
"stroke": false, "strokeAlpha": 1, "fill": false, "fillAlpha": 1, "group": true}`), 0o644))
	p, err = Load(js)
	require.NoError(t, err)
	assert.True(t, p.Group)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("angle: 1\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrMissing)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
