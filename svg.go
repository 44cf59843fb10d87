package extrude

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
	// Margin is added around the bounding box when writing whole documents.
	Margin float64
}

func (opts SVGOptions) format(n float64) string {
	if opts.MaxPrecision <= 0 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	s := strconv.FormatFloat(n, 'f', opts.MaxPrecision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// SVG converts a sequence of path elements to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(seq iter.Seq[PathElement], opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, seq, opts)
	return sb.String()
}

// WriteSVG converts a sequence of path elements to a string of SVG path
// commands and writes it to w.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func WriteSVG(w io.Writer, seq iter.Seq[PathElement], opts SVGOptions) error {
	space := []byte(" ")
	z := []byte("Z")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := opts.format
	first := true
	for el := range seq {
		if err != nil {
			return err
		}
		if !first {
			write(space)
		}
		first = false
		switch el.Kind {
		case MoveToKind:
			writef("M%s,%s", format(el.P0.X), format(el.P0.Y))
		case LineToKind:
			writef("L%s,%s", format(el.P0.X), format(el.P0.Y))
		case CubicToKind:
			writef("C%s,%s %s,%s %s,%s",
				format(el.P0.X), format(el.P0.Y),
				format(el.P1.X), format(el.P1.Y),
				format(el.P2.X), format(el.P2.Y))
		case ClosePathKind:
			write(z)
		default:
			panic("unreachable")
		}
	}
	return err
}

// WriteShapesSVG writes a standalone SVG document containing one path element
// per shape, in order. Later shapes are drawn on top of earlier ones.
func WriteShapesSVG(w io.Writer, shapes []Shape, opts SVGOptions) error {
	var bounds Rect
	haveBounds := false
	for _, s := range shapes {
		r, ok := s.Network.ControlBox()
		if !ok {
			continue
		}
		r = s.Transform.TransformRectBoundingBox(r)
		if haveBounds {
			bounds = bounds.Union(r)
		} else {
			bounds = r
			haveBounds = true
		}
	}
	bounds = bounds.Inflate(opts.Margin, opts.Margin)
	format := opts.format

	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	writef(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		format(bounds.X0), format(bounds.Y0), format(bounds.Width()), format(bounds.Height()))
	for _, s := range shapes {
		if err != nil {
			return err
		}
		writef(`  <path data-name="%s" d="`, escapeAttr(s.Name))
		if err == nil {
			err = WriteSVG(w, s.Network.PathElements(), opts)
		}
		writef(`"`)
		if s.Transform != Identity {
			c := s.Transform.Coefficients()
			writef(` transform="matrix(%s %s %s %s %s %s)"`,
				format(c[0]), format(c[1]), format(c[2]), format(c[3]), format(c[4]), format(c[5]))
		}
		writef("%s/>\n", styleAttrs(s.Style, format))
	}
	writef("</svg>\n")
	return err
}

func styleAttrs(style Style, format func(float64) string) string {
	var sb strings.Builder
	paint := func(name string, paints []Paint) bool {
		for _, p := range paints {
			if !p.Visible {
				continue
			}
			fmt.Fprintf(&sb, ` %s="%s"`, name, p.Color.Hex())
			if p.Opacity != 1 {
				fmt.Fprintf(&sb, ` %s-opacity="%s"`, name, format(p.Opacity))
			}
			return true
		}
		fmt.Fprintf(&sb, ` %s="none"`, name)
		return false
	}
	paint("fill", style.Fills)
	if !paint("stroke", style.Strokes) {
		return sb.String()
	}
	if style.StrokeWeight != 0 {
		fmt.Fprintf(&sb, ` stroke-width="%s"`, format(style.StrokeWeight))
	}
	switch style.StrokeCap {
	case CapRound:
		sb.WriteString(` stroke-linecap="round"`)
	case CapSquare:
		sb.WriteString(` stroke-linecap="square"`)
	}
	switch style.StrokeJoin {
	case JoinBevel:
		sb.WriteString(` stroke-linejoin="bevel"`)
	case JoinRound:
		sb.WriteString(` stroke-linejoin="round"`)
	}
	if len(style.DashPattern) > 0 {
		dashes := make([]string, len(style.DashPattern))
		for i, d := range style.DashPattern {
			dashes[i] = format(d)
		}
		fmt.Fprintf(&sb, ` stroke-dasharray="%s"`, strings.Join(dashes, " "))
	}
	return sb.String()
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
