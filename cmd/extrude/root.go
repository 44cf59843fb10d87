package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"honnef.co/go/extrude"
	"honnef.co/go/extrude/params"
	"honnef.co/go/extrude/scene"
)

type options struct {
	output    string
	format    string
	selection []string
	params    string
	precision int
	margin    float64
	verbose   bool

	p params.Params
}

func newRootCmd() *cobra.Command {
	opts := &options{p: params.Default()}
	cmd := &cobra.Command{
		Use:   "extrude [flags] <scene.yaml>",
		Short: "Fake depth by extruding vector paths",
		Long: `Extrude loads a scene, projects the selected paths along an angle and
writes the scene with the generated walls and caps.

Paths are selected by name with --select, or by marking them as selected in
the scene file. Parameters come from --params and can be overridden by flags.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, opts, args[0])
		},
	}
	cmd.AddCommand(newValidateCmd())

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "write to `file` instead of stdout")
	f.StringVar(&opts.format, "format", "svg", "output format (svg, yaml)")
	f.StringSliceVar(&opts.selection, "select", nil, "`names` of the paths to project")
	f.StringVar(&opts.params, "params", "", "load parameters from a YAML or JSON `file`")
	f.IntVar(&opts.precision, "precision", 3, "maximum number of decimals in SVG output")
	f.Float64Var(&opts.margin, "margin", 10, "margin around the SVG view box")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	f.Float64Var(&opts.p.Angle, "angle", opts.p.Angle, "projection angle in degrees")
	f.Float64Var(&opts.p.Distance, "distance", opts.p.Distance, "extrusion distance")
	f.BoolVar(&opts.p.Invert, "invert", opts.p.Invert, "draw walls in front of the source and drop the cap")
	f.BoolVar(&opts.p.Stroke, "stroke", opts.p.Stroke, "stroke generated shapes")
	f.StringVar(&opts.p.StrokeColor, "stroke-color", "", "stroke `color` (hex or CSS name); defaults to the source's strokes")
	f.Float64Var(&opts.p.StrokeAlpha, "stroke-alpha", opts.p.StrokeAlpha, "stroke opacity")
	f.BoolVar(&opts.p.Fill, "fill", opts.p.Fill, "fill generated shapes")
	f.StringVar(&opts.p.FillColor, "fill-color", "", "fill `color` (hex or CSS name); defaults to the source's fills")
	f.Float64Var(&opts.p.FillAlpha, "fill-alpha", opts.p.FillAlpha, "fill opacity")
	f.BoolVar(&opts.p.Group, "group", opts.p.Group, "group all generated shapes")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// flagParams maps projection flags to parameter keys.
var flagParams = map[string]string{
	"angle":        "angle",
	"distance":     "distance",
	"invert":       "invert",
	"stroke":       "stroke",
	"stroke-color": "strokeColor",
	"stroke-alpha": "strokeAlpha",
	"fill":         "fill",
	"fill-color":   "fillColor",
	"fill-alpha":   "fillAlpha",
	"group":        "group",
}

// resolveParams loads the parameter file, if any, and applies flags that were
// set explicitly on top of it.
func resolveParams(cmd *cobra.Command, opts *options) (params.Params, error) {
	if opts.params == "" {
		return opts.p, opts.p.Validate()
	}
	p, err := params.Load(opts.params)
	if err != nil {
		return params.Params{}, err
	}
	fromFile, err := p.Map()
	if err != nil {
		return params.Params{}, err
	}
	fromFlags, err := opts.p.Map()
	if err != nil {
		return params.Params{}, err
	}
	for flag, key := range flagParams {
		if cmd.Flags().Changed(flag) {
			fromFile[key] = fromFlags[key]
		}
	}
	return params.Decode(fromFile)
}

func selectNodes(doc *scene.Document, names []string) error {
	if len(names) == 0 {
		if len(doc.Selection) == 0 {
			return errors.New("no paths selected; use --select or mark paths as selected")
		}
		return nil
	}
	doc.Selection = nil
	found := map[string]bool{}
	for n := range doc.Nodes() {
		if slices.Contains(names, n.Name) {
			doc.Selection = append(doc.Selection, n)
			found[n.Name] = true
		}
	}
	for _, name := range names {
		if !found[name] {
			return fmt.Errorf("no node named %q", name)
		}
	}
	return nil
}

func runProject(cmd *cobra.Command, opts *options, path string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	if opts.format != "svg" && opts.format != "yaml" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	p, err := resolveParams(cmd, opts)
	if err != nil {
		return err
	}
	doc, err := scene.LoadFile(path)
	if err != nil {
		return err
	}
	if err := selectNodes(doc, opts.selection); err != nil {
		return err
	}

	sources := len(doc.Selection)
	session := scene.NewSession(doc, scene.WithLogger(logger))
	shapes, err := session.Project(p)
	if err != nil {
		return err
	}
	logger.Info("projection done", "sources", sources, "shapes", len(shapes))

	if opts.output == "" {
		return writeScene(cmd.OutOrStdout(), doc, opts)
	}
	fd, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := writeScene(fd, doc, opts); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func writeScene(w io.Writer, doc *scene.Document, opts *options) error {
	var err error
	switch opts.format {
	case "yaml":
		err = doc.Encode(w)
	default:
		err = doc.WriteSVG(w, extrude.SVGOptions{MaxPrecision: opts.precision, Margin: opts.margin})
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
