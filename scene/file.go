package scene

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"honnef.co/go/extrude"
)

// File is the YAML representation of a document.
type File struct {
	Nodes []FileNode `yaml:"nodes"`
}

// FileNode is the YAML representation of a node. Transforms are written as
// the six coefficients of an [extrude.Affine] and default to the identity.
type FileNode struct {
	Name      string                `yaml:"name"`
	Type      Kind                  `yaml:"type,omitempty"`
	Selected  bool                  `yaml:"selected,omitempty"`
	Transform []float64             `yaml:"transform,flow,omitempty"`
	Style     extrude.Style         `yaml:"style,omitempty"`
	Network   extrude.VectorNetwork `yaml:"network,omitempty"`
	Children  []FileNode            `yaml:"children,omitempty"`
}

// Load reads a document from YAML. Nodes marked as selected form the initial
// selection.
func Load(r io.Reader) (*Document, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	d := New()
	for i, fn := range f.Nodes {
		if err := d.load(d.root, fn, fmt.Sprintf("nodes[%d]", i)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// LoadFile reads a document from a YAML file.
func LoadFile(path string) (*Document, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	d, err := Load(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d *Document) load(parent *Node, fn FileNode, path string) error {
	aff := extrude.Identity
	switch len(fn.Transform) {
	case 0:
	case 6:
		aff = extrude.NewAffine([6]float64(fn.Transform))
	default:
		return fmt.Errorf("%s: transform needs 6 coefficients, got %d", path, len(fn.Transform))
	}

	var n *Node
	switch fn.Type {
	case KindPath:
		if len(fn.Children) > 0 {
			return fmt.Errorf("%s: path %q cannot have children", path, fn.Name)
		}
		if err := fn.Network.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		n = d.NewPath(fn.Name, fn.Network, fn.Style, aff)
	case KindGroup:
		n = d.NewGroup(fn.Name)
		n.Transform = aff
	}
	if err := d.AppendChild(parent, n); err != nil {
		return err
	}
	if fn.Selected {
		d.Selection = append(d.Selection, n)
	}
	for i, c := range fn.Children {
		if err := d.load(n, c, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the document as YAML. The current selection is recorded.
func (d *Document) Encode(w io.Writer) error {
	f := File{Nodes: d.fileNodes(d.root)}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return err
	}
	return enc.Close()
}

func (d *Document) fileNodes(parent *Node) []FileNode {
	var out []FileNode
	for _, n := range parent.children {
		fn := FileNode{
			Name:     n.Name,
			Type:     n.Kind,
			Selected: d.selected(n),
			Style:    n.Style,
			Network:  n.Network,
			Children: d.fileNodes(n),
		}
		if n.Transform != extrude.Identity {
			c := n.Transform.Coefficients()
			fn.Transform = c[:]
		}
		out = append(out, fn)
	}
	return out
}

func (d *Document) selected(n *Node) bool {
	for _, s := range d.Selection {
		if s == n {
			return true
		}
	}
	return false
}

// WriteSVG renders every path of the document.
func (d *Document) WriteSVG(w io.Writer, opts extrude.SVGOptions) error {
	return extrude.WriteShapesSVG(w, d.Shapes(), opts)
}
