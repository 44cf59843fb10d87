// Package scene is an in-memory document of paths and groups, and the
// interactive session that projects selected paths into it.
//
// The document models the small part of a design tool's node tree that
// projection needs: ordered children, relative transforms, cloning,
// flattening, grouping, removal and a live selection.
package scene

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"

	"honnef.co/go/extrude"
)

var (
	ErrRemoved   = errors.New("node has been removed")
	ErrNotInTree = errors.New("node is not part of the document")
	ErrCycle     = errors.New("node cannot be inserted into its own subtree")
	ErrNotGroup  = errors.New("node is not a group")
)

type Kind int

const (
	KindPath Kind = iota
	KindGroup
)

var kindNames = [...]string{"path", "group"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("invalid(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	i := slices.Index(kindNames[:], string(text))
	if i == -1 {
		return fmt.Errorf("unknown node type %q", text)
	}
	*k = Kind(i)
	return nil
}

// Node is a path or a group in a [Document].
type Node struct {
	ID        string
	Name      string
	Kind      Kind
	Network   extrude.VectorNetwork
	Style     extrude.Style
	Transform extrude.Affine

	doc      *Document
	parent   *Node
	children []*Node
	removed  bool
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children, bottom-most first.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Removed reports whether the node has been removed from its document.
func (n *Node) Removed() bool { return n.removed }

// Index returns the position of n among its siblings, or -1 if n has no
// parent.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

// WorldTransform returns the transform from n's local coordinates to document
// coordinates.
func (n *Node) WorldTransform() extrude.Affine {
	aff := n.Transform
	for p := n.parent; p != nil; p = p.parent {
		aff = p.Transform.Mul(aff)
	}
	return aff
}

// Descendants iterates over n's subtree in document order, n excluded.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	for _, c := range n.children {
		if !yield(c) || !c.walk(yield) {
			return false
		}
	}
	return true
}

func (n *Node) isAncestorOf(o *Node) bool {
	for p := o; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s (%s)", n.Kind, n.ID, n.Name)
}

// Document is a tree of nodes below a root group.
type Document struct {
	// Selection is the live selection.
	Selection []*Node

	root   *Node
	nodes  map[string]*Node
	nextID int
}

// New returns an empty document.
func New() *Document {
	d := &Document{nodes: map[string]*Node{}}
	d.root = d.newNode("", KindGroup)
	return d
}

func (d *Document) Root() *Node { return d.root }

func (d *Document) newNode(name string, kind Kind) *Node {
	d.nextID++
	n := &Node{
		ID:        fmt.Sprintf("0:%d", d.nextID),
		Name:      name,
		Kind:      kind,
		Transform: extrude.Identity,
		doc:       d,
	}
	d.nodes[n.ID] = n
	return n
}

// NewPath creates a detached path node. It becomes part of the document once
// inserted with [Document.InsertChild] or [Document.AppendChild].
func (d *Document) NewPath(name string, network extrude.VectorNetwork, style extrude.Style, transform extrude.Affine) *Node {
	n := d.newNode(name, KindPath)
	n.Network = network
	n.Style = style
	n.Transform = transform
	return n
}

// NewGroup creates a detached, empty group.
func (d *Document) NewGroup(name string) *Node {
	return d.newNode(name, KindGroup)
}

// NodeByID returns the node with the given ID, or nil if there is no such
// node or it has been removed.
func (d *Document) NodeByID(id string) *Node {
	n := d.nodes[id]
	if n == nil || n.removed {
		return nil
	}
	return n
}

// Nodes iterates over all nodes in document order.
func (d *Document) Nodes() iter.Seq[*Node] {
	return d.root.Descendants()
}

func (d *Document) check(n *Node) error {
	if n.doc != d {
		return ErrNotInTree
	}
	if n.removed {
		return fmt.Errorf("%s: %w", n, ErrRemoved)
	}
	return nil
}

// InsertChild inserts child into parent at index, moving it from its current
// parent if it has one. The index is clamped to the valid range.
func (d *Document) InsertChild(parent *Node, index int, child *Node) error {
	if err := d.check(parent); err != nil {
		return err
	}
	if err := d.check(child); err != nil {
		return err
	}
	if parent.Kind != KindGroup {
		return fmt.Errorf("%s: %w", parent, ErrNotGroup)
	}
	if child.isAncestorOf(parent) {
		return ErrCycle
	}
	if old := child.parent; old != nil {
		i := child.Index()
		if old == parent && i < index {
			index--
		}
		old.children = slices.Delete(old.children, i, i+1)
	}
	index = max(0, min(index, len(parent.children)))
	parent.children = slices.Insert(parent.children, index, child)
	child.parent = parent
	return nil
}

// AppendChild inserts child as the top-most child of parent.
func (d *Document) AppendChild(parent, child *Node) error {
	return d.InsertChild(parent, len(parent.children), child)
}

// Remove removes n and its subtree from the document. Groups left without
// children are removed as well. Removing an already removed node is a no-op.
func (d *Document) Remove(n *Node) {
	if n.removed || n == d.root {
		return
	}
	parent := n.parent
	if parent != nil {
		i := n.Index()
		parent.children = slices.Delete(parent.children, i, i+1)
		n.parent = nil
	}
	n.markRemoved()
	d.Selection = slices.DeleteFunc(d.Selection, (*Node).Removed)
	if parent != nil && parent != d.root && parent.Kind == KindGroup && len(parent.children) == 0 {
		d.Remove(parent)
	}
}

func (n *Node) markRemoved() {
	n.removed = true
	delete(n.doc.nodes, n.ID)
	for _, c := range n.children {
		c.markRemoved()
	}
}

// Clone returns a detached deep copy of n with fresh IDs.
func (d *Document) Clone(n *Node) *Node {
	c := d.newNode(n.Name, n.Kind)
	c.Network = n.Network.Clone()
	c.Style = n.Style.Clone()
	c.Transform = n.Transform
	for _, child := range n.children {
		cc := d.Clone(child)
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// Flatten replaces n with a single path node at the same position. A path
// keeps its network and transform. A group's descendants are merged into one
// network, with their transforms relative to the group baked into vertices and
// handles; the result takes the group's transform and the style of its first
// path.
func (d *Document) Flatten(n *Node) (*Node, error) {
	if err := d.check(n); err != nil {
		return nil, err
	}
	parent := n.parent
	if parent == nil {
		return nil, fmt.Errorf("%s: %w", n, ErrNotInTree)
	}

	var network extrude.VectorNetwork
	var style extrude.Style
	switch n.Kind {
	case KindPath:
		network = n.Network.Clone()
		style = n.Style.Clone()
	case KindGroup:
		first := true
		for c := range n.Descendants() {
			if c.Kind != KindPath {
				continue
			}
			aff := c.Transform
			for p := c.parent; p != n; p = p.parent {
				aff = p.Transform.Mul(aff)
			}
			sub := c.Network.Clone()
			sub.Transform(aff)
			network.Append(sub)
			if first {
				style = c.Style.Clone()
				first = false
			}
		}
	}
	if err := network.Validate(); err != nil {
		return nil, fmt.Errorf("flattening %s: %w", n, err)
	}

	out := d.NewPath(n.Name, network, style, n.Transform)
	if err := d.InsertChild(parent, n.Index(), out); err != nil {
		return nil, err
	}
	d.Remove(n)
	return out, nil
}

// Group moves nodes into a new group, which is inserted into parent at index.
// The nodes keep their stacking order.
func (d *Document) Group(nodes []*Node, parent *Node, index int) (*Node, error) {
	if len(nodes) == 0 {
		return nil, errors.New("cannot group zero nodes")
	}
	if err := d.check(parent); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := d.check(n); err != nil {
			return nil, err
		}
		if n.isAncestorOf(parent) {
			return nil, ErrCycle
		}
	}
	nodes = d.sorted(nodes)
	g := d.NewGroup("Group")
	if err := d.InsertChild(parent, index, g); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := d.AppendChild(g, n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// sorted returns nodes in document order. Detached nodes come last.
func (d *Document) sorted(nodes []*Node) []*Node {
	pos := map[*Node]int{}
	i := 0
	for n := range d.Nodes() {
		pos[n] = i
		i++
	}
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, func(a, b *Node) int {
		pa, oka := pos[a]
		pb, okb := pos[b]
		switch {
		case oka && okb:
			return cmp.Compare(pa, pb)
		case oka:
			return -1
		case okb:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Shapes returns every path of the document in document order, with
// transforms relative to the document.
func (d *Document) Shapes() []extrude.Shape {
	var out []extrude.Shape
	for n := range d.Nodes() {
		if n.Kind != KindPath {
			continue
		}
		out = append(out, extrude.Shape{
			Name:      n.Name,
			Network:   n.Network,
			Style:     n.Style,
			Transform: n.WorldTransform(),
		})
	}
	return out
}
