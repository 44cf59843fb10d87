package scene

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"honnef.co/go/extrude"
	"honnef.co/go/extrude/params"
)

var (
	// ErrStale is returned when shapes generated by the previous projection
	// have been removed by someone else.
	ErrStale       = errors.New("projected shapes were modified")
	ErrNoSelection = errors.New("nothing has been projected")
)

// Status is a notification sent by a [Session] to its user interface.
type Status int

const (
	StatusUpdateEnabled Status = iota + 1
	StatusUpdateDisabled
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusUpdateEnabled:
		return "enableUpdate"
	case StatusUpdateDisabled:
		return "disableUpdate"
	case StatusClosed:
		return "closed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Session runs projections on a document. It remembers the sources and the
// output of the last projection so that the output can be regenerated with
// different parameters, or discarded.
type Session struct {
	doc    *Document
	logger *slog.Logger
	notify func(Status)
	group  func(nodes []*Node, parent *Node, index int) (*Node, error)

	sources   []string
	projected []*Node
}

// Option configures a [Session].
type Option func(*Session)

// WithLogger sets the logger. Sessions don't log by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithNotify sets the function that receives status notifications.
func WithNotify(fn func(Status)) Option {
	return func(s *Session) {
		s.notify = fn
	}
}

func NewSession(doc *Document, opts ...Option) *Session {
	s := &Session{doc: doc}
	s.group = doc.Group
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.notify == nil {
		s.notify = func(Status) {}
	}
	return s
}

// Projected returns the nodes generated by the last projection.
func (s *Session) Projected() []*Node {
	return append([]*Node(nil), s.projected...)
}

// Project projects the document's current selection and remembers it as the
// source of later updates. The generated shapes become the new selection.
func (s *Session) Project(p params.Params) ([]*Node, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	nodes := append([]*Node(nil), s.doc.Selection...)
	s.sources = s.sources[:0]
	for _, n := range nodes {
		s.sources = append(s.sources, n.ID)
	}
	out, err := s.run(nodes, p)
	if len(nodes) > 0 {
		s.notify(StatusUpdateEnabled)
	}
	return out, err
}

// Update replaces the output of the last projection with a projection of the
// same sources using new parameters.
func (s *Session) Update(p params.Params) ([]*Node, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s.sources == nil {
		return nil, ErrNoSelection
	}
	if err := s.discard(); err != nil {
		return nil, err
	}
	var nodes []*Node
	for _, id := range s.sources {
		n := s.doc.NodeByID(id)
		if n == nil {
			s.logger.Warn("source node no longer exists", "node", id)
			continue
		}
		nodes = append(nodes, n)
	}
	return s.run(nodes, p)
}

// Cancel removes the output of the last projection and ends the session.
func (s *Session) Cancel() error {
	if err := s.discard(); err != nil {
		return err
	}
	s.sources = nil
	s.notify(StatusClosed)
	return nil
}

func (s *Session) discard() error {
	for _, n := range s.projected {
		if n.Removed() {
			s.logger.Info("projection was modified externally", "node", n.ID)
			s.notify(StatusUpdateDisabled)
			return ErrStale
		}
	}
	for _, n := range s.projected {
		s.doc.Remove(n)
	}
	s.projected = nil
	return nil
}

func (s *Session) run(nodes []*Node, p params.Params) ([]*Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	req := p.Request()
	var selection []*Node
	for _, n := range nodes {
		shapes, err := s.projectNode(n, req)
		if err != nil {
			s.logger.Warn("skipping node", "node", n.ID, "name", n.Name, "err", err)
			continue
		}
		selection = append(selection, shapes...)
	}
	// Update and Cancel discard the output even if grouping fails.
	s.projected = selection
	s.doc.Selection = append([]*Node(nil), selection...)
	if p.Group && len(selection) > 0 {
		first := selection[0]
		if _, err := s.group(selection, first.Parent(), first.Index()+1); err != nil {
			return selection, fmt.Errorf("grouping projection: %w", err)
		}
	}
	s.logger.Debug("projected", "sources", len(nodes), "shapes", len(selection))
	return selection, nil
}

// projectNode flattens a copy of n directly below it, surrounds the copy with
// one wall per segment and moves it to the far end of the extrusion. Inverted
// projections discard the copy instead.
func (s *Session) projectNode(n *Node, req extrude.Request) ([]*Node, error) {
	if n.Removed() {
		return nil, ErrRemoved
	}
	parent := n.Parent()
	if parent == nil {
		return nil, ErrNotInTree
	}
	c := s.doc.Clone(n)
	if err := s.doc.InsertChild(parent, n.Index(), c); err != nil {
		return nil, err
	}
	vector, err := s.doc.Flatten(c)
	if err != nil {
		s.doc.Remove(c)
		return nil, err
	}
	if vector.Network.IsEmpty() {
		s.logger.Debug("nothing to project", "node", n.ID)
		s.doc.Remove(vector)
		return nil, nil
	}
	nodeIndex := vector.Index() + 1
	s.logger.Debug("projecting node", "node", n.ID, "center", vector.Network.Center())

	proj := extrude.Project(extrude.Source{
		Name:      vector.Name,
		Network:   vector.Network,
		Style:     vector.Style,
		Transform: vector.Transform,
	}, req)

	shapes := make([]*Node, 0, len(proj.Walls)+1)
	for _, wall := range proj.Walls {
		w := s.doc.NewPath(wall.Name, wall.Network, wall.Style, wall.Transform)
		if err := s.doc.InsertChild(parent, nodeIndex+proj.InsertOffset, w); err != nil {
			return nil, err
		}
		shapes = append(shapes, w)
	}
	if proj.Cap == nil {
		s.doc.Remove(vector)
	} else {
		vector.Network = proj.Cap.Network
		vector.Style = proj.Cap.Style
		vector.Transform = proj.Cap.Transform
		shapes = append(shapes, vector)
	}
	s.logger.Debug("projected node", "node", n.ID, "segments", len(proj.Walls), "cap", proj.Cap != nil)
	return shapes, nil
}
