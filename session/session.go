package session

import (
	"log/slog"

	"github.com/signadot/treedit/edit"
	"github.com/signadot/treedit/ir"
)

// Snapshot is a published tree.  Op is the edit which produced it, and is
// nil for the initial tree and for resets.
type Snapshot struct {
	Version int
	Node    *ir.Node
	Op      edit.Op
}

type Session struct {
	cur     Snapshot
	prev    *ir.Node
	log     *slog.Logger
	subs    []*subscriber
	nextSub int
}

type subscriber struct {
	id int
	f  func(Snapshot)
}

type Option func(*Session)

// WithLogger sets the logger receiving accepted and rejected edits.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New creates a session whose first snapshot is initial, or an empty
// object if initial is nil.
func New(initial *ir.Node, opts ...Option) *Session {
	if initial == nil {
		initial = ir.NewObject()
	}
	s := &Session{
		cur: Snapshot{Node: initial},
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Current() *ir.Node {
	return s.cur.Node
}

// Previous returns the tree replaced by the last published snapshot, or nil
// if nothing has been published since New.
func (s *Session) Previous() *ir.Node {
	return s.prev
}

// Version counts the snapshots published since New.
func (s *Session) Version() int {
	return s.cur.Version
}

func (s *Session) Snapshot() Snapshot {
	return s.cur
}

// Apply applies o to the current tree.  On success the result is published
// and returned.  On failure nothing is published and the current tree is
// unchanged.
func (s *Session) Apply(o edit.Op) (*ir.Node, error) {
	res, err := edit.Apply(s.cur.Node, o)
	if err != nil {
		s.log.Warn("rejected edit", "op", o.String(), "version", s.cur.Version, "error", err)
		return nil, err
	}
	s.publish(res, o)
	s.log.Debug("applied edit", "op", o.String(), "version", s.cur.Version)
	return res, nil
}

// ApplyAll applies ops in order, stopping at the first failure.  Edits
// applied before the failure remain published.
func (s *Session) ApplyAll(ops []edit.Op) (*ir.Node, error) {
	for _, o := range ops {
		if _, err := s.Apply(o); err != nil {
			return nil, err
		}
	}
	return s.cur.Node, nil
}

// Reset publishes an empty object.
func (s *Session) Reset() {
	s.publish(ir.NewObject(), nil)
	s.log.Info("reset", "version", s.cur.Version)
}

// Load publishes node as the current tree.
func (s *Session) Load(node *ir.Node) {
	if node == nil {
		node = ir.NewObject()
	}
	s.publish(node, nil)
}

// Subscribe registers f to be called with every snapshot published after
// this call, in registration order.  The returned function unregisters f.
func (s *Session) Subscribe(f func(Snapshot)) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, &subscriber{id: id, f: f})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) publish(node *ir.Node, o edit.Op) {
	s.prev = s.cur.Node
	s.cur = Snapshot{
		Version: s.cur.Version + 1,
		Node:    node,
		Op:      o,
	}
	for _, sub := range s.subs {
		sub.f(s.cur)
	}
}
