// Package graph renders a machine's permission table as a diagram.
//
//	dot := graph.Dot(m.Info())
//	mmd := graph.Mermaid(m.Info(), graph.WithDirection(graph.LeftToRight))
//
// Each registered state is a node and each permitted registered target is
// an edge. Mask bits for unregistered slots are not drawn. Self-transitions
// are omitted unless WithSelfLoops is given, since the default mask permits
// them everywhere.
package graph

import (
	"strings"
	"unicode"

	"github.com/samdwyer/tickfsm/fsm"
)

// Direction is the layout direction of a rendered graph.
type Direction int

const (
	TopToBottom Direction = iota
	BottomToTop
	LeftToRight
	RightToLeft
)

func (d Direction) code() string {
	switch d {
	case BottomToTop:
		return "BT"
	case LeftToRight:
		return "LR"
	case RightToLeft:
		return "RL"
	default:
		return "TB"
	}
}

// Option configures rendering.
type Option func(*options)

type options struct {
	selfLoops bool
	direction Direction
}

// WithSelfLoops draws an edge for states allowed to re-enter themselves.
func WithSelfLoops() Option {
	return func(o *options) { o.selfLoops = true }
}

// WithDirection sets the layout direction.
func WithDirection(d Direction) Option {
	return func(o *options) { o.direction = d }
}

func apply(opts []Option) options {
	o := options{direction: LeftToRight}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type edge struct {
	from, to string
}

// edges lists permitted transitions in slot order.
func edges(info fsm.Info, o options) []edge {
	var out []edge
	for _, s := range info.States {
		for _, slot := range s.Targets {
			if slot == s.Slot && !o.selfLoops {
				continue
			}
			target, ok := info.Lookup(slot)
			if !ok {
				continue
			}
			out = append(out, edge{from: s.Label, to: target.Label})
		}
	}
	return out
}

// sanitize turns a label into an identifier Mermaid accepts.
func sanitize(label string) string {
	var sb strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}

// escape prepares a label for a quoted DOT string.
func escape(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	return strings.ReplaceAll(label, `"`, `\"`)
}
