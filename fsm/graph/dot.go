package graph

import (
	"fmt"
	"strings"

	"github.com/samdwyer/tickfsm/fsm"
)

// Dot renders info as a Graphviz digraph. The current state is drawn bold
// and an initial marker points at it.
func Dot(info fsm.Info, opts ...Option) string {
	o := apply(opts)

	var sb strings.Builder
	sb.WriteString("digraph {\n")
	fmt.Fprintf(&sb, "rankdir=\"%s\"\n", o.direction.code())
	sb.WriteString("node [shape=Mrecord]\n")
	if info.Name != "" {
		fmt.Fprintf(&sb, "label=\"%s\"\n", escape(info.Name))
	}

	for _, s := range info.States {
		label := fmt.Sprintf("%s|slot %d", escape(s.Label), s.Slot)
		if s.Mask == fsm.NoTransitions {
			label += "|terminal"
		}
		if s.Current {
			fmt.Fprintf(&sb, "\"%s\" [label=\"{%s}\", style=bold];\n", escape(s.Label), label)
		} else {
			fmt.Fprintf(&sb, "\"%s\" [label=\"{%s}\"];\n", escape(s.Label), label)
		}
	}

	for _, e := range edges(info, o) {
		fmt.Fprintf(&sb, "\"%s\" -> \"%s\";\n", escape(e.from), escape(e.to))
	}

	if info.Current != "" {
		sb.WriteString(" init [label=\"\", shape=point];\n")
		fmt.Fprintf(&sb, " init -> \"%s\"[style = \"solid\"]\n", escape(info.Current))
	}

	sb.WriteString("}")
	return sb.String()
}
