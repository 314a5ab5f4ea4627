package graph

import (
	"fmt"
	"strings"

	"github.com/samdwyer/tickfsm/fsm"
)

// Mermaid renders info as a Mermaid stateDiagram-v2.
func Mermaid(info fsm.Info, opts ...Option) string {
	o := apply(opts)

	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	fmt.Fprintf(&sb, "\tdirection %s\n", o.direction.code())

	for _, s := range info.States {
		if id := sanitize(s.Label); id != s.Label {
			fmt.Fprintf(&sb, "\t%s : %s\n", id, s.Label)
		}
	}

	if info.Current != "" {
		fmt.Fprintf(&sb, "\t[*] --> %s\n", sanitize(info.Current))
	}

	for _, e := range edges(info, o) {
		fmt.Fprintf(&sb, "\t%s --> %s\n", sanitize(e.from), sanitize(e.to))
	}

	return strings.TrimRight(sb.String(), "\n")
}
