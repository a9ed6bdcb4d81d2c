package present

import (
	"fmt"
	"strings"
)

type node struct {
	id, label, fill string
}

var diagramNodes = []node{
	{"basic", `Basic Dimensions\np, D, Do, d, dh\n(t = (Do - D)/2)`, ""},
	{"mat", `Material\nSut, Syt`, ""},
	{"kfac", `K-factors\nka, kb, kc, kd, ke, kh, kl, km`, ""},
	{"out", `Outputs →\nSe, Static FOS, Fatigue FOS, Life N`, "#F8FAFC"},
}

// Diagram returns Graphviz DOT source for the static input → output diagram.
// It carries grouping labels only, no live values.
func Diagram() string {
	var b strings.Builder
	b.WriteString("digraph {\n")
	b.WriteString("\tgraph [rankdir=LR splines=spline]\n")
	b.WriteString("\tnode [color=\"#CBD5E1\" fillcolor=white shape=rectangle style=\"rounded,filled\"]\n")
	for _, n := range diagramNodes {
		if n.fill != "" {
			fmt.Fprintf(&b, "\t%s [label=\"%s\" fillcolor=\"%s\"]\n", n.id, n.label, n.fill)
			continue
		}
		fmt.Fprintf(&b, "\t%s [label=\"%s\"]\n", n.id, n.label)
	}
	for _, n := range diagramNodes[:3] {
		fmt.Fprintf(&b, "\t%s -> out\n", n.id)
	}
	b.WriteString("}\n")
	return b.String()
}
