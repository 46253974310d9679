package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/rewind"
)

// GenerateMermaid produces a Mermaid flowchart of the undo/redo timeline.
// Undo entries run oldest to newest into a "now" node; redo entries follow
// in the order PerformRedo would apply them, on dotted edges.
//
// Node shapes:
// - Checkpoint with creations: [[Subroutine]]
// - Empty checkpoint: [/Parallelogram/]
// - Default: [Rectangle]
func GenerateMermaid(undo, redo []rewind.Checkpoint) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	prev := ""
	for i, cp := range undo {
		id := fmt.Sprintf("u%d", i)
		sb.WriteString(node(id, cp))
		if prev != "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", prev, id)
		}
		prev = id
	}

	sb.WriteString("    now((\"now\"))\n")
	if prev != "" {
		fmt.Fprintf(&sb, "    %s --> now\n", prev)
	}

	prev = "now"
	for i := len(redo) - 1; i >= 0; i-- {
		id := fmt.Sprintf("r%d", i)
		sb.WriteString(node(id, redo[i]))
		fmt.Fprintf(&sb, "    %s -.-> %s\n", prev, id)
		prev = id
	}

	sb.WriteString("\n    %% Styles\n")
	// Force black text (color:#000) for high-contrast regardless of theme
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	sb.WriteString("    classDef redo fill:#e1f5fe,stroke:#01579b,stroke-dasharray:4,color:#000;\n")
	sb.WriteString("    class now current;\n")
	for i := range redo {
		fmt.Fprintf(&sb, "    class r%d redo;\n", i)
	}
	return sb.String()
}

func node(id string, cp rewind.Checkpoint) string {
	opener, closer := "[", "]"
	switch {
	case len(cp.Changed) == 0 && len(cp.Created) == 0:
		opener, closer = "[/", "/]"
	case len(cp.Created) > 0:
		opener, closer = "[[", "]]"
	}
	return fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, Label(cp), closer)
}

// Label summarizes a checkpoint: "~" prefixes changed identities, "+" created ones.
func Label(cp rewind.Checkpoint) string {
	parts := make([]string, 0, len(cp.Changed)+len(cp.Created))
	for _, id := range cp.Changed {
		parts = append(parts, "~"+strconv.Itoa(id))
	}
	for _, id := range cp.Created {
		parts = append(parts, "+"+strconv.Itoa(id))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}
