package confetti

import "strings"

// Document is the root of a parsed configuration: its top-level
// directive list plus any comments retained under CaptureComments.
type Document struct {
	Directives []Directive
	Comments   []Comment
}

// String renders the canonical textual snapshot form used by the
// conformance suite: one line per directive, "<arg> <arg> ..." with
// nested blocks indented four spaces per level. A directive with no
// children renders bare, with no brackets, whether it had no block at
// all or an explicitly empty one.
func (d *Document) String() string {
	var sb strings.Builder
	writeDirectives(&sb, d.Directives, 0)
	return sb.String()
}

func writeDirectives(sb *strings.Builder, directives []Directive, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, dir := range directives {
		sb.WriteString(indent)
		writeArguments(sb, dir.Arguments)
		if len(dir.Children) > 0 {
			sb.WriteString(" [\n")
			writeDirectives(sb, dir.Children, depth+1)
			sb.WriteString(indent)
			sb.WriteString("]")
		}
		sb.WriteString("\n")
	}
}

func writeArguments(sb *strings.Builder, args []Argument) {
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("<")
		sb.WriteString(arg.Text)
		sb.WriteString(">")
	}
}
