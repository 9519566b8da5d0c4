package ampscript

import "strings"

// IndentUnit is the text emitted once per nesting level.
const IndentUnit = "  "

// LineRole is the control-flow role of a rendered line.
type LineRole int

const (
	RoleStatement LineRole = iota
	RoleIf
	RoleElse
	RoleEndIf
)

// ClassifyLine determines the role of a rendered line from its trimmed,
// upper-cased text: "IF ..." opens a branch, "ELSE" and "ENDIF" must match
// exactly, anything else is a plain statement.
func ClassifyLine(line string) LineRole {
	t := strings.ToUpper(strings.TrimSpace(line))
	switch {
	case strings.HasPrefix(t, "IF "):
		return RoleIf
	case t == "ELSE":
		return RoleElse
	case t == "ENDIF":
		return RoleEndIf
	}
	return RoleStatement
}

// Indenter tracks the nesting level across consecutive lines.
//
// It never reports imbalance: a dedent at level zero silently stays at
// zero. Structural errors are the control-flow validator's business.
type Indenter struct {
	level int
}

// Level returns the current nesting level.
func (in *Indenter) Level() int { return in.level }

// Indent returns line prefixed for its nesting level and advances the
// tracker past it.
func (in *Indenter) Indent(line string) string {
	role := ClassifyLine(line)

	if role == RoleElse || role == RoleEndIf {
		in.dedent()
	}
	out := strings.Repeat(IndentUnit, in.level) + line
	if role == RoleIf || role == RoleElse {
		in.level++
	}
	return out
}

func (in *Indenter) dedent() {
	if in.level > 0 {
		in.level--
	}
}

// IndentLines indents a sequence of lines starting at level zero.
func IndentLines(lines []string) []string {
	var in Indenter
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = in.Indent(l)
	}
	return out
}
