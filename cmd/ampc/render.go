package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"ampscript-tools/cmd/ampc/ampscript"
)

// styles binds the CLI styles to one writer so color is only emitted when
// that writer is a terminal.
type styles struct {
	ok       lipgloss.Style
	err      lipgloss.Style
	blockID  lipgloss.Style
	field    lipgloss.Style
	category lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		err:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		blockID:  r.NewStyle().Foreground(lipgloss.Color("99")),
		field:    r.NewStyle().Foreground(lipgloss.Color("214")),
		category: r.NewStyle().Foreground(lipgloss.Color("241")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// printErrors writes one line per validation error:
//
//	error: [block] field: message
func printErrors(w io.Writer, errs []ampscript.ValidationError) {
	st := newStyles(w)
	for _, e := range errs {
		line := st.err.Render("error:") + " "
		if e.BlockID != "" {
			line += st.blockID.Render("["+e.BlockID+"]") + " "
		}
		if e.Field != "" {
			line += st.field.Render(e.Field) + ": "
		}
		fmt.Fprintln(w, line+e.Message)
	}
}
