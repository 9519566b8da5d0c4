package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ampscript-tools/cmd/ampc/ampscript"
)

func (a *app) newBlocksCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List all registered block types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.load(nil)
			if err != nil {
				return err
			}
			printBlocks(a.outW, collectBlocks(src.registry), verbose)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also list each block's settings")
	return cmd
}

// blockEntry holds what the listing shows for one definition.
type blockEntry struct {
	typ      string
	category string
	template string
	settings ampscript.Settings
}

// collectBlocks returns one entry per registered type, sorted by type.
func collectBlocks(reg *ampscript.Registry) []blockEntry {
	var out []blockEntry
	for _, t := range reg.Types() {
		def, _ := reg.Lookup(t)
		m := def.Meta()
		out = append(out, blockEntry{
			typ:      t,
			category: string(m.Category),
			template: def.Template(),
			settings: m.Settings,
		})
	}
	return out
}

// printBlocks prints all entries aligned on the type column.
func printBlocks(w io.Writer, entries []blockEntry, verbose bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no block types registered")
		return
	}

	maxLen := 0
	for _, e := range entries {
		if n := len(e.typ); n > maxLen {
			maxLen = n
		}
	}

	st := newStyles(w)
	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  %s  %s\n", maxLen, e.typ, st.category.Render("["+e.category+"]"), e.template)
		if !verbose {
			continue
		}
		for _, s := range e.settings {
			req := ""
			if s.Field.Required {
				req = " required"
			}
			fmt.Fprintf(w, "%-*s    %s %s\n", maxLen, "", s.Key, st.dim.Render("("+string(s.Field.Kind)+req+")"))
		}
	}
}
