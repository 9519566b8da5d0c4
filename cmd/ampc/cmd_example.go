package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:embed cmd_example_canvas.yml
var exampleCanvasYAML []byte

//go:embed cmd_example_canvas.hcl
var exampleCanvasHCL []byte

//go:embed cmd_example_catalog.yml
var exampleCatalogYAML []byte

const exampleCanvasHeader = `# ampc canvas: blocks compile top to bottom
# Run: ampc compile <this-file>

`

const exampleHCLHeader = `# ampc canvas in HCL: block labels are block ids
# Run: ampc compile <this-file>

`

const exampleCatalogHeader = `# ampc catalog: custom block types
# Use: ampc --catalog <this-file> blocks
# Settings are checked first, then each rule's CEL expression over config.

`

func (a *app) newExampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example canvas or catalog",
		Long: "Print an example " + appName + " file.\n" +
			"By default a YAML canvas using every built-in block is printed. Use --hcl for\n" +
			"the same kind of canvas in HCL and --definitions for a custom catalog.\n" +
			"Use --output to write to a file instead of stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useHCL, _ := cmd.Flags().GetBool("hcl")
			defs, _ := cmd.Flags().GetBool("definitions")
			if useHCL && defs {
				return fmt.Errorf("--hcl and --definitions are mutually exclusive")
			}

			header, body := exampleCanvasHeader, exampleCanvasYAML
			switch {
			case useHCL:
				header, body = exampleHCLHeader, exampleCanvasHCL
			case defs:
				header, body = exampleCatalogHeader, exampleCatalogYAML
			}

			output, _ := cmd.Flags().GetString("output")
			w := a.outW
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			fmt.Fprint(w, header)
			if _, err := w.Write(body); err != nil {
				return err
			}

			if output != "" {
				fmt.Fprintf(a.errW, "written to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	cmd.Flags().Bool("hcl", false, "print the canvas in HCL")
	cmd.Flags().Bool("definitions", false, "print a catalog of custom block definitions")
	return cmd
}
