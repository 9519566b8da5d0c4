package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ampscript-tools/cmd/ampc/ampscript"
	"ampscript-tools/cmd/ampc/catalog"
	"ampscript-tools/pkg/lib"
)

func (a *app) newCompileCmd() *cobra.Command {
	var (
		flat   bool
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compile <canvas>...",
		Short: "Compile canvas files into one AMPscript fragment",
		Long: "Compile canvas files into one AMPscript fragment.\n" +
			"Blocks of all files are concatenated in argument order. Every validation\n" +
			"error is reported and nothing is written when any exists.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.compile(args, flat)
			if err != nil {
				return err
			}

			if !res.OK() && !asJSON {
				printErrors(a.errW, res.Errors)
				return validationFailed(res.Errors)
			}

			w := a.outW
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if asJSON {
				if err := writeJSON(w, res); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(w, res.AMPscript)
			}

			if output != "" {
				fmt.Fprintf(a.errW, "written to %s\n", output)
			}
			if !res.OK() {
				return validationFailed(res.Errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "do not indent statements inside IF / ELSE branches")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full compile result as JSON")
	return cmd
}

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <canvas>...",
		Short: "Check canvas files without printing the fragment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.compile(args, false)
			if err != nil {
				return err
			}
			if !res.OK() {
				printErrors(a.errW, res.Errors)
				return validationFailed(res.Errors)
			}
			fmt.Fprintln(a.outW, newStyles(a.outW).ok.Render("ok"))
			return nil
		},
	}
}

// compile loads the canvas files and runs the decode and compile pipeline.
func (a *app) compile(files []string, flat bool) (ampscript.CompileResult, error) {
	src, err := a.load(files)
	if err != nil {
		return ampscript.CompileResult{}, err
	}

	format := ampscript.FormatIndented
	if flat {
		format = ampscript.FormatFlat
	}
	c := ampscript.NewCompiler(src.registry,
		ampscript.WithFormat(format),
		ampscript.WithControlFlowTypes(catalog.ControlFlow),
		ampscript.WithLogger(a.log),
	)

	res := c.CompileRaw(src.blocks)
	a.log.Info("compiled", "files", len(files), "blocks", len(src.blocks), "errors", len(res.Errors))
	return res, nil
}

func writeJSON(w io.Writer, res ampscript.CompileResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func validationFailed(errs []ampscript.ValidationError) error {
	return &lib.ExitError{Code: 1, Message: fmt.Sprintf("%d validation error(s)", len(errs))}
}
