package main

import (
	"io"
	"os"

	"ampscript-tools/pkg/lib"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		lib.Exit(err)
	}
}

// run builds the command tree and executes it with args.
func run(outW, errW io.Writer, args []string) error {
	rootCmd := newRootCmd(outW, errW)
	rootCmd.SetArgs(args)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}
