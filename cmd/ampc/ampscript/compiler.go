package ampscript

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	scriptOpen  = "%%["
	scriptClose = "]%%"
)

// Format selects how compiled lines are laid out.
type Format int

const (
	// FormatIndented indents statements nested in IF / ELSE branches.
	FormatIndented Format = iota
	// FormatFlat emits every statement at column zero.
	FormatFlat
)

func (f Format) String() string {
	switch f {
	case FormatIndented:
		return "indented"
	case FormatFlat:
		return "flat"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

type Option func(*Compiler)

func WithFormat(f Format) Option {
	return func(c *Compiler) { c.format = f }
}

func WithControlFlowTypes(t ControlFlowTypes) Option {
	return func(c *Compiler) { c.controlFlow = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.log = l
		}
	}
}

// Compiler turns an ordered list of blocks into one AMPscript fragment.
// It holds no per-compile state and may be used concurrently.
type Compiler struct {
	registry    *Registry
	format      Format
	controlFlow ControlFlowTypes
	log         *slog.Logger
}

func NewCompiler(reg *Registry, opts ...Option) *Compiler {
	c := &Compiler{
		registry:    reg,
		format:      FormatIndented,
		controlFlow: DefaultControlFlowTypes,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile validates and renders blocks.
//
// Errors from per-block validation, canvas checks and control-flow checks
// are all collected, in that order. If any exist the result carries them
// and no output at all.
func (c *Compiler) Compile(blocks []Block) CompileResult {
	compiled, errs := c.compileBlocks(blocks)
	errs = append(errs, ValidateBlocks(blocks, c.registry)...)
	errs = append(errs, ValidateControlFlow(blocks, c.controlFlow)...)

	c.log.Debug("compile",
		"blocks", len(blocks),
		"errors", len(errs),
		"format", c.format.String(),
	)

	if len(errs) > 0 {
		return CompileResult{Errors: errs}
	}

	lines := make([]string, len(compiled))
	for i, cb := range compiled {
		lines[i] = cb.Script
	}
	if c.format == FormatIndented {
		lines = IndentLines(lines)
	}

	c.log.Debug("compile ok", "lines", len(lines))

	return CompileResult{
		AMPscript: Wrap(lines),
		Errors:    []ValidationError{},
		Blocks:    compiled,
	}
}

// CompileRaw decodes block configs against their settings before
// compiling. Decode errors come first and, like any other error, discard
// the output. A field that failed to decode is reported once: later errors
// for the same block and field are dropped.
func (c *Compiler) CompileRaw(blocks []Block) CompileResult {
	decoded, decodeErrs := DecodeBlocks(c.registry, blocks)
	res := c.Compile(decoded)
	if len(decodeErrs) == 0 {
		return res
	}

	failed := make(map[fieldRef]struct{}, len(decodeErrs))
	for _, e := range decodeErrs {
		failed[fieldRef{e.BlockID, e.Field}] = struct{}{}
	}
	errs := decodeErrs
	for _, e := range res.Errors {
		if _, seen := failed[fieldRef{e.BlockID, e.Field}]; seen {
			continue
		}
		errs = append(errs, e)
	}
	return CompileResult{Errors: errs}
}

type fieldRef struct {
	blockID string
	field   string
}

// compileBlocks runs per-block validation and renders every block that
// passes. A block that fails contributes errors and no line.
func (c *Compiler) compileBlocks(blocks []Block) ([]CompiledBlock, []ValidationError) {
	var (
		out  []CompiledBlock
		errs []ValidationError
	)
	for _, b := range blocks {
		def, ok := c.registry.Lookup(b.Type)
		if !ok {
			errs = append(errs, ValidationError{
				BlockID: b.ID,
				Message: fmt.Sprintf(msgUnknownBlockType, b.Type),
			})
			continue
		}

		if blockErrs := def.Validate(b.Config); len(blockErrs) > 0 {
			for _, e := range blockErrs {
				if e.BlockID == "" {
					e.BlockID = b.ID
				}
				errs = append(errs, e)
			}
			c.log.Debug("block rejected", "id", b.ID, "type", b.Type, "errors", len(blockErrs))
			continue
		}

		out = append(out, CompiledBlock{ID: b.ID, Script: def.Render(b.Config)})
	}
	return out, errs
}

// Wrap joins lines and encloses them in the %%[ ]%% delimiters, each on
// its own line.
func Wrap(lines []string) string {
	return scriptOpen + "\n" + strings.Join(lines, "\n") + "\n" + scriptClose
}
