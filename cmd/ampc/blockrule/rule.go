// Package blockrule compiles declarative block validation rules written as
// CEL expressions over a block's config.
package blockrule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"

	"ampscript-tools/cmd/ampc/ampscript"
)

var ErrInvalidRule = errors.New("invalid rule")

// Rule is one check: when Expr does not evaluate to true the block gets
// an error with Message, attributed to Field.
//
// Expr sees the block config as the map variable "config", e.g.
//
//	config.variable.startsWith("@")
//	has(config.rowNumber) && config.rowNumber >= 1
type Rule struct {
	Field   string `yaml:"field"`
	Expr    string `yaml:"expr"`
	Message string `yaml:"message"`
}

type compiledRule struct {
	Rule
	prg cel.Program
}

// Validator runs compiled rules in order. It implements ampscript.Validator
// and is safe for concurrent use.
type Validator struct {
	rules []compiledRule
}

var _ ampscript.Validator = (*Validator)(nil)

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("config", cel.MapType(cel.StringType, cel.DynType)),
		cel.CrossTypeNumericComparisons(true),
		ext.Strings(),
	)
}

// Compile type-checks every rule. Each rule must have an expression and a
// message and must produce a bool.
func Compile(rules []Rule) (*Validator, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	v := &Validator{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if strings.TrimSpace(r.Expr) == "" {
			return nil, fmt.Errorf("%w: rule %d: expr is required", ErrInvalidRule, i)
		}
		if strings.TrimSpace(r.Message) == "" {
			return nil, fmt.Errorf("%w: rule %d: message is required", ErrInvalidRule, i)
		}

		ast, issues := env.Compile(r.Expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidRule, i, issues.Err())
		}
		if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
			return nil, fmt.Errorf("%w: rule %d: expression must be bool, got %s", ErrInvalidRule, i, out)
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidRule, i, err)
		}
		v.rules = append(v.rules, compiledRule{Rule: r, prg: prg})
	}
	return v, nil
}

// Len returns the number of rules.
func (v *Validator) Len() int {
	if v == nil {
		return 0
	}
	return len(v.rules)
}

// Validate evaluates every rule against cfg. A rule that does not yield
// true, including one that fails to evaluate on a missing key, reports
// its message.
func (v *Validator) Validate(cfg ampscript.Config) []ampscript.ValidationError {
	if v == nil {
		return nil
	}
	vars := map[string]any{"config": map[string]any(cfg)}
	if cfg == nil {
		vars["config"] = map[string]any{}
	}

	var errs []ampscript.ValidationError
	for _, r := range v.rules {
		if passed(r.prg, vars) {
			continue
		}
		errs = append(errs, ampscript.ValidationError{Field: r.Field, Message: r.Message})
	}
	return errs
}

func passed(prg cel.Program, vars map[string]any) bool {
	out, _, err := prg.Eval(vars)
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
