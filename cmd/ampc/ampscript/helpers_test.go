package ampscript

import (
	"strings"
	"testing"
)

func mustContain(t *testing.T, got string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(got, sub) {
			t.Fatalf("expected %q to contain %q", got, sub)
		}
	}
}

func requireVar(field, label string) Validator {
	return ValidatorFunc(func(cfg Config) []ValidationError {
		if !strings.HasPrefix(cfg.Text(field), "@") {
			return []ValidationError{{Field: field, Message: label + " must start with @"}}
		}
		return nil
	})
}

func requireText(field, msg string) Validator {
	return ValidatorFunc(func(cfg Config) []ValidationError {
		if strings.TrimSpace(FormatValue(cfg[field])) == "" {
			return []ValidationError{{Field: field, Message: msg}}
		}
		return nil
	})
}

// testRegistry holds a small catalog mirroring the shipped SET and
// control-flow blocks.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(
		Define(Meta{
			Type:     "ampscript.set",
			Label:    "Set Variable",
			Category: CategoryAMPscript,
			Settings: Settings{
				{Key: "variable", Field: SettingField{Kind: KindString, Label: "Variable", Required: true}},
				{Key: "value", Field: SettingField{Kind: KindExpression, Label: "Value", Required: true}},
			},
		}, "SET {{variable}} = {{value}}", Validators(
			requireVar("variable", "Variable name"),
			requireText("value", "Value is required"),
		)),
		Define(Meta{
			Type:     "ampscript.if",
			Label:    "IF",
			Category: CategoryLogic,
			Settings: Settings{
				{Key: "condition", Field: SettingField{Kind: KindExpression, Label: "Condition", Required: true}},
			},
		}, "IF {{condition}} THEN", requireText("condition", "Condition is required")),
		Define(Meta{Type: "ampscript.else", Label: "ELSE", Category: CategoryLogic}, "ELSE", nil),
		Define(Meta{Type: "ampscript.endif", Label: "ENDIF", Category: CategoryLogic}, "ENDIF", nil),
	)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func set(id, variable string, value any) Block {
	return Block{ID: id, Type: "ampscript.set", Config: Config{"variable": variable, "value": value}}
}

func ifBlock(id, cond string) Block {
	return Block{ID: id, Type: "ampscript.if", Config: Config{"condition": cond}}
}

func elseBlock(id string) Block  { return Block{ID: id, Type: "ampscript.else"} }
func endifBlock(id string) Block { return Block{ID: id, Type: "ampscript.endif"} }

func messages(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}
