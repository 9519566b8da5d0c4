package catalog

import (
	"strings"

	"ampscript-tools/cmd/ampc/ampscript"
)

// variable reports field unless its value is a string starting with @.
func variable(field, message string) ampscript.Validator {
	return ampscript.ValidatorFunc(func(cfg ampscript.Config) []ampscript.ValidationError {
		if strings.HasPrefix(cfg.Text(field), "@") {
			return nil
		}
		return []ampscript.ValidationError{{Field: field, Message: message}}
	})
}

// notBlank reports field when it is absent or renders as whitespace only.
func notBlank(field, message string) ampscript.Validator {
	return ampscript.ValidatorFunc(func(cfg ampscript.Config) []ampscript.ValidationError {
		if strings.TrimSpace(ampscript.FormatValue(cfg[field])) != "" {
			return nil
		}
		return []ampscript.ValidationError{{Field: field, Message: message}}
	})
}

// atLeast reports field unless it holds a number >= min.
// A missing or non-numeric value fails too.
func atLeast(field string, min float64, message string) ampscript.Validator {
	return ampscript.ValidatorFunc(func(cfg ampscript.Config) []ampscript.ValidationError {
		if n, ok := cfg.Number(field); ok && n >= min {
			return nil
		}
		return []ampscript.ValidationError{{Field: field, Message: message}}
	})
}
