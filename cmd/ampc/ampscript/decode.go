package ampscript

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DecodeConfig coerces raw values to the kinds declared in settings.
//
// Strings and expressions accept scalars and keep their text form, numbers
// accept numeric text and are stored as float64, booleans accept the text
// "true" and "false". Values that cannot be coerced are kept as they are
// and reported. Absent or nil values and keys missing from settings pass
// through untouched; required-ness is checked by SchemaValidator.
func DecodeConfig(settings Settings, raw Config) (Config, []ValidationError) {
	if raw == nil {
		return Config{}, nil
	}
	out := make(Config, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	var errs []ValidationError
	for _, st := range settings {
		v, ok := raw[st.Key]
		if !ok || v == nil {
			continue
		}
		decoded, msg := decodeValue(st.Field, v)
		if msg != "" {
			errs = append(errs, ValidationError{
				Field:   st.Key,
				Message: fmt.Sprintf(msg, label(st)),
			})
			continue
		}
		out[st.Key] = decoded
	}
	return out, errs
}

// decodeValue returns the coerced value, or a message format naming the
// problem when v does not fit the field kind.
func decodeValue(f SettingField, v any) (any, string) {
	switch f.Kind {
	case KindString, KindExpression:
		s, ok := scalarText(v)
		if !ok {
			return v, msgFieldNotString
		}
		return s, ""

	case KindNumber:
		if s, isText := v.(string); isText && strings.TrimSpace(s) == "" {
			return v, ""
		}
		n, ok := toNumber(v)
		if !ok {
			return v, msgFieldNotNumber
		}
		return n, ""

	case KindBoolean:
		switch x := v.(type) {
		case bool:
			return x, ""
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil && isBoolWord(x) {
				return b, ""
			}
		}
		return v, msgFieldNotBoolean

	case KindSelect:
		s, ok := scalarText(v)
		if !ok {
			return v, msgFieldNotString
		}
		return s, ""
	}
	return v, ""
}

func isBoolWord(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false":
		return true
	}
	return false
}

// scalarText returns the text form of strings, numbers and booleans.
func scalarText(v any) (string, bool) {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return FormatValue(v), true
	}
	return "", false
}

func label(st Setting) string {
	if st.Field.Label != "" {
		return st.Field.Label
	}
	return st.Key
}

// SchemaValidator checks a config against its declared settings: required
// values present and non-blank, select values among the options and numbers
// within bounds. Errors follow settings order.
func SchemaValidator(settings Settings) Validator {
	return ValidatorFunc(func(cfg Config) []ValidationError {
		var errs []ValidationError
		for _, st := range settings {
			v, present := cfg[st.Key]
			if !present || v == nil || isBlank(v) {
				if st.Field.Required {
					errs = append(errs, ValidationError{
						Field:   st.Key,
						Message: fmt.Sprintf(msgFieldRequired, label(st)),
					})
				}
				continue
			}
			if e, bad := checkValue(st, cfg, v); bad {
				errs = append(errs, e)
			}
		}
		return errs
	})
}

func checkValue(st Setting, cfg Config, v any) (ValidationError, bool) {
	f := st.Field
	fail := func(format string, args ...any) (ValidationError, bool) {
		return ValidationError{
			Field:   st.Key,
			Message: fmt.Sprintf(format, append([]any{label(st)}, args...)...),
		}, true
	}

	switch f.Kind {
	case KindSelect:
		s, ok := scalarText(v)
		if !ok {
			return fail(msgFieldNotString)
		}
		if len(f.Options) > 0 && !contains(f.Options, s) {
			return fail(msgFieldNotOption, strings.Join(f.Options, ", "))
		}

	case KindNumber:
		n, ok := cfg.Number(st.Key)
		if !ok {
			return fail(msgFieldNotNumber)
		}
		if f.Min != nil && n < *f.Min {
			return fail(msgFieldBelowMinimum, FormatValue(*f.Min))
		}
		if f.Max != nil && n > *f.Max {
			return fail(msgFieldAboveMaximum, FormatValue(*f.Max))
		}

	case KindBoolean:
		if _, ok := v.(bool); !ok {
			return fail(msgFieldNotBoolean)
		}
	}
	return ValidationError{}, false
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// DecodeBlocks decodes the config of every block whose type is registered.
// Blocks of unknown type are returned unchanged so the compiler can report
// them. Errors are attributed to their block.
func DecodeBlocks(reg *Registry, blocks []Block) ([]Block, []ValidationError) {
	out := make([]Block, len(blocks))
	var errs []ValidationError
	for i, b := range blocks {
		out[i] = b
		def, ok := reg.Lookup(b.Type)
		if !ok {
			continue
		}
		cfg, blockErrs := DecodeConfig(def.Meta().Settings, b.Config)
		for _, e := range blockErrs {
			e.BlockID = b.ID
			errs = append(errs, e)
		}
		out[i].Config = cfg
	}
	return out, errs
}

// EnsureIDs gives every block without an id the id block-<n>, where n is
// its 1-based position.
func EnsureIDs(blocks []Block) {
	for i := range blocks {
		if strings.TrimSpace(blocks[i].ID) == "" {
			blocks[i].ID = "block-" + strconv.Itoa(i+1)
		}
	}
}
