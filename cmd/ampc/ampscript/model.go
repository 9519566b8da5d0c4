package ampscript

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Category groups block definitions for display. It is not consumed by the compiler.
type Category string

const (
	CategoryAMPscript Category = "AMPscript"
	CategoryLogic     Category = "Logic"
	CategoryLayout    Category = "Layout"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAMPscript, CategoryLogic, CategoryLayout:
		return true
	}
	return false
}

// FieldKind is the declared type of a single block setting.
type FieldKind string

const (
	KindString     FieldKind = "string"
	KindNumber     FieldKind = "number"
	KindBoolean    FieldKind = "boolean"
	KindSelect     FieldKind = "select"
	KindExpression FieldKind = "expression"
)

// Valid reports whether k is one of the known field kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindSelect, KindExpression:
		return true
	}
	return false
}

// SettingField describes one configurable setting of a block.
//
// Min and Max only apply to KindNumber; Options only to KindSelect.
// A nil bound means unbounded.
type SettingField struct {
	Kind        FieldKind
	Label       string
	Required    bool
	Description string
	Min         *float64
	Max         *float64
	Options     []string
}

// Setting pairs a config key with its field declaration.
type Setting struct {
	Key   string
	Field SettingField
}

// Settings is the ordered settings schema of a block definition.
// Order is the declaration order and drives decoding and error order.
type Settings []Setting

// Get returns the field declared for key.
func (s Settings) Get(key string) (SettingField, bool) {
	for _, st := range s {
		if st.Key == key {
			return st.Field, true
		}
	}
	return SettingField{}, false
}

// Keys returns the declared keys in order.
func (s Settings) Keys() []string {
	keys := make([]string, len(s))
	for i, st := range s {
		keys[i] = st.Key
	}
	return keys
}

// Meta is the descriptive part of a block definition.
type Meta struct {
	Type     string
	Label    string
	Category Category
	Settings Settings
}

// Config holds the user-provided values of one block, keyed by setting name.
type Config map[string]any

// Lookup returns the raw value stored under key.
func (c Config) Lookup(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// Text returns the value under key when it is a string, and "" otherwise.
func (c Config) Text(key string) string {
	s, _ := c[key].(string)
	return s
}

// Number returns the value under key as a float64.
// Integers, floats, json.Number and numeric strings are accepted. Text may
// use a 0x, 0o or 0b integer prefix.
func (c Config) Number(key string) (float64, bool) {
	return toNumber(c[key])
}

func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		return parseNumber(string(x))
	case string:
		return parseNumber(x)
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return float64(i), true
	}
	if u, err := strconv.ParseUint(s, 0, 64); err == nil {
		return float64(u), true
	}
	return 0, false
}

// Block is one entry on the canvas: an instance of a registered definition.
type Block struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Config Config `json:"config"`
}

// ValidationError is a single problem found while compiling.
//
// Field names the setting at fault, when there is one.
// BlockID attributes the error to a canvas block; it is empty for
// canvas-level problems such as an empty canvas.
type ValidationError struct {
	BlockID string `json:"blockId,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// String formats the error as "[block] field: message", omitting empty parts.
func (e ValidationError) String() string {
	var b strings.Builder
	if e.BlockID != "" {
		fmt.Fprintf(&b, "[%s] ", e.BlockID)
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// CompiledBlock is the rendered statement of a single block, without the
// surrounding %%[ ]%% delimiters and without indentation.
type CompiledBlock struct {
	ID     string `json:"id"`
	Script string `json:"script"`
}

// CompileResult is the outcome of one compile call.
//
// AMPscript and Errors are never populated together: any error discards
// the whole output, including Blocks.
type CompileResult struct {
	AMPscript string            `json:"ampscript"`
	Errors    []ValidationError `json:"errors"`
	Blocks    []CompiledBlock   `json:"blocks,omitempty"`
}

// OK reports whether the compile produced output.
func (r CompileResult) OK() bool {
	return len(r.Errors) == 0
}
