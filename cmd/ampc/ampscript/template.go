package ampscript

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// tokenRe matches a template placeholder: {{ key }}
//
// The key is made of word characters only; whitespace inside the braces is
// allowed on either side. Valid examples: {{variable}}, {{ outputVariable }}
var tokenRe = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Interpolate replaces every {{key}} placeholder in template with the string
// form of cfg[key].
//
// A key absent from cfg renders as the empty string; enforcing required
// settings is the job of the block's validator, not of rendering.
// A template without placeholders is returned unchanged.
func Interpolate(template string, cfg Config) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return tokenRe.ReplaceAllStringFunc(template, func(match string) string {
		key := tokenRe.FindStringSubmatch(match)[1]
		v, ok := cfg[key]
		if !ok {
			return ""
		}
		return FormatValue(v)
	})
}

// TemplateTokens returns the distinct placeholder keys of template, in order
// of first appearance.
func TemplateTokens(template string) []string {
	var tokens []string
	seen := map[string]struct{}{}
	for _, m := range tokenRe.FindAllStringSubmatch(template, -1) {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		tokens = append(tokens, m[1])
	}
	return tokens
}

// FormatValue converts a config value to its template text.
//
// Numbers use the shortest decimal form that round-trips (3, 1.5, -0.25),
// never exponent notation or locale separators. Booleans render as true or
// false, nil as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// Collapse negative zero.
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
