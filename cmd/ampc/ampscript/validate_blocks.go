package ampscript

import (
	"fmt"
	"sort"
	"strings"
)

// variableKeys are the config keys that introduce an AMPscript variable.
var variableKeys = map[string]struct{}{
	"variable":       {},
	"outputVariable": {},
}

// ValidateBlocks runs the canvas-wide checks that no single block can make
// on its own. All checks run and their errors are concatenated:
//
//   - the canvas must not be empty
//   - every block type must be registered
//   - no two blocks may introduce the same @variable
func ValidateBlocks(blocks []Block, reg *Registry) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateNotEmpty(blocks)...)
	errs = append(errs, validateBlockTypes(blocks, reg)...)
	errs = append(errs, validateDuplicateVariables(blocks)...)
	return errs
}

func validateNotEmpty(blocks []Block) []ValidationError {
	if len(blocks) == 0 {
		return []ValidationError{{Message: msgEmptyCanvas}}
	}
	return nil
}

// validateBlockTypes reports every block whose type the registry does not
// know. It runs even when per-block validation is skipped.
func validateBlockTypes(blocks []Block, reg *Registry) []ValidationError {
	var errs []ValidationError
	for _, b := range blocks {
		if _, ok := reg.Lookup(b.Type); !ok {
			errs = append(errs, ValidationError{
				BlockID: b.ID,
				Message: fmt.Sprintf(msgUnregisteredType, b.Type),
			})
		}
	}
	return errs
}

// validateDuplicateVariables flags every block that introduces an @variable
// already introduced by an earlier block.
//
// The first block to use a name owns it. Only the keys "variable" and
// "outputVariable" are inspected, in sorted key order, and only for string
// values starting with @. The check is textual: reuse in exclusive IF/ELSE branches is
// reported too.
func validateDuplicateVariables(blocks []Block) []ValidationError {
	var errs []ValidationError
	owner := map[string]string{} // variable -> block id

	for _, b := range blocks {
		for _, key := range sortedKeys(b.Config) {
			if _, ok := variableKeys[key]; !ok {
				continue
			}
			name, ok := b.Config[key].(string)
			if !ok || !strings.HasPrefix(name, "@") {
				continue
			}
			if _, taken := owner[name]; taken {
				errs = append(errs, ValidationError{
					BlockID: b.ID,
					Field:   key,
					Message: fmt.Sprintf(msgDuplicateVariable, name),
				})
				continue
			}
			owner[name] = b.ID
		}
	}
	return errs
}

func sortedKeys(cfg Config) []string {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
