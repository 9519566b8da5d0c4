package ampscript

// ControlFlowTypes names the block types that open, split and close a
// conditional.
type ControlFlowTypes struct {
	If    string
	Else  string
	EndIf string
}

// DefaultControlFlowTypes are the block types of the built-in catalog.
var DefaultControlFlowTypes = ControlFlowTypes{
	If:    "ampscript.if",
	Else:  "ampscript.else",
	EndIf: "ampscript.endif",
}

// ifFrame is one open IF on the control-flow stack.
type ifFrame struct {
	blockID string
	hasElse bool
}

// ValidateControlFlow checks IF / ELSE / ENDIF nesting over blocks.
//
// It behaves as a bracket matcher where IF pushes, ENDIF pops, and ELSE
// marks the innermost open IF without popping it, so a second ELSE before
// the ENDIF is caught. Other blocks are ignored wherever they appear.
//
// IFs still open at the end are reported outermost first.
func ValidateControlFlow(blocks []Block, types ControlFlowTypes) []ValidationError {
	var errs []ValidationError
	var stack []*ifFrame

	for _, b := range blocks {
		switch b.Type {
		case types.If:
			stack = append(stack, &ifFrame{blockID: b.ID})

		case types.Else:
			if len(stack) == 0 {
				errs = append(errs, ValidationError{BlockID: b.ID, Message: msgElseWithoutIf})
				continue
			}
			top := stack[len(stack)-1]
			if top.hasElse {
				errs = append(errs, ValidationError{BlockID: b.ID, Message: msgMultipleElse})
				continue
			}
			top.hasElse = true

		case types.EndIf:
			if len(stack) == 0 {
				errs = append(errs, ValidationError{BlockID: b.ID, Message: msgEndIfWithoutIf})
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}

	for _, f := range stack {
		errs = append(errs, ValidationError{BlockID: f.blockID, Message: msgIfMissingEndIf})
	}
	return errs
}
