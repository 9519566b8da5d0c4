package ampscript

import "errors"

var (
	ErrTypeAlreadyExists = errors.New("type already exists")
	ErrEmptyType         = errors.New("definition type must not be empty")
	ErrMissingTemplate   = errors.New("definition has no template")
	ErrNilDefinition     = errors.New("nil definition")
	ErrUnknownToken      = errors.New("template token not declared in settings")
)

// Validation messages. They are part of the output contract and must not change.
const (
	msgUnknownBlockType  = "Unknown block type: %s"
	msgEmptyCanvas       = "Canvas contains no blocks"
	msgUnregisteredType  = "Block type \"%s\" is not registered"
	msgDuplicateVariable = "Duplicate AMPscript variable detected: %s"
	msgElseWithoutIf     = "ELSE without matching IF"
	msgMultipleElse      = "Multiple ELSE blocks for the same IF"
	msgEndIfWithoutIf    = "ENDIF without matching IF"
	msgIfMissingEndIf    = "IF block is missing a matching ENDIF"
	msgFieldRequired     = "%s is required"
	msgFieldNotString    = "%s must be a string"
	msgFieldNotNumber    = "%s must be a number"
	msgFieldNotBoolean   = "%s must be true or false"
	msgFieldNotOption    = "%s must be one of: %s"
	msgFieldBelowMinimum = "%s must be at least %s"
	msgFieldAboveMaximum = "%s must be at most %s"
)
