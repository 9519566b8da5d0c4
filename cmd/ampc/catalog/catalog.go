// Package catalog holds the built-in AMPscript block definitions.
package catalog

import "ampscript-tools/cmd/ampc/ampscript"

const (
	TypeSet        = "ampscript.set"
	TypeField      = "ampscript.field"
	TypeRow        = "ampscript.row"
	TypeRowCount   = "ampscript.rowCount"
	TypeLookupRows = "ampscript.lookupRows"
	TypeIf         = "ampscript.if"
	TypeElse       = "ampscript.else"
	TypeEndIf      = "ampscript.endif"
)

// ControlFlow names the built-in IF / ELSE / ENDIF types.
var ControlFlow = ampscript.ControlFlowTypes{If: TypeIf, Else: TypeElse, EndIf: TypeEndIf}

const (
	msgVariable       = "Variable name must start with @"
	msgValue          = "Value cannot be empty"
	msgRowVariable    = "Row variable must start with @"
	msgRowsetVariable = "Rowset variable must start with @"
	msgOutputVariable = "Output variable must start with @"
	msgFieldName      = "Field name cannot be empty"
	msgRowNumber      = "Row number must be 1 or greater"
	msgDataExtension  = "Data Extension name cannot be empty"
	msgLookupField    = "Lookup field cannot be empty"
	msgLookupValue    = "Lookup value cannot be empty"
	msgCondition      = "Condition cannot be empty"
)

func str(label, description string) ampscript.SettingField {
	return ampscript.SettingField{Kind: ampscript.KindString, Label: label, Required: true, Description: description}
}

func expr(label, description string) ampscript.SettingField {
	return ampscript.SettingField{Kind: ampscript.KindExpression, Label: label, Required: true, Description: description}
}

// Definitions returns a fresh copy of every built-in definition, in
// palette order.
func Definitions() []ampscript.Definition {
	minRow := 1.0

	return []ampscript.Definition{
		ampscript.Define(ampscript.Meta{
			Type:     TypeSet,
			Label:    "SET Variable",
			Category: ampscript.CategoryAMPscript,
			Settings: ampscript.Settings{
				{Key: "variable", Field: str("Variable Name", "Must start with @ (e.g. @firstName)")},
				{Key: "value", Field: expr("Value / Expression", "AMPscript value or expression")},
			},
		}, "SET {{variable}} = {{value}}", ampscript.Validators(
			variable("variable", msgVariable),
			notBlank("value", msgValue),
		)),

		ampscript.Define(ampscript.Meta{
			Type:     TypeField,
			Label:    "Field",
			Category: ampscript.CategoryAMPscript,
			Settings: ampscript.Settings{
				{Key: "rowVariable", Field: str("Row Variable", "Row variable (e.g. @row)")},
				{Key: "fieldName", Field: str("Field Name", "Exact field name from the Data Extension")},
				{Key: "outputVariable", Field: str("Output Variable", "Must start with @")},
			},
		}, `SET {{outputVariable}} = Field({{rowVariable}}, "{{fieldName}}")`, ampscript.Validators(
			variable("rowVariable", msgRowVariable),
			variable("outputVariable", msgOutputVariable),
			notBlank("fieldName", msgFieldName),
		)),

		ampscript.Define(ampscript.Meta{
			Type:     TypeRow,
			Label:    "Row",
			Category: ampscript.CategoryAMPscript,
			Settings: ampscript.Settings{
				{Key: "rowsetVariable", Field: str("Rowset Variable", "Rowset variable (e.g. @rows)")},
				{Key: "rowNumber", Field: ampscript.SettingField{
					Kind:     ampscript.KindNumber,
					Label:    "Row Number",
					Required: true,
					Min:      &minRow,
				}},
				{Key: "outputVariable", Field: str("Output Variable", "Must start with @")},
			},
		}, "SET {{outputVariable}} = Row({{rowsetVariable}}, {{rowNumber}})", ampscript.Validators(
			variable("rowsetVariable", msgRowsetVariable),
			variable("outputVariable", msgOutputVariable),
			atLeast("rowNumber", 1, msgRowNumber),
		)),

		ampscript.Define(ampscript.Meta{
			Type:     TypeRowCount,
			Label:    "Row Count",
			Category: ampscript.CategoryAMPscript,
			Settings: ampscript.Settings{
				{Key: "rowsetVariable", Field: str("Rowset Variable", "Must reference a LookupRows output (e.g. @rows)")},
				{Key: "outputVariable", Field: str("Output Variable", "Must start with @ (e.g. @rowCount)")},
			},
		}, "SET {{outputVariable}} = RowCount({{rowsetVariable}})", ampscript.Validators(
			variable("rowsetVariable", msgRowsetVariable),
			variable("outputVariable", msgOutputVariable),
		)),

		ampscript.Define(ampscript.Meta{
			Type:     TypeLookupRows,
			Label:    "Lookup Rows",
			Category: ampscript.CategoryAMPscript,
			Settings: ampscript.Settings{
				{Key: "dataExtension", Field: str("Data Extension Name", "Exact name of the Data Extension")},
				{Key: "lookupField", Field: str("Lookup Field", "Field to match on")},
				{Key: "lookupValue", Field: expr("Lookup Value", "AMPscript value or expression")},
				{Key: "outputVariable", Field: str("Output Variable", "Must start with @ (e.g. @rows)")},
			},
		}, `SET {{outputVariable}} = LookupRows("{{dataExtension}}", "{{lookupField}}", {{lookupValue}})`, ampscript.Validators(
			variable("outputVariable", msgOutputVariable),
			notBlank("dataExtension", msgDataExtension),
			notBlank("lookupField", msgLookupField),
			notBlank("lookupValue", msgLookupValue),
		)),

		ampscript.Define(ampscript.Meta{
			Type:     TypeIf,
			Label:    "IF",
			Category: ampscript.CategoryLogic,
			Settings: ampscript.Settings{
				{Key: "condition", Field: expr("Condition", "AMPscript conditional expression")},
			},
		}, "IF {{condition}} THEN", notBlank("condition", msgCondition)),

		ampscript.Define(ampscript.Meta{Type: TypeElse, Label: "ELSE", Category: ampscript.CategoryLogic}, "ELSE", nil),
		ampscript.Define(ampscript.Meta{Type: TypeEndIf, Label: "ENDIF", Category: ampscript.CategoryLogic}, "ENDIF", nil),
	}
}

// Registry returns a registry holding the built-in definitions.
func Registry() *ampscript.Registry {
	return ampscript.MustRegistry(Definitions()...)
}

// NewCompiler returns a compiler over the built-in registry.
func NewCompiler(opts ...ampscript.Option) *ampscript.Compiler {
	opts = append([]ampscript.Option{ampscript.WithControlFlowTypes(ControlFlow)}, opts...)
	return ampscript.NewCompiler(Registry(), opts...)
}
