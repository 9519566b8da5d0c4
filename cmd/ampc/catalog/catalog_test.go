package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ampscript-tools/cmd/ampc/ampscript"
)

func block(id, typ string, cfg ampscript.Config) ampscript.Block {
	return ampscript.Block{ID: id, Type: typ, Config: cfg}
}

func TestRegistry_HoldsEveryBuiltin(t *testing.T) {
	reg := Registry()
	assert.Equal(t, []string{
		TypeElse, TypeEndIf, TypeField, TypeIf, TypeLookupRows, TypeRow, TypeRowCount, TypeSet,
	}, reg.Types())

	for _, def := range Definitions() {
		m := def.Meta()
		assert.True(t, m.Category.Valid(), "%s category", m.Type)
		assert.NoError(t, ampscript.CheckTemplateTokens(m, def.Template()), m.Type)
		for _, st := range m.Settings {
			assert.True(t, st.Field.Kind.Valid(), "%s.%s kind", m.Type, st.Key)
		}
	}
}

func TestRender_Builtins(t *testing.T) {
	reg := Registry()
	cases := []struct {
		typ  string
		cfg  ampscript.Config
		want string
	}{
		{TypeSet, ampscript.Config{"variable": "@firstName", "value": "FirstName"}, "SET @firstName = FirstName"},
		{TypeField, ampscript.Config{"rowVariable": "@row", "fieldName": "First_Name", "outputVariable": "@firstName"},
			`SET @firstName = Field(@row, "First_Name")`},
		{TypeRow, ampscript.Config{"rowsetVariable": "@rows", "rowNumber": 1, "outputVariable": "@row"}, "SET @row = Row(@rows, 1)"},
		{TypeRowCount, ampscript.Config{"rowsetVariable": "@rows", "outputVariable": "@rowCount"}, "SET @rowCount = RowCount(@rows)"},
		{TypeLookupRows, ampscript.Config{
			"dataExtension": "Ent.Consumers", "lookupField": "Email_Address", "lookupValue": "emailaddr", "outputVariable": "@rows",
		}, `SET @rows = LookupRows("Ent.Consumers", "Email_Address", emailaddr)`},
		{TypeIf, ampscript.Config{"condition": "@rowCount > 0"}, "IF @rowCount > 0 THEN"},
		{TypeElse, nil, "ELSE"},
		{TypeEndIf, nil, "ENDIF"},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			def, ok := reg.Lookup(tc.typ)
			require.True(t, ok)
			assert.Empty(t, def.Validate(tc.cfg))
			assert.Equal(t, tc.want, def.Render(tc.cfg))
		})
	}
}

func TestValidate_BuiltinMessages(t *testing.T) {
	reg := Registry()
	cases := []struct {
		typ  string
		cfg  ampscript.Config
		want []ampscript.ValidationError
	}{
		{TypeSet, ampscript.Config{"variable": "firstName", "value": " "}, []ampscript.ValidationError{
			{Field: "variable", Message: "Variable name must start with @"},
			{Field: "value", Message: "Value cannot be empty"},
		}},
		{TypeField, ampscript.Config{"rowVariable": "row", "fieldName": "", "outputVariable": "out"}, []ampscript.ValidationError{
			{Field: "rowVariable", Message: "Row variable must start with @"},
			{Field: "outputVariable", Message: "Output variable must start with @"},
			{Field: "fieldName", Message: "Field name cannot be empty"},
		}},
		{TypeRow, ampscript.Config{"rowsetVariable": "rows", "rowNumber": 0, "outputVariable": "@row"}, []ampscript.ValidationError{
			{Field: "rowsetVariable", Message: "Rowset variable must start with @"},
			{Field: "rowNumber", Message: "Row number must be 1 or greater"},
		}},
		{TypeRow, ampscript.Config{"rowsetVariable": "@rows", "outputVariable": "@row"}, []ampscript.ValidationError{
			{Field: "rowNumber", Message: "Row number must be 1 or greater"},
		}},
		{TypeRowCount, ampscript.Config{}, []ampscript.ValidationError{
			{Field: "rowsetVariable", Message: "Rowset variable must start with @"},
			{Field: "outputVariable", Message: "Output variable must start with @"},
		}},
		{TypeLookupRows, ampscript.Config{"outputVariable": "rows"}, []ampscript.ValidationError{
			{Field: "outputVariable", Message: "Output variable must start with @"},
			{Field: "dataExtension", Message: "Data Extension name cannot be empty"},
			{Field: "lookupField", Message: "Lookup field cannot be empty"},
			{Field: "lookupValue", Message: "Lookup value cannot be empty"},
		}},
		{TypeIf, ampscript.Config{"condition": ""}, []ampscript.ValidationError{
			{Field: "condition", Message: "Condition cannot be empty"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			def, _ := reg.Lookup(tc.typ)
			if diff := cmp.Diff(tc.want, def.Validate(tc.cfg)); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompile_LookupPipeline(t *testing.T) {
	res := NewCompiler().Compile([]ampscript.Block{
		block("lookup", TypeLookupRows, ampscript.Config{
			"dataExtension": "Ent.Consumers", "lookupField": "Email_Address", "lookupValue": "emailaddr", "outputVariable": "@rows",
		}),
		block("count", TypeRowCount, ampscript.Config{"rowsetVariable": "@rows", "outputVariable": "@rowCount"}),
		block("if", TypeIf, ampscript.Config{"condition": "@rowCount > 0"}),
		block("row", TypeRow, ampscript.Config{"rowsetVariable": "@rows", "rowNumber": 1.0, "outputVariable": "@row"}),
		block("field", TypeField, ampscript.Config{"rowVariable": "@row", "fieldName": "First_Name", "outputVariable": "@firstName"}),
		block("else", TypeElse, nil),
		block("fallback", TypeSet, ampscript.Config{"variable": "@greeting", "value": `"there"`}),
		block("endif", TypeEndIf, nil),
	})
	require.True(t, res.OK(), "errors: %v", res.Errors)

	want := strings.Join([]string{
		"%%[",
		`SET @rows = LookupRows("Ent.Consumers", "Email_Address", emailaddr)`,
		"SET @rowCount = RowCount(@rows)",
		"IF @rowCount > 0 THEN",
		"  SET @row = Row(@rows, 1)",
		`  SET @firstName = Field(@row, "First_Name")`,
		"ELSE",
		`  SET @greeting = "there"`,
		"ENDIF",
		"]%%",
	}, "\n")
	assert.Equal(t, want, res.AMPscript)
	assert.Len(t, res.Blocks, 8)
}

func TestCompile_Scenarios(t *testing.T) {
	c := NewCompiler()
	setBlock := func(id, v string, val any) ampscript.Block {
		return block(id, TypeSet, ampscript.Config{"variable": v, "value": val})
	}

	res := c.Compile([]ampscript.Block{setBlock("1", "@firstName", "FirstName")})
	assert.Equal(t, "%%[\nSET @firstName = FirstName\n]%%", res.AMPscript)
	assert.Empty(t, res.Errors)

	res = c.Compile([]ampscript.Block{
		block("1", TypeIf, ampscript.Config{"condition": "@rowCount > 0"}),
		setBlock("2", "@x", "1"),
		block("3", TypeEndIf, nil),
	})
	assert.Equal(t, "%%[\nIF @rowCount > 0 THEN\n  SET @x = 1\nENDIF\n]%%", res.AMPscript)

	res = c.Compile([]ampscript.Block{block("1", TypeEndIf, nil)})
	assert.Empty(t, res.AMPscript)
	assert.Equal(t, []ampscript.ValidationError{{BlockID: "1", Message: "ENDIF without matching IF"}}, res.Errors)

	res = c.Compile([]ampscript.Block{setBlock("1", "@a", "1"), setBlock("2", "@a", "2")})
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "@a")

	res = c.Compile([]ampscript.Block{})
	assert.Equal(t, []ampscript.ValidationError{{Message: "Canvas contains no blocks"}}, res.Errors)

	res = c.Compile([]ampscript.Block{
		block("1", TypeIf, ampscript.Config{"condition": "@x>0"}),
		block("2", TypeElse, nil),
		block("3", TypeElse, nil),
		block("4", TypeEndIf, nil),
	})
	assert.Equal(t, []ampscript.ValidationError{{BlockID: "3", Message: "Multiple ELSE blocks for the same IF"}}, res.Errors)
}

func TestCompileRaw_NumericStrings(t *testing.T) {
	res := NewCompiler(ampscript.WithFormat(ampscript.FormatFlat)).CompileRaw([]ampscript.Block{
		block("1", TypeRow, ampscript.Config{"rowsetVariable": "@rows", "rowNumber": "2", "outputVariable": "@row"}),
	})
	require.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, "%%[\nSET @row = Row(@rows, 2)\n]%%", res.AMPscript)
}

func TestCompileRaw_BadRowNumberReportedOnce(t *testing.T) {
	res := NewCompiler().CompileRaw([]ampscript.Block{
		block("1", TypeRow, ampscript.Config{"rowsetVariable": "@rows", "rowNumber": "first", "outputVariable": "@row"}),
	})
	assert.Equal(t, []ampscript.ValidationError{
		{BlockID: "1", Field: "rowNumber", Message: "Row Number must be a number"},
	}, res.Errors)
}
