package ampscript

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

var rowSettings = Settings{
	{Key: "rowsetVariable", Field: SettingField{Kind: KindString, Label: "Rowset Variable", Required: true}},
	{Key: "rowNumber", Field: SettingField{Kind: KindNumber, Label: "Row Number", Required: true, Min: ptr(1), Max: ptr(500)}},
	{Key: "mode", Field: SettingField{Kind: KindSelect, Label: "Mode", Options: []string{"first", "last"}}},
	{Key: "strict", Field: SettingField{Kind: KindBoolean, Label: "Strict"}},
}

func TestDecodeConfig_Coerces(t *testing.T) {
	got, errs := DecodeConfig(rowSettings, Config{
		"rowsetVariable": "@rows",
		"rowNumber":      "2",
		"mode":           "first",
		"strict":         "TRUE",
		"extra":          []any{1, 2},
	})
	require.Empty(t, errs)

	want := Config{
		"rowsetVariable": "@rows",
		"rowNumber":      2.0,
		"mode":           "first",
		"strict":         true,
		"extra":          []any{1, 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeConfig_ScalarsBecomeText(t *testing.T) {
	got, errs := DecodeConfig(Settings{
		{Key: "value", Field: SettingField{Kind: KindExpression}},
		{Key: "flag", Field: SettingField{Kind: KindString}},
	}, Config{"value": 10, "flag": false})
	require.Empty(t, errs)
	assert.Equal(t, Config{"value": "10", "flag": "false"}, got)
}

func TestDecodeConfig_NumberLiteralsKeepText(t *testing.T) {
	settings := Settings{
		{Key: "zip", Field: SettingField{Kind: KindExpression}},
		{Key: "price", Field: SettingField{Kind: KindString}},
		{Key: "row", Field: SettingField{Kind: KindNumber}},
		{Key: "mask", Field: SettingField{Kind: KindNumber}},
	}
	got, errs := DecodeConfig(settings, Config{
		"zip":   json.Number("0123"),
		"price": json.Number("1.50"),
		"row":   json.Number("2"),
		"mask":  json.Number("0x1F"),
	})
	require.Empty(t, errs)
	assert.Equal(t, Config{"zip": "0123", "price": "1.50", "row": 2.0, "mask": 31.0}, got)
}

func TestConfig_NumberAcceptsWhatFormatValueRenders(t *testing.T) {
	cases := []struct {
		name string
		v    any
		want float64
	}{
		{"int", 3, 3},
		{"uint64", uint64(7), 7},
		{"float32", float32(1.5), 1.5},
		{"json number", json.Number("2.25"), 2.25},
		{"hex json number", json.Number("0x10"), 16},
		{"numeric text", " 12 ", 12},
		{"octal text", "0o17", 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, ok := Config{"k": tc.v}.Number("k")
			require.True(t, ok)
			assert.Equal(t, tc.want, n)
		})
	}

	_, ok := Config{"k": json.Number("lots")}.Number("k")
	assert.False(t, ok)
}

func TestDecodeConfig_ReportsMismatches(t *testing.T) {
	raw := Config{
		"rowsetVariable": map[string]any{"a": 1},
		"rowNumber":      "first",
		"strict":         "yes",
	}
	got, errs := DecodeConfig(rowSettings, raw)

	assert.Equal(t, []ValidationError{
		{Field: "rowsetVariable", Message: "Rowset Variable must be a string"},
		{Field: "rowNumber", Message: "Row Number must be a number"},
		{Field: "strict", Message: "Strict must be true or false"},
	}, errs)
	assert.Equal(t, "first", got["rowNumber"], "undecodable values are kept")
}

func TestDecodeConfig_DoesNotMutateInput(t *testing.T) {
	raw := Config{"rowNumber": "3"}
	_, _ = DecodeConfig(rowSettings, raw)
	assert.Equal(t, "3", raw["rowNumber"])
}

func TestSchemaValidator(t *testing.T) {
	v := SchemaValidator(rowSettings)

	assert.Empty(t, v.Validate(Config{"rowsetVariable": "@r", "rowNumber": 1.0}))

	assert.Equal(t, []ValidationError{
		{Field: "rowsetVariable", Message: "Rowset Variable is required"},
		{Field: "rowNumber", Message: "Row Number is required"},
	}, v.Validate(Config{"rowsetVariable": "  "}))

	assert.Equal(t, []ValidationError{
		{Field: "rowNumber", Message: "Row Number must be at least 1"},
		{Field: "mode", Message: "Mode must be one of: first, last"},
		{Field: "strict", Message: "Strict must be true or false"},
	}, v.Validate(Config{"rowsetVariable": "@r", "rowNumber": 0, "mode": "middle", "strict": "nah"}))

	assert.Equal(t, []ValidationError{
		{Field: "rowNumber", Message: "Row Number must be at most 500"},
	}, v.Validate(Config{"rowsetVariable": "@r", "rowNumber": 501.5}))
}

func TestDecodeBlocks(t *testing.T) {
	reg := MustRegistry(Define(Meta{Type: "x.row", Settings: rowSettings}, "Row({{rowsetVariable}}, {{rowNumber}})", nil))

	blocks := []Block{
		{ID: "b1", Type: "x.row", Config: Config{"rowsetVariable": "@r", "rowNumber": "4"}},
		{ID: "b2", Type: "x.row", Config: Config{"rowNumber": "four"}},
		{ID: "b3", Type: "unknown", Config: Config{"rowNumber": "4"}},
	}
	out, errs := DecodeBlocks(reg, blocks)

	assert.Equal(t, 4.0, out[0].Config["rowNumber"])
	assert.Equal(t, "4", out[2].Config["rowNumber"])
	assert.Equal(t, "4", blocks[0].Config["rowNumber"], "input blocks are not modified")
	assert.Equal(t, []ValidationError{{BlockID: "b2", Field: "rowNumber", Message: "Row Number must be a number"}}, errs)
}

func TestEnsureIDs(t *testing.T) {
	blocks := []Block{{Type: "a"}, {ID: "keep", Type: "b"}, {ID: " ", Type: "c"}}
	EnsureIDs(blocks)
	assert.Equal(t, []string{"block-1", "keep", "block-3"}, []string{blocks[0].ID, blocks[1].ID, blocks[2].ID})
}
