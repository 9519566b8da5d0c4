// Package blockhcl reads canvases written in HCL:
//
//	block "greet" {
//	  type   = "ampscript.set"
//	  config = { variable = "@firstName", value = "FirstName" }
//	}
//
// Block labels become block ids and blocks keep file order.
package blockhcl

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"ampscript-tools/cmd/ampc/ampscript"
)

type fileRoot struct {
	Blocks []*hclBlock `hcl:"block,block"`
}

type hclBlock struct {
	ID     string    `hcl:"id,label"`
	Type   string    `hcl:"type"`
	Config cty.Value `hcl:"config,optional"`
}

// Parse decodes an HCL canvas. filename is used in diagnostics only.
func Parse(src []byte, filename string) ([]ampscript.Block, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("phase=parse path=%s: %s", filename, diags.Error())
	}
	return decode(file.Body, filename)
}

// ParseFile reads and decodes the HCL canvas at path.
func ParseFile(path string) ([]ampscript.Block, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("phase=parse path=%s: %s", path, diags.Error())
	}
	return decode(file.Body, path)
}

func decode(body hcl.Body, filename string) ([]ampscript.Block, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("phase=decode path=%s: %s", filename, diags.Error())
	}

	blocks := make([]ampscript.Block, 0, len(root.Blocks))
	for _, hb := range root.Blocks {
		cfg, err := configFromCty(hb.Config)
		if err != nil {
			return nil, fmt.Errorf("phase=decode path=%s.%s: %w", filename, hb.ID, err)
		}
		blocks = append(blocks, ampscript.Block{ID: hb.ID, Type: hb.Type, Config: cfg})
	}
	return blocks, nil
}

func configFromCty(val cty.Value) (ampscript.Config, error) {
	if val.IsNull() {
		return ampscript.Config{}, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("config must be an object, got %s", val.Type().FriendlyName())
	}
	raw, err := ctyValueToInterface(val)
	if err != nil {
		return nil, err
	}
	return ampscript.Config(raw.(map[string]any)), nil
}

// ctyValueToInterface converts a cty value into plain Go values: strings,
// numbers, bools, maps and slices. Unknown and null values become nil.
func ctyValueToInterface(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	if val.Type().IsPrimitiveType() {
		switch val.Type() {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			return numberValue(val.AsBigFloat()), nil
		case cty.Bool:
			return val.True(), nil
		default:
			return nil, fmt.Errorf("unsupported primitive type: %s", val.Type().FriendlyName())
		}
	}
	if val.Type().IsObjectType() || val.Type().IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			valInterface, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = valInterface
		}
		return out, nil
	}
	if val.Type().IsTupleType() || val.Type().IsListType() || val.Type().IsSetType() {
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			valInterface, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out = append(out, valInterface)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type: %s", val.Type().FriendlyName())
}

// numberValue keeps integers as int64 or uint64 and other numbers as
// float64. A number neither can hold exactly becomes a json.Number with
// its full decimal text.
func numberValue(bf *big.Float) any {
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return i
		}
		if u, acc := bf.Uint64(); acc == big.Exact {
			return u
		}
	}
	if f, acc := bf.Float64(); acc == big.Exact {
		return f
	}
	return json.Number(bf.Text('f', -1))
}
