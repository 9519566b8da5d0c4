package blockyaml

import (
	"encoding/json"
	"fmt"
	"strings"

	"ampscript-tools/cmd/ampc/ampscript"
	"ampscript-tools/cmd/ampc/blockrule"

	"gopkg.in/yaml.v3"
)

// Document is the Go-level representation of a parsed catalog or canvas file.
//
// Two YAML forms are supported:
//   - Mapping form (preferred): a mapping with "definitions" and "blocks" keys.
//   - Shorthand form: a bare sequence, interpreted as blocks only.
//
// JSON input is accepted as YAML.
type Document struct {
	Definitions []ampscript.Definition
	Blocks      []ampscript.Block
}

// ---- Internal YAML parsing structs ----------------------------------------

type yamlDocument struct {
	Definitions []yamlDefinition `yaml:"definitions,omitempty"`
	Blocks      []yamlBlock      `yaml:"blocks,omitempty"`
}

type yamlDefinition struct {
	Type     string `yaml:"type"`
	Label    string `yaml:"label"`
	Category string `yaml:"category"`
	Template string `yaml:"template"`
	// Settings stays a yaml.Node so mapping order survives decoding; a Go
	// map would lose it. Kind == 0 means the key was absent.
	Settings yaml.Node        `yaml:"settings,omitempty"`
	Rules    []blockrule.Rule `yaml:"rules,omitempty"`
}

type yamlSetting struct {
	Type        string   `yaml:"type"`
	Label       string   `yaml:"label"`
	Required    bool     `yaml:"required"`
	Description string   `yaml:"description"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	Options     []string `yaml:"options"`
}

type yamlBlock struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
	// Config stays a yaml.Node so numeric scalars keep their literal text.
	Config yaml.Node `yaml:"config,omitempty"`
}

// ---- Parse -----------------------------------------------------------------

// Parse parses a YAML document in either mapping or shorthand form.
func Parse(in []byte) (Document, error) {
	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	if len(docNode.Content) == 0 {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: empty YAML")
	}
	root := docNode.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		var blocks []yamlBlock
		if err := root.Decode(&blocks); err != nil {
			return Document{}, fmt.Errorf("phase=parse path=blocks: %w", err)
		}
		converted, err := convertBlocks(blocks)
		if err != nil {
			return Document{}, err
		}
		return Document{Blocks: converted}, nil

	case yaml.MappingNode:
		var yd yamlDocument
		if err := root.Decode(&yd); err != nil {
			return Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
		}
		return convertDocument(yd)

	default:
		return Document{}, fmt.Errorf("phase=parse path=<doc>: unexpected YAML root kind: %d", root.Kind)
	}
}

// ---- Convert: yaml types → ampscript types --------------------------------

func convertDocument(yd yamlDocument) (Document, error) {
	defs := make([]ampscript.Definition, 0, len(yd.Definitions))
	for i, ydef := range yd.Definitions {
		def, err := convertDefinition(ydef)
		if err != nil {
			return Document{}, fmt.Errorf("phase=parse path=definitions[%d]: %w", i, err)
		}
		defs = append(defs, def)
	}
	blocks, err := convertBlocks(yd.Blocks)
	if err != nil {
		return Document{}, err
	}
	return Document{Definitions: defs, Blocks: blocks}, nil
}

// convertDefinition builds a TemplateBlock whose validator checks the
// settings schema first and the CEL rules second.
func convertDefinition(yd yamlDefinition) (ampscript.Definition, error) {
	if strings.TrimSpace(yd.Type) == "" {
		return nil, ampscript.ErrEmptyType
	}

	category := ampscript.Category(yd.Category)
	if category == "" {
		category = ampscript.CategoryAMPscript
	}
	if !category.Valid() {
		return nil, fmt.Errorf("type %q: unknown category %q", yd.Type, yd.Category)
	}

	settings, err := convertSettings(&yd.Settings)
	if err != nil {
		return nil, fmt.Errorf("type %q: settings: %w", yd.Type, err)
	}

	label := yd.Label
	if label == "" {
		label = yd.Type
	}
	meta := ampscript.Meta{Type: yd.Type, Label: label, Category: category, Settings: settings}

	if err := ampscript.CheckTemplateTokens(meta, yd.Template); err != nil {
		return nil, err
	}

	rules, err := blockrule.Compile(yd.Rules)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", yd.Type, err)
	}

	def := ampscript.Define(meta, yd.Template, ampscript.Validators(ampscript.SchemaValidator(settings), rules))
	if err := ampscript.CheckDefinition(def); err != nil {
		return nil, err
	}
	return def, nil
}

// convertSettings walks the settings mapping in document order.
func convertSettings(node *yaml.Node) (ampscript.Settings, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping, got YAML kind %d", node.Kind)
	}

	// MappingNode.Content is a flat list of alternating key / value nodes.
	settings := make(ampscript.Settings, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value

		var ys yamlSetting
		if err := node.Content[i+1].Decode(&ys); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		kind := ampscript.FieldKind(ys.Type)
		if kind == "" {
			kind = ampscript.KindString
		}
		if !kind.Valid() {
			return nil, fmt.Errorf("%s: unknown type %q", key, ys.Type)
		}
		if kind == ampscript.KindSelect && len(ys.Options) == 0 {
			return nil, fmt.Errorf("%s: select needs options", key)
		}

		settings = append(settings, ampscript.Setting{
			Key: key,
			Field: ampscript.SettingField{
				Kind:        kind,
				Label:       ys.Label,
				Required:    ys.Required,
				Description: ys.Description,
				Min:         ys.Min,
				Max:         ys.Max,
				Options:     ys.Options,
			},
		})
	}
	return settings, nil
}

func convertBlocks(raw []yamlBlock) ([]ampscript.Block, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]ampscript.Block, len(raw))
	for i, yb := range raw {
		cfg, err := convertConfig(&yb.Config)
		if err != nil {
			return nil, fmt.Errorf("phase=parse path=blocks[%d].config: %w", i, err)
		}
		out[i] = ampscript.Block{ID: yb.ID, Type: yb.Type, Config: cfg}
	}
	return out, nil
}

// convertConfig decodes a config mapping. Integer and float scalars become
// json.Number holding the literal text, so 0123 or 1.50 reach templates
// unchanged; everything else decodes as yaml.v3 resolves it.
func convertConfig(node *yaml.Node) (ampscript.Config, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping, got YAML kind %d", node.Kind)
	}

	cfg := make(ampscript.Config, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		v, err := configValue(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		cfg[key] = v
	}
	return cfg, nil
}

func configValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!int", "!!float":
			return json.Number(n.Value), nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ---- Public build functions ------------------------------------------------

// NewRegistryFromDocuments extends base with the definitions of all provided
// documents. Returns an error if a type is already registered, either in
// base or in an earlier document.
func NewRegistryFromDocuments(base *ampscript.Registry, docs ...Document) (*ampscript.Registry, error) {
	reg := base
	for _, doc := range docs {
		for _, def := range doc.Definitions {
			next, err := reg.WithDefinition(def)
			if err != nil {
				return nil, fmt.Errorf("phase=register path=%s: %w", def.Meta().Type, err)
			}
			reg = next
		}
	}
	if reg == nil {
		reg = ampscript.MustRegistry()
	}
	return reg, nil
}

// Blocks concatenates the blocks of all documents in order and fills in
// missing ids by position.
func Blocks(docs ...Document) []ampscript.Block {
	var blocks []ampscript.Block
	for _, doc := range docs {
		blocks = append(blocks, doc.Blocks...)
	}
	ampscript.EnsureIDs(blocks)
	return blocks
}

// ParseMany parses every input in order.
func ParseMany(inputs ...[]byte) ([]Document, error) {
	docs := make([]Document, 0, len(inputs))
	for _, in := range inputs {
		doc, err := Parse(in)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
