package ampscript

// Definition is the capability a block kind must provide to be compiled.
//
// Render turns a validated config into one AMPscript statement.
// Validate returns every problem with the config; an empty result means
// the block may be rendered.
type Definition interface {
	Meta() Meta
	Template() string
	Render(cfg Config) string
	Validate(cfg Config) []ValidationError
}

// Validator checks a block config.
type Validator interface {
	Validate(cfg Config) []ValidationError
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(cfg Config) []ValidationError

// Validate calls f(cfg).
func (f ValidatorFunc) Validate(cfg Config) []ValidationError {
	return f(cfg)
}

// AlwaysValid is the validator used by definitions that declare no checks.
var AlwaysValid Validator = ValidatorFunc(func(Config) []ValidationError { return nil })

// Validators chains several validators; every validator runs and all
// errors are returned in order.
func Validators(vs ...Validator) Validator {
	return ValidatorFunc(func(cfg Config) []ValidationError {
		var errs []ValidationError
		for _, v := range vs {
			errs = append(errs, v.Validate(cfg)...)
		}
		return errs
	})
}

// TemplateBlock is the default Definition: it renders its template with
// Interpolate and delegates validation to a Validator.
type TemplateBlock struct {
	meta      Meta
	template  string
	validator Validator
}

// Define builds a TemplateBlock. A nil validator is replaced by AlwaysValid.
func Define(meta Meta, template string, v Validator) *TemplateBlock {
	if v == nil {
		v = AlwaysValid
	}
	return &TemplateBlock{meta: meta, template: template, validator: v}
}

func (d *TemplateBlock) Meta() Meta       { return d.meta }
func (d *TemplateBlock) Template() string { return d.template }

// Render interpolates the template with cfg.
func (d *TemplateBlock) Render(cfg Config) string {
	return Interpolate(d.template, cfg)
}

// Validate runs the definition's validator.
func (d *TemplateBlock) Validate(cfg Config) []ValidationError {
	return d.validator.Validate(cfg)
}
