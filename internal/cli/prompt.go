package cli

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	errorrules "github.com/cesbo/error-rules"
	"github.com/cesbo/error-rules/def"
)

// Variant kind choices offered by the interactive prompt.
const (
	variantKindCustom = "custom fields"
	variantKindWrap   = "wrap a source error"
)

// promptForDefinitions interactively assembles a definition file spec.
func promptForDefinitions() (def.FileSpec, error) {
	var spec def.FileSpec

	fmt.Println()
	fmt.Println("Let's define your error types:")
	fmt.Println()

	pkgPrompt := &survey.Input{
		Message: "Package name",
		Default: "app",
		Help:    "The Go package the generated file will declare",
	}
	if err := survey.AskOne(pkgPrompt, &spec.Package, survey.WithValidator(identifierValidator)); err != nil {
		return def.FileSpec{}, err
	}

	for {
		t, err := promptForType()
		if err != nil {
			return def.FileSpec{}, err
		}
		spec.Types = append(spec.Types, t)

		more := false
		if err := survey.AskOne(&survey.Confirm{Message: "Add another error type?"}, &more); err != nil {
			return def.FileSpec{}, err
		}
		if !more {
			break
		}
	}

	return spec, nil
}

// promptForType prompts for one error type and its variants.
func promptForType() (def.TypeSpec, error) {
	var t def.TypeSpec

	namePrompt := &survey.Input{
		Message: "Error type name",
		Help:    "Name of the generated Go type, e.g. AppError",
	}
	if err := survey.AskOne(namePrompt, &t.Name,
		survey.WithValidator(survey.Required),
		survey.WithValidator(identifierValidator)); err != nil {
		return def.TypeSpec{}, err
	}

	prefixPrompt := &survey.Input{
		Message: "Display prefix (optional)",
		Help:    `Prepended to every rendered message as "Prefix: "`,
	}
	if err := survey.AskOne(prefixPrompt, &t.Prefix); err != nil {
		return def.TypeSpec{}, err
	}

	for {
		v, err := promptForVariant()
		if err != nil {
			return def.TypeSpec{}, err
		}
		t.Variants = append(t.Variants, v)

		more := false
		if err := survey.AskOne(&survey.Confirm{Message: "Add another variant?", Default: true}, &more); err != nil {
			return def.TypeSpec{}, err
		}
		if !more {
			break
		}
	}

	return t, nil
}

// promptForVariant prompts for a single variant.
func promptForVariant() (def.VariantSpec, error) {
	var v def.VariantSpec

	namePrompt := &survey.Input{
		Message: "Variant name",
		Help:    "Unique within the type, e.g. IO or BadStatus",
	}
	if err := survey.AskOne(namePrompt, &v.Name,
		survey.WithValidator(survey.Required),
		survey.WithValidator(identifierValidator)); err != nil {
		return def.VariantSpec{}, err
	}

	kind := ""
	kindPrompt := &survey.Select{
		Message: "Variant kind",
		Options: []string{variantKindCustom, variantKindWrap},
		Default: variantKindCustom,
	}
	if err := survey.AskOne(kindPrompt, &kind); err != nil {
		return def.VariantSpec{}, err
	}

	if kind == variantKindWrap {
		wrapsPrompt := &survey.Input{
			Message: "Source type to wrap",
			Default: "error",
			Help:    `A type reference like "*io/fs.PathError", "error", or "mypkg.MyError"`,
		}
		if err := survey.AskOne(wrapsPrompt, &v.Wraps, survey.WithValidator(sourceValidator)); err != nil {
			return def.VariantSpec{}, err
		}

		templatePrompt := &survey.Input{
			Message: "Display template (optional)",
			Help:    `"{0}" renders the wrapped error; empty means the wrapped error alone`,
		}
		if err := survey.AskOne(templatePrompt, &v.Template); err != nil {
			return def.VariantSpec{}, err
		}
		return v, nil
	}

	fieldsInput := ""
	fieldsPrompt := &survey.Input{
		Message: "Payload fields (comma-separated types, empty for none)",
		Help:    `For example "int, string" or "*io/fs.PathError"`,
	}
	if err := survey.AskOne(fieldsPrompt, &fieldsInput, survey.WithValidator(fieldsValidator)); err != nil {
		return def.VariantSpec{}, err
	}
	v.Fields = splitFields(fieldsInput)

	templatePrompt := &survey.Input{
		Message: "Display template",
		Help:    `"{}" consumes fields in declaration order, "{N}" names a field index`,
	}
	if err := survey.AskOne(templatePrompt, &v.Template, survey.WithValidator(survey.Required)); err != nil {
		return def.VariantSpec{}, err
	}

	// "{}" markers need a refs list; consume fields in declaration order.
	if n := countPositionalMarkers(v.Template); n > 0 {
		for i := 0; i < n && i < len(v.Fields); i++ {
			v.Refs = append(v.Refs, i)
		}
	}

	return v, nil
}

// countPositionalMarkers counts "{}" markers, ignoring escaped braces.
func countPositionalMarkers(template string) int {
	s := strings.ReplaceAll(template, "{{", "")
	s = strings.ReplaceAll(s, "}}", "")
	return strings.Count(s, "{}")
}

// identifierValidator is a survey validator requiring a Go identifier.
func identifierValidator(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", val)
	}
	if !token.IsIdentifier(str) {
		return fmt.Errorf("must be a valid Go identifier")
	}
	return nil
}

// sourceValidator is a survey validator requiring a parseable source type.
func sourceValidator(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", val)
	}
	if _, err := errorrules.ParseSource(str); err != nil {
		return fmt.Errorf("invalid source type: %v", err)
	}
	return nil
}

// fieldsValidator is a survey validator for a comma-separated field list.
func fieldsValidator(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", val)
	}
	for _, f := range splitFields(str) {
		if _, err := errorrules.ParseTypeRef(f); err != nil {
			return fmt.Errorf("invalid field type %q: %v", f, err)
		}
	}
	return nil
}
