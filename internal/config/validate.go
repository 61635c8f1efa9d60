package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SyntaxError reports a config file that is not well-formed YAML.
type SyntaxError struct {
	Path   string
	Line   int
	Column int
	Reason string
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
}

// FieldError reports a configuration value that violates its constraints.
// Field uses the dotted key form, e.g. "commit.types[1].type".
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

var yamlPosition = regexp.MustCompile(`line (\d+)(?:[:,] column (\d+))?`)

// CheckYAMLSyntax parses path as a YAML node tree. Missing and blank files pass.
func CheckYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &SyntaxError{Path: path, Reason: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return &SyntaxError{Path: path, Reason: strings.Join(typeErr.Errors, "; ")}
		}
		return yamlSyntaxError(path, err.Error())
	}
	return nil
}

// yamlSyntaxError pulls the position out of a yaml.v3 message such as
// "yaml: line 3: did not find expected key".
func yamlSyntaxError(path, msg string) *SyntaxError {
	se := &SyntaxError{Path: path, Reason: strings.TrimPrefix(msg, "yaml: ")}
	if m := yamlPosition.FindStringSubmatchIndex(msg); m != nil {
		se.Line, _ = strconv.Atoi(msg[m[2]:m[3]])
		if m[4] >= 0 {
			se.Column, _ = strconv.Atoi(msg[m[4]:m[5]])
		}
		if rest := strings.TrimPrefix(msg[m[1]:], ":"); strings.TrimSpace(rest) != "" {
			se.Reason = strings.TrimSpace(rest)
		}
	}
	return se
}

var structValidator = newStructValidator()

// newStructValidator reports fields by their koanf key instead of the Go name.
func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// CheckValues validates the merged configuration. All violations are
// returned joined, in struct order.
func CheckValues(cfg *Configuration) error {
	var errs []error

	if err := structValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &FieldError{
				Field:  fieldPath(fe.Namespace()),
				Reason: describeViolation(fe),
			})
		}
	}

	seen := make(map[string]struct{}, len(cfg.Commit.Types))
	for i, t := range cfg.Commit.Types {
		if _, dup := seen[t.Type]; dup && t.Type != "" {
			errs = append(errs, &FieldError{
				Field:  fmt.Sprintf("commit.types[%d].type", i),
				Reason: fmt.Sprintf("repeats commit type %q", t.Type),
			})
		}
		seen[t.Type] = struct{}{}
	}

	return errors.Join(errs...)
}

func describeViolation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be set"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "lowercase", "alpha":
		return "must contain only lowercase letters"
	default:
		return "fails the " + fe.Tag() + " check"
	}
}

// fieldPath drops the root struct name from a validator namespace:
// "Configuration.commit.types[0].type" becomes "commit.types[0].type".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
