package survey

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const pathSeparator = " > "

var oneOfParam = regexp.MustCompile(`'[^']*'|\S+`)

// Violation is one broken constraint of a submitted payload.
type Violation struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// Violations is returned by Decode when the payload does not satisfy the
// variant's schema. Entries follow the declaration order of the fields.
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, violation := range v {
		parts[i] = fmt.Sprintf("%s: %s", violation.Path, violation.Message)
	}
	return "invalid survey payload: " + strings.Join(parts, "; ")
}

// Decode turns an untyped payload into the typed answers of variant A. Keys
// that are not part of the schema are dropped. Every violated constraint is
// reported once, in the declaration order of the fields; a nil Violations
// means the answers are safe to persist.
func Decode[A Answers](v *validator.Validate, payload map[string]any) (A, Violations) {
	var answers A

	fields := make(map[string]json.RawMessage, len(payload))
	for key, value := range payload {
		raw, err := json.Marshal(value)
		if err != nil {
			return answers, Violations{{Path: "body", Message: "Payload is not valid JSON"}}
		}
		fields[key] = raw
	}

	typeViolations := map[string]Violation{}
	decodeStruct(reflect.ValueOf(&answers).Elem(), fields, nil, typeViolations)

	var schemaViolations Violations
	err := v.Struct(answers)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return answers, Violations{{Path: "body", Message: err.Error()}}
		}
		for _, fieldErr := range validationErrors {
			schemaViolations = append(schemaViolations, Violation{
				Path:    fieldPath(fieldErr),
				Message: message(fieldErr),
			})
		}
	}

	violations := orderViolations(fieldPaths(reflect.TypeOf(answers), nil), typeViolations, schemaViolations)
	if len(violations) == 0 {
		return answers, nil
	}
	return answers, violations
}

// decodeStruct unmarshals every declared field of target on its own so that a
// mistyped field never hides the fields after it. Type mismatches are recorded
// by path and the field is left at its zero value.
func decodeStruct(target reflect.Value, fields map[string]json.RawMessage, prefix []string, typeViolations map[string]Violation) {
	structType := target.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}

		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			continue
		}

		path := append(append([]string{}, prefix...), name)
		value := target.Field(i)

		nested := nestedStruct(field.Type)
		if nested == nil {
			err := json.Unmarshal(raw, value.Addr().Interface())
			if err != nil {
				value.Set(reflect.Zero(field.Type))
				typeViolations[strings.Join(path, pathSeparator)] = typeMismatch(path, field.Type, err)
			}
			continue
		}

		var children map[string]json.RawMessage
		err := json.Unmarshal(raw, &children)
		if err != nil {
			typeViolations[strings.Join(path, pathSeparator)] = typeMismatch(path, field.Type, err)
			continue
		}

		child := reflect.New(nested).Elem()
		decodeStruct(child, children, path, typeViolations)
		if field.Type.Kind() == reflect.Pointer {
			ptr := reflect.New(nested)
			ptr.Elem().Set(child)
			value.Set(ptr)
		} else {
			value.Set(child)
		}
	}
}

func typeMismatch(path []string, fieldType reflect.Type, err error) Violation {
	received := "value"
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		received = receivedType(typeErr.Value)
	}
	return Violation{
		Path:    strings.Join(path, pathSeparator),
		Message: fmt.Sprintf("Expected %s, received %s", expectedType(fieldType), received),
	}
}

// fieldPaths lists every schema path in declaration order, parents before
// their children.
func fieldPaths(structType reflect.Type, prefix []string) []string {
	var paths []string
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}

		path := append(append([]string{}, prefix...), name)
		paths = append(paths, strings.Join(path, pathSeparator))
		if nested := nestedStruct(field.Type); nested != nil {
			paths = append(paths, fieldPaths(nested, path)...)
		}
	}
	return paths
}

// orderViolations emits one entry per path in declaration order. A type
// mismatch stands in for the schema violations of the same field, since the
// rejected value never reached the validator.
func orderViolations(paths []string, typeViolations map[string]Violation, schemaViolations Violations) Violations {
	byPath := make(map[string]Violations, len(schemaViolations))
	for _, violation := range schemaViolations {
		byPath[violation.Path] = append(byPath[violation.Path], violation)
	}

	violations := Violations{}
	for _, path := range paths {
		if typeViolation, ok := typeViolations[path]; ok {
			violations = append(violations, typeViolation)
			delete(byPath, path)
			continue
		}
		violations = append(violations, byPath[path]...)
		delete(byPath, path)
	}
	for _, violation := range schemaViolations {
		if _, ok := byPath[violation.Path]; ok {
			violations = append(violations, violation)
		}
	}
	return violations
}

func nestedStruct(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		return t
	}
	return nil
}

func jsonName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fieldErr validator.FieldError) string {
	segments := strings.Split(fieldErr.Namespace(), ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	return strings.Join(segments, pathSeparator)
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "Required"
	case "oneof":
		options := oneOfParam.FindAllString(fieldErr.Param(), -1)
		for i, option := range options {
			options[i] = "'" + strings.Trim(option, "'") + "'"
		}
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(options, " | "), indirect(fieldErr.Value()))
	case "min":
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("Array must contain at least %s element(s)", fieldErr.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fieldErr.Param())
	case "max":
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("Array must contain at most %s element(s)", fieldErr.Param())
		}
		return fmt.Sprintf("Number must be less than or equal to %s", fieldErr.Param())
	}
	return fmt.Sprintf("Failed on the '%s' constraint", fieldErr.Tag())
}

func expectedType(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return t.Kind().String()
}

// receivedType normalizes json.UnmarshalTypeError.Value, which is either a
// JSON kind ("string", "bool", ...) or "number <literal>".
func receivedType(value string) string {
	kind := strings.SplitN(value, " ", 2)[0]
	if kind == "bool" {
		return "boolean"
	}
	return kind
}

func indirect(value any) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return value
	}
	return rv.Interface()
}
