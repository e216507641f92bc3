package rewrite

import "fmt"

// Properties is the raw configuration mapping for one rule, as decoded
// from the configuration file.
type Properties map[string]any

// UnexpectedPropertyError reports a property key the rule does not
// recognize.
type UnexpectedPropertyError struct {
	Property string
}

func (e *UnexpectedPropertyError) Error() string {
	return fmt.Sprintf("unexpected field '%s'", e.Property)
}

// MissingPropertyError reports a required property that was not supplied.
type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("missing required field '%s'", e.Property)
}

// PropertyTypeError reports a property value of the wrong type.
type PropertyTypeError struct {
	Property string
	Expected string
}

func (e *PropertyTypeError) Error() string {
	return fmt.Sprintf("unexpected type for field '%s': expected %s", e.Property, e.Expected)
}

// StringProperty extracts a string-typed property value.
func StringProperty(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &PropertyTypeError{Property: key, Expected: "string"}
	}
	return s, nil
}

// BoolProperty extracts a boolean-typed property value.
func BoolProperty(key string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, &PropertyTypeError{Property: key, Expected: "boolean"}
	}
	return b, nil
}

// StringListProperty extracts a list-of-strings property value. YAML
// decoding produces []any, so both shapes are accepted.
func StringListProperty(key string, value any) ([]string, error) {
	switch list := value.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &PropertyTypeError{Property: key, Expected: "list of strings"}
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, &PropertyTypeError{Property: key, Expected: "list of strings"}
}

// VerifyNoProperties fails when any property is present. Used by rules
// that accept no configuration.
func VerifyNoProperties(properties Properties) error {
	for key := range properties {
		return &UnexpectedPropertyError{Property: key}
	}
	return nil
}

// VerifyRequiredProperties fails when any of the given keys is absent.
func VerifyRequiredProperties(properties Properties, keys ...string) error {
	for _, key := range keys {
		if _, ok := properties[key]; !ok {
			return &MissingPropertyError{Property: key}
		}
	}
	return nil
}
