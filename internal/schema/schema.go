// Package schema declares the shape of acceptable tool input and rejects
// anything else before a single byte goes over the wire. Each tool owns a
// Shape built from tagged field descriptors; one interpreter walks them all.
package schema

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/diegofornalha/flow-mcp/internal/errors"
)

// Shared wire patterns for Ethereum-compatible JSON-RPC values
var (
	// Address matches a 20-byte hex address
	Address = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	// Hash matches a 32-byte hex hash or topic
	Hash = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
	// HexData matches 0x-prefixed data, empty payload allowed
	HexData = regexp.MustCompile(`^0x[a-fA-F0-9]*$`)
	// HexDataNonEmpty matches 0x-prefixed data with at least one nibble
	HexDataNonEmpty = regexp.MustCompile(`^0x[a-fA-F0-9]+$`)
	// Quantity matches a 0x-prefixed hex number
	Quantity = regexp.MustCompile(`^0x[a-fA-F0-9]+$`)
	// BlockParameter matches a block tag or a hex block number
	BlockParameter = regexp.MustCompile(`^(latest|earliest|pending|0x[a-fA-F0-9]+)$`)
)

// FieldType selects the validation rule applied to a field value
type FieldType int

const (
	// TypeString is a plain string, optionally pattern-constrained
	TypeString FieldType = iota
	// TypeObject is a nested object validated field-by-field
	TypeObject
	// TypeStringOrArray accepts a single string or an array of strings,
	// each checked against the same pattern
	TypeStringOrArray
	// TypeTopics is a log-filter topics array: entries may be a string,
	// null (wildcard), or an array of strings (OR at that position)
	TypeTopics
)

// Field describes one acceptable input field
type Field struct {
	Name        string
	Description string
	Type        FieldType
	Required    bool
	Pattern     *regexp.Regexp
	// Constraint names the pattern in validation messages and is surfaced
	// to callers, e.g. "a 20-byte hex address"
	Constraint string
	Default    interface{}
	// Fields holds the sub-fields of a TypeObject field
	Fields []Field
}

// Shape is the declared input shape of one tool
type Shape struct {
	fields []Field
}

// Object builds a Shape from field descriptors
func Object(fields ...Field) *Shape {
	return &Shape{fields: fields}
}

// Validate checks an argument bundle against the shape. It returns a new
// bundle containing only declared fields with defaults applied, or a
// validation error naming the violated constraint. No I/O happens here.
func (s *Shape) Validate(args map[string]interface{}) (map[string]interface{}, error) {
	if args == nil {
		args = map[string]interface{}{}
	}

	out := make(map[string]interface{}, len(s.fields))
	for _, field := range s.fields {
		value, present := args[field.Name]
		if !present || value == nil {
			if field.Default != nil {
				out[field.Name] = field.Default
				continue
			}
			if field.Required {
				return nil, errors.ValidationError("validate", fmt.Sprintf("missing required field %q", field.Name))
			}
			continue
		}

		validated, err := validateValue(field, value)
		if err != nil {
			return nil, err
		}
		out[field.Name] = validated
	}

	return out, nil
}

func validateValue(field Field, value interface{}) (interface{}, error) {
	switch field.Type {
	case TypeString:
		return validateString(field, value)

	case TypeObject:
		nested, ok := value.(map[string]interface{})
		if !ok {
			return nil, errors.ValidationError("validate", fmt.Sprintf("field %q must be an object", field.Name))
		}
		return Object(field.Fields...).Validate(nested)

	case TypeStringOrArray:
		if _, ok := value.(string); ok {
			return validateString(field, value)
		}
		entries, ok := value.([]interface{})
		if !ok {
			return nil, errors.ValidationError("validate",
				fmt.Sprintf("field %q must be %s or an array of them", field.Name, field.Constraint))
		}
		for i, entry := range entries {
			if _, err := validateString(field, entry); err != nil {
				return nil, errors.ValidationError("validate",
					fmt.Sprintf("field %q entry %d must be %s", field.Name, i, field.Constraint))
			}
		}
		return entries, nil

	case TypeTopics:
		entries, ok := value.([]interface{})
		if !ok {
			return nil, errors.ValidationError("validate", fmt.Sprintf("field %q must be an array", field.Name))
		}
		for i, entry := range entries {
			if entry == nil {
				// null is a positional wildcard
				continue
			}
			if _, ok := entry.(string); ok {
				if _, err := validateString(field, entry); err != nil {
					return nil, errors.ValidationError("validate",
						fmt.Sprintf("field %q entry %d must be %s or null", field.Name, i, field.Constraint))
				}
				continue
			}
			alternatives, ok := entry.([]interface{})
			if !ok {
				return nil, errors.ValidationError("validate",
					fmt.Sprintf("field %q entry %d must be %s, null, or an array of them", field.Name, i, field.Constraint))
			}
			for j, alt := range alternatives {
				if _, err := validateString(field, alt); err != nil {
					return nil, errors.ValidationError("validate",
						fmt.Sprintf("field %q entry %d alternative %d must be %s", field.Name, i, j, field.Constraint))
				}
			}
		}
		return entries, nil
	}

	return nil, errors.ValidationError("validate", fmt.Sprintf("field %q has an unknown field type", field.Name))
}

func validateString(field Field, value interface{}) (interface{}, error) {
	str, ok := value.(string)
	if !ok {
		return nil, errors.ValidationError("validate", fmt.Sprintf("field %q must be a string", field.Name))
	}
	if field.Pattern != nil && !field.Pattern.MatchString(str) {
		constraint := field.Constraint
		if constraint == "" {
			constraint = fmt.Sprintf("a string matching %s", field.Pattern.String())
		}
		return nil, errors.ValidationError("validate", fmt.Sprintf("field %q must be %s, got %q", field.Name, constraint, str))
	}
	return str, nil
}

// JSONSchema renders the shape as the JSON schema advertised to MCP clients
func (s *Shape) JSONSchema() json.RawMessage {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": s.properties(),
	}
	if required := s.required(); len(required) > 0 {
		schema["required"] = required
	}

	data, err := json.Marshal(schema)
	if err != nil {
		// Shapes are static data built at startup; a marshal failure here
		// is a programming error.
		panic(fmt.Sprintf("schema: failed to marshal JSON schema: %v", err))
	}
	return data
}

func (s *Shape) properties() map[string]interface{} {
	props := make(map[string]interface{}, len(s.fields))
	for _, field := range s.fields {
		props[field.Name] = propertySchema(field)
	}
	return props
}

func (s *Shape) required() []string {
	var required []string
	for _, field := range s.fields {
		if field.Required {
			required = append(required, field.Name)
		}
	}
	return required
}

func propertySchema(field Field) map[string]interface{} {
	switch field.Type {
	case TypeObject:
		nested := Object(field.Fields...)
		prop := map[string]interface{}{
			"type":        "object",
			"properties":  nested.properties(),
			"description": field.Description,
		}
		if required := nested.required(); len(required) > 0 {
			prop["required"] = required
		}
		return prop

	case TypeStringOrArray:
		entry := stringSchema(field)
		return map[string]interface{}{
			"description": field.Description,
			"oneOf": []interface{}{
				entry,
				map[string]interface{}{"type": "array", "items": entry},
			},
		}

	case TypeTopics:
		entry := stringSchema(field)
		return map[string]interface{}{
			"type":        "array",
			"description": field.Description,
			"items": map[string]interface{}{
				"oneOf": []interface{}{
					entry,
					map[string]interface{}{"type": "null"},
					map[string]interface{}{"type": "array", "items": entry},
				},
			},
		}
	}

	prop := stringSchema(field)
	prop["description"] = field.Description
	if field.Default != nil {
		prop["default"] = field.Default
	}
	return prop
}

func stringSchema(field Field) map[string]interface{} {
	prop := map[string]interface{}{"type": "string"}
	if field.Pattern != nil {
		prop["pattern"] = field.Pattern.String()
	}
	return prop
}
