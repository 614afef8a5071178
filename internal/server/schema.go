// internal/server/schema.go
package server

import (
	"reflect"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
)

// newTool describes a tool whose arguments decode into params. Properties
// come from the json and description tags; fields without omitempty are
// required.
func newTool(name, description string, params interface{}) *protocol.Tool {
	return &protocol.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema(reflect.TypeOf(params)),
	}
}

func inputSchema(t reflect.Type) protocol.InputSchema {
	schema := protocol.InputSchema{
		Type:       protocol.Object,
		Properties: map[string]interface{}{},
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return schema
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" || !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}

		prop := map[string]interface{}{"type": jsonType(field.Type)}
		if desc := field.Tag.Get("description"); desc != "" {
			prop["description"] = desc
		}
		schema.Properties[name] = prop

		if !strings.Contains(opts, "omitempty") {
			schema.Required = append(schema.Required, name)
		}
	}
	return schema
}

func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
