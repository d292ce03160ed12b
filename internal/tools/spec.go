// Package tools defines the fixed tool catalog the assistant may call and
// the dispatcher that executes calls against the task store.
package tools

import (
	"github.com/cloudwego/eino/schema"
)

// ToolSpec describes a single callable operation: pure data, converted to an
// eino ToolInfo for the completion call.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]ParamSpec
}

// ParamSpec describes one named parameter of a tool.
type ParamSpec struct {
	Type        string
	Description string
	Required    bool
	Enum        []string
}

// ToolInfo converts the manifest to eino's schema for model registration.
func (s *ToolSpec) ToolInfo() *schema.ToolInfo {
	info := &schema.ToolInfo{
		Name: s.Name,
		Desc: s.Description,
	}

	if len(s.Parameters) > 0 {
		params := make(map[string]*schema.ParameterInfo, len(s.Parameters))
		for name, p := range s.Parameters {
			params[name] = &schema.ParameterInfo{
				Type:     paramTypeToDataType(p.Type),
				Desc:     p.Description,
				Required: p.Required,
				Enum:     p.Enum,
			}
		}
		info.ParamsOneOf = schema.NewParamsOneOfByParams(params)
	}

	return info
}

// paramTypeToDataType maps string type names to eino DataType constants.
func paramTypeToDataType(t string) schema.DataType {
	switch t {
	case "string":
		return schema.String
	case "number":
		return schema.Number
	case "integer":
		return schema.Integer
	case "boolean":
		return schema.Boolean
	case "array":
		return schema.Array
	case "object":
		return schema.Object
	default:
		return schema.String
	}
}
