package llm

import (
	"encoding/json"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// Schema is the subset of JSON Schema used to constrain model output.
// It marshals to plain JSON Schema for OpenAI and converts to *genai.Schema
// for Gemini.
type Schema struct {
	Type                 string             `json:"type"`
	Description          string             `json:"description,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty"`
	MinItems             *int64             `json:"minItems,omitempty"`
	MaxItems             *int64             `json:"maxItems,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
}

// Object builds an object schema; every property listed in required must exist.
func Object(props map[string]*Schema, required ...string) *Schema {
	closed := false
	return &Schema{Type: "object", Properties: props, Required: required, AdditionalProperties: &closed}
}

func String(desc string) *Schema { return &Schema{Type: "string", Description: desc} }

func Enum(desc string, values ...string) *Schema {
	return &Schema{Type: "string", Description: desc, Enum: values}
}

// Integer builds an integer schema bounded to [lo, hi].
func Integer(desc string, lo, hi float64) *Schema {
	return &Schema{Type: "integer", Description: desc, Minimum: &lo, Maximum: &hi}
}

// Array builds an array schema; negative bounds are left unset.
func Array(items *Schema, minItems, maxItems int64) *Schema {
	s := &Schema{Type: "array", Items: items}
	if minItems >= 0 {
		s.MinItems = &minItems
	}
	if maxItems >= 0 {
		s.MaxItems = &maxItems
	}
	return s
}

// JSON renders the schema for providers that accept raw JSON Schema.
func (s *Schema) JSON() (json.RawMessage, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// StrictCompatible reports whether the schema meets OpenAI's strict
// structured-output rules: every object is closed and requires all of its
// properties.
func (s *Schema) StrictCompatible() bool {
	if s == nil {
		return true
	}
	if s.Type == "object" {
		if s.AdditionalProperties == nil || *s.AdditionalProperties {
			return false
		}
		if len(s.Required) != len(s.Properties) {
			return false
		}
		for name, p := range s.Properties {
			if !contains(s.Required, name) || !p.StrictCompatible() {
				return false
			}
		}
	}
	return s.Items.StrictCompatible()
}

// Genai converts the schema into Gemini's schema type. Gemini rejects
// additionalProperties, so it is dropped.
func (s *Schema) Genai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		MinItems:    s.MinItems,
		MaxItems:    s.MaxItems,
		Items:       s.Items.Genai(),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = p.Genai()
		}
		// Required fields first, the rest alphabetically.
		var extra []string
		for name := range s.Properties {
			if !contains(s.Required, name) {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		out.PropertyOrdering = append(append([]string(nil), s.Required...), extra...)
	}
	return out
}

func genaiType(t string) genai.Type {
	switch strings.ToLower(t) {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
