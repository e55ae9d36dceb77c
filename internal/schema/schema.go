// Package schema validates untrusted JSON payloads against the JSON Schema
// document of each record kind before they reach the store.
package schema

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Kind names a record kind.
type Kind string

const (
	KindUser           Kind = "user"
	KindContactMessage Kind = "contact_message"
	KindSkill          Kind = "skill"
	KindProject        Kind = "project"
	KindMilestone      Kind = "milestone"
)

// Label is the human-readable name used in API messages.
func (k Kind) Label() string {
	switch k {
	case KindContactMessage:
		return "Contact message"
	case KindUser:
		return "User"
	case KindSkill:
		return "Skill"
	case KindProject:
		return "Project"
	case KindMilestone:
		return "Milestone"
	}
	return string(k)
}

// FieldError describes one malformed field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload does not satisfy its schema.
type ValidationError struct {
	Kind   Kind
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(parts, "; "))
}

// Has reports whether field has at least one error.
func (e *ValidationError) Has(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// emailFormat accepts a bare addr-spec with a dotted domain. The stock
// checker also takes display-name forms such as "Jo <jo@example.com>".
type emailFormat struct{}

func (emailFormat) IsFormat(input any) bool {
	v, ok := input.(string)
	if !ok {
		return true
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Name != "" || addr.Address != v {
		return false
	}
	at := strings.LastIndexByte(v, '@')
	domain := v[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func init() {
	gojsonschema.FormatCheckers.Add("email", emailFormat{})
}

//go:embed schemas/*.json
var documents embed.FS

type compiled struct {
	create *gojsonschema.Schema
	patch  *gojsonschema.Schema
}

var registry = mustLoad(KindUser, KindContactMessage, KindSkill, KindProject, KindMilestone)

func mustLoad(kinds ...Kind) map[Kind]compiled {
	out := make(map[Kind]compiled, len(kinds))
	for _, kind := range kinds {
		c, err := load(kind)
		if err != nil {
			panic(err)
		}
		out[kind] = c
	}
	return out
}

func load(kind Kind) (compiled, error) {
	raw, err := documents.ReadFile("schemas/" + string(kind) + ".json")
	if err != nil {
		return compiled{}, fmt.Errorf("read schema %s: %w", kind, err)
	}
	create, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return compiled{}, fmt.Errorf("compile schema %s: %w", kind, err)
	}

	// The patch schema is the create schema with nothing required.
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return compiled{}, fmt.Errorf("parse schema %s: %w", kind, err)
	}
	delete(doc, "required")
	patchRaw, err := json.Marshal(doc)
	if err != nil {
		return compiled{}, fmt.Errorf("encode patch schema %s: %w", kind, err)
	}
	patch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(patchRaw))
	if err != nil {
		return compiled{}, fmt.Errorf("compile patch schema %s: %w", kind, err)
	}
	return compiled{create: create, patch: patch}, nil
}

// Validate checks payload against the creation schema of kind and decodes it
// into dst. Validation failures are returned as *ValidationError.
func Validate(kind Kind, payload []byte, dst any) error {
	c, ok := registry[kind]
	if !ok {
		return fmt.Errorf("schema: unknown kind %q", kind)
	}
	return check(kind, c.create, payload, dst)
}

// ValidatePatch is Validate for partial updates: every field is optional but
// the fields that are present follow the same rules.
func ValidatePatch(kind Kind, payload []byte, dst any) error {
	c, ok := registry[kind]
	if !ok {
		return fmt.Errorf("schema: unknown kind %q", kind)
	}
	return check(kind, c.patch, payload, dst)
}

// Decode validates payload as a creation request of kind and returns it as T.
func Decode[T any](kind Kind, payload []byte) (T, error) {
	var out T
	err := Validate(kind, payload, &out)
	return out, err
}

// DecodePatch validates payload as a partial update of kind and returns it as T.
func DecodePatch[T any](kind Kind, payload []byte) (T, error) {
	var out T
	err := ValidatePatch(kind, payload, &out)
	return out, err
}

func check(kind Kind, s *gojsonschema.Schema, payload []byte, dst any) error {
	if !json.Valid(payload) {
		return &ValidationError{Kind: kind, Errors: []FieldError{{Field: "body", Message: "must be a valid JSON object"}}}
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("schema: validate %s: %w", kind, err)
	}
	if !res.Valid() {
		verr := &ValidationError{Kind: kind}
		for _, e := range res.Errors() {
			verr.Errors = append(verr.Errors, FieldError{Field: fieldOf(e), Message: e.Description()})
		}
		return verr
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		// Integral floats such as 5.0 pass the schema but not an int field.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return &ValidationError{Kind: kind, Errors: []FieldError{{Field: field, Message: "Invalid type. Expected: " + typeErr.Type.String()}}}
		}
		return fmt.Errorf("schema: decode %s: %w", kind, err)
	}
	return nil
}

func fieldOf(e gojsonschema.ResultError) string {
	if e.Type() == "required" {
		if p, ok := e.Details()["property"].(string); ok {
			return p
		}
	}
	field := e.Field()
	if field == "" || field == "(root)" {
		return "body"
	}
	return field
}
