// Package contact validates and stores the messages sent with the website contact form.
package contact

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://unobits.com/schemas/contact.json"

const DefaultTopic = "other"

// Submission is a validated contact form message
type Submission struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Topic     string    `json:"topic"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrMalformedSubmission is returned when the submission is not valid JSON
var ErrMalformedSubmission = errors.New("contact submission is not valid JSON")

// ValidationError lists the fields that did not pass schema validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid contact submission"
	}
	return fmt.Sprintf("invalid contact submission: %s", strings.Join(e.Fields, ", "))
}

// UserMessage returns a message suitable for showing next to the form
func (e *ValidationError) UserMessage() string {
	if len(e.Fields) == 0 {
		return "Please check your message and try again."
	}
	return fmt.Sprintf("Please check the following fields: %s.", strings.Join(e.Fields, ", "))
}

// Validator checks submissions against the contact form JSON schema
type Validator struct {
	schema *jsonschema.Schema
	now    func() time.Time
}

func NewValidator() (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("contact schema is not valid JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()

	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add contact schema: %w", err)
	}

	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON Schema format: %w", err)
	}

	return &Validator{schema: schema, now: time.Now}, nil
}

// Validate checks a JSON encoded submission and returns it with a new ID.
// Leading and trailing whitespace is removed from all values before validation.
func (v *Validator) Validate(raw []byte) (*Submission, error) {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrMalformedSubmission
	}

	fields, ok := instance.(map[string]any)
	if ok {
		for key, value := range fields {
			if s, isString := value.(string); isString {
				fields[key] = strings.TrimSpace(s)
			}
		}
	}

	if err := v.schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, &ValidationError{Fields: invalidFields(ve)}
		}
		return nil, fmt.Errorf("contact schema validation failed: %w", err)
	}

	s := &Submission{
		ID:        uuid.New(),
		Name:      stringField(fields, "name"),
		Email:     strings.ToLower(stringField(fields, "email")),
		Company:   stringField(fields, "company"),
		Topic:     stringField(fields, "topic"),
		Message:   stringField(fields, "message"),
		CreatedAt: v.now().UTC(),
	}
	if s.Topic == "" {
		s.Topic = DefaultTopic
	}
	return s, nil
}

// invalidFields returns the sorted names of the top level fields referenced by the leaf validation errors
func invalidFields(ve *jsonschema.ValidationError) []string {
	var fields []string

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, cause := range e.Causes {
				walk(cause)
			}
			return
		}

		switch k := e.ErrorKind.(type) {
		case *kind.Required:
			fields = append(fields, k.Missing...)
		case *kind.AdditionalProperties:
			fields = append(fields, k.Properties...)
		default:
			if len(e.InstanceLocation) > 0 {
				fields = append(fields, e.InstanceLocation[0])
			}
		}
	}
	walk(ve)

	slices.Sort(fields)
	return slices.Compact(fields)
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
