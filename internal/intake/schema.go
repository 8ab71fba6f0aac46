package intake

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"

	"github.com/sells-group/leak-calc/internal/model"
)

// ExposureRequest is the body of a raw exposure calculation.
type ExposureRequest struct {
	InquiriesWeekly float64 `json:"inquiries_weekly" yaml:"inquiries_weekly"`
	MissedPer10     float64 `json:"missed_per_10" yaml:"missed_per_10"`
	AvgTicket       float64 `json:"avg_ticket" yaml:"avg_ticket"`
	CloseRate       float64 `json:"close_rate" yaml:"close_rate"`
}

// Compiled schemas, derived from the json tags of each input type. Every
// field is optional and nullable; values must match the Go type and unknown
// keys are rejected.
var (
	businessSchema = mustSchema(model.BusinessInput{})
	cockpitSchema  = mustSchema(model.CockpitInput{})
	exposureSchema = mustSchema(ExposureRequest{})
)

// ValidationError lists every schema violation in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "intake: invalid input: " + strings.Join(e.Problems, "; ")
}

// AsValidation returns the ValidationError inside err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// SchemaFor returns the JSON schema document for an input value, as a map.
// Every field also accepts null, which decodes to the zero value.
func SchemaFor(v any) map[string]any {
	t := reflect.TypeOf(v)
	props := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		props[name] = map[string]any{"type": []any{jsonType(f.Type.Kind()), "null"}}
	}
	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func jsonType(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return "number"
	}
}

func mustSchema(v any) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(SchemaFor(v)))
	if err != nil {
		panic(eris.Wrapf(err, "intake: compile schema for %T", v))
	}
	return s
}

// validate checks a decoded document against a compiled schema.
func validate(schema *gojsonschema.Schema, doc any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return eris.Wrap(err, "intake: schema validation")
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}
