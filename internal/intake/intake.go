// Package intake reads business and cockpit inputs from YAML or JSON and
// checks them against a schema derived from the input types before decoding.
package intake

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leak-calc/internal/model"
)

// Format is an input document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("intake: unsupported file type %q", filepath.Ext(path))
	}
}

// IsInputFile reports whether a file name has a supported input extension.
func IsInputFile(name string) bool {
	_, err := FormatOf(name)
	return err == nil
}

// DecodeBusiness validates and decodes a business input document.
func DecodeBusiness(data []byte, f Format) (*model.BusinessInput, error) {
	var in model.BusinessInput
	if err := decode(data, f, businessSchema, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// DecodeCockpit validates and decodes a cockpit input document.
func DecodeCockpit(data []byte, f Format) (*model.CockpitInput, error) {
	var in model.CockpitInput
	if err := decode(data, f, cockpitSchema, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// DecodeExposure validates and decodes a raw exposure request.
func DecodeExposure(data []byte, f Format) (*ExposureRequest, error) {
	var in ExposureRequest
	if err := decode(data, f, exposureSchema, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// LoadBusiness reads a business input file.
func LoadBusiness(path string) (*model.BusinessInput, error) {
	data, f, err := read(path)
	if err != nil {
		return nil, err
	}
	in, err := DecodeBusiness(data, f)
	if err != nil {
		return nil, eris.Wrapf(err, "intake: %s", path)
	}
	return in, nil
}

// LoadCockpit reads a cockpit input file.
func LoadCockpit(path string) (*model.CockpitInput, error) {
	data, f, err := read(path)
	if err != nil {
		return nil, err
	}
	in, err := DecodeCockpit(data, f)
	if err != nil {
		return nil, eris.Wrapf(err, "intake: %s", path)
	}
	return in, nil
}

func read(path string) ([]byte, Format, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", eris.Wrapf(err, "intake: read %s", path)
	}
	return data, f, nil
}

// decode parses data generically, validates it, then decodes into out.
func decode(data []byte, f Format, schema *gojsonschema.Schema, out any) error {
	var doc map[string]any
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return &ValidationError{Problems: []string{"malformed JSON: " + err.Error()}}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return &ValidationError{Problems: []string{"malformed YAML: " + err.Error()}}
		}
	default:
		return eris.Errorf("intake: unsupported format %q", f)
	}
	if doc == nil {
		return &ValidationError{Problems: []string{"document must be an object"}}
	}

	if err := validate(schema, doc); err != nil {
		return err
	}

	var err error
	if f == FormatJSON {
		err = json.Unmarshal(data, out)
	} else {
		err = yaml.Unmarshal(data, out)
	}
	if err != nil {
		return eris.Wrap(err, "intake: decode")
	}
	return nil
}
