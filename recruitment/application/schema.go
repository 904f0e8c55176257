package application

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/xeipuuv/gojsonschema"
)

// profileDataSchema is the shape stored in job_applications.profile_data
const profileDataSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["key", "label", "value"],
		"additionalProperties": false,
		"properties": {
			"key":   {"type": "string", "minLength": 1, "maxLength": 64},
			"label": {"type": "string", "maxLength": 255},
			"value": {"type": "string", "maxLength": 2048}
		}
	}
}`

var profileDataSchemaLoader = gojsonschema.NewStringLoader(profileDataSchema)

// ValidateProfileData checks serialized entries before they are persisted
func ValidateProfileData(entries []form.Entry) error {
	if entries == nil {
		entries = []form.Entry{}
	}

	result, err := gojsonschema.Validate(profileDataSchemaLoader, gojsonschema.NewGoLoader(entries))
	if err != nil {
		return fmt.Errorf("profile data schema: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return ErrInvalidProfileData().WithDetail("errors", strings.Join(errs, "; "))
	}

	return nil
}
