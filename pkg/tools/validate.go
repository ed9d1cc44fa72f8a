package tools

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateParams checks a parameter object against the handler's declared
// schema: every required parameter must be present and every present
// parameter must have the declared type.
func ValidateParams(h Handler, params map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(h.Schema())
	documentLoader := gojsonschema.NewGoLoader(params)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, e := range result.Errors() {
			msgs[i] = e.String()
		}
		return fmt.Errorf("invalid parameters: %s", strings.Join(msgs, "; "))
	}

	return nil
}
