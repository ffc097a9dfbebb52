package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns the JSON Schema describing schema documents, for
// editor completion and validation of hand-written files.
func JSONSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	s := reflector.Reflect(&Document{})
	s.Version = "https://json-schema.org/draft/2020-12/schema"
	s.Title = "xdrkit schema document"
	s.Description = "Enum and struct definitions loaded into an XDR type registry"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}
	return data, nil
}
