package output

import (
	"encoding/json"
	"io"
)

// PrintJSON writes data as indented JSON. HTML characters are not escaped,
// so decoded strings print as they were on the wire.
func PrintJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}
