package toolformat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/soypete/funcchat/pkg/tools"
)

// FormatToolsForPrompt generates the capability section of the system
// prompt: one block per registered handler plus the marker grammar the model
// must use to invoke one.
func FormatToolsForPrompt(registry *tools.Registry) string {
	if registry == nil || registry.Count() == 0 {
		return "No functions are available."
	}

	var sb strings.Builder
	sb.WriteString("You have access to the following functions:\n\n")

	for _, name := range registry.Names() {
		handler, _ := registry.Lookup(name)
		sb.WriteString(fmt.Sprintf("### %s\n", handler.Name()))
		sb.WriteString(fmt.Sprintf("%s\n\n", handler.Description()))

		schemaJSON, err := json.MarshalIndent(handler.Schema(), "", "  ")
		if err == nil {
			sb.WriteString(fmt.Sprintf("Parameters:\n```json\n%s\n```\n\n", schemaJSON))
		}
	}

	sb.WriteString(`When you want a function performed, respond with exactly:
<function=function_name{"param": value, ...}>

The parameters must be a JSON object matching the function's schema.
After receiving the result, provide a friendly response to the user.
`)
	return sb.String()
}
