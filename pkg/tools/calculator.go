package tools

import (
	"fmt"
	"strconv"

	"github.com/soypete/funcchat/pkg/llm"
)

// Calculator performs basic arithmetic. It is the demonstration handler:
// two operands and an operation symbol in, a result sentence out.
type Calculator struct{}

// NewCalculator creates the calculator handler.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Name returns the handler name.
func (c *Calculator) Name() string {
	return "calculate"
}

// Description returns the handler description.
func (c *Calculator) Description() string {
	return "Calculator tool that performs basic arithmetic operations"
}

// Schema returns the parameter schema.
func (c *Calculator) Schema() llm.ToolFunctionParameters {
	return llm.ToolFunctionParameters{
		Type: "object",
		Properties: map[string]interface{}{
			"a": map[string]interface{}{
				"type":        "number",
				"description": "First number",
			},
			"b": map[string]interface{}{
				"type":        "number",
				"description": "Second number",
			},
			"operation": map[string]interface{}{
				"type":        "string",
				"description": "Operation to perform (+, -, *, /)",
				"enum":        []string{"+", "-", "*", "/"},
			},
		},
		Required: []string{"a", "b", "operation"},
	}
}

// Execute performs the calculation. Malformed input and domain errors are
// returned as "Error: " text, never raised.
func (c *Calculator) Execute(params map[string]interface{}) string {
	a, aOK := params["a"].(float64)
	b, bOK := params["b"].(float64)
	op, opOK := params["operation"].(string)
	if !aOK || !bOK || !opOK {
		return "Error: Invalid parameters for calculation"
	}

	var result float64
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return "Error: Division by zero"
		}
		result = a / b
	default:
		return fmt.Sprintf("Error: Unknown operation '%s'", op)
	}

	return fmt.Sprintf("The result of %s %s %s is %s",
		formatNumber(a), op, formatNumber(b), formatNumber(result))
}

// formatNumber renders a float without a trailing ".0" for whole values.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
