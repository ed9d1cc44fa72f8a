package prompts

// Default system prompt. {{.ToolsSection}} is replaced with the rendered
// capability list and marker grammar for the active registry.
const defaultSystemPrompt = `You are a helpful assistant with access to local functions.

{{.ToolsSection}}`
