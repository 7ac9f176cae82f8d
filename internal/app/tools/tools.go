package tools

// Shared helpers for capability argument handling. Arguments arrive as a
// JSON-decoded map from the model; missing or mistyped values degrade to
// empty strings and the capability decides whether that is acceptable.

func getString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// objectSchema builds the JSON schema map for a tool taking string arguments.
func objectSchema(required []string, props map[string]string) map[string]any {
	properties := make(map[string]any, len(props))
	for name, desc := range props {
		properties[name] = map[string]any{
			"type":        "string",
			"description": desc,
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// noArgsSchema is the schema for tools that take no arguments.
func noArgsSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}
