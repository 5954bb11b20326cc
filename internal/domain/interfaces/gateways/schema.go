package gateways

// SchemaValidator checks a decoded document against the schema of an artifact type
type SchemaValidator interface {
	// Validate returns one message per schema violation; err is set only
	// when no schema is known or the schema itself is broken
	Validate(schema string, document interface{}) ([]string, error)
}
