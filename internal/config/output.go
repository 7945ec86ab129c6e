package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSONFormat writes a JSON snapshot of the position instead of text
	JSONFormat bool

	// ShowBoard prints a diagram of the position before the counts
	ShowBoard bool

	// Colour enables ANSI colours in the board diagram
	Colour bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Colour: true,
	}
}
