package ir

// Version constants for the container format and the tool.
const (
	// FormatVersion identifies the container layout written by this tool.
	// Containers are only read back by the same version that wrote them.
	FormatVersion = "harvest-sqlite/1"

	// ToolVersion is the harvest tool version.
	ToolVersion = "0.1.0"
)
