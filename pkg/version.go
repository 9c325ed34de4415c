package ithtable

var (
	// Version of ithtable.
	Version = "v0.1.0"

	// Build timestamp.
	Build = "n/a"
)
