package driven

// IDGenerator produces random identifiers for the uuid and nanoid
// mapping functions. It is the only non-deterministic capability the
// expression evaluator depends on; injecting it keeps the evaluator
// otherwise pure and testable.
type IDGenerator interface {
	// UUID returns a random UUID string.
	UUID() string

	// NanoID returns a URL-safe random identifier of the given length.
	NanoID(length int) (string, error)
}
