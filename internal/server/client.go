package server

// Client is the line-oriented connection a creation session talks through.
type Client interface {
	// ReadLine blocks until a non-empty line is received (without newline).
	ReadLine() (string, error)

	// WriteLine sends one reply as a single message.
	WriteLine(message string) error

	Close() error

	// RemoteAddr returns the client's address for logging.
	RemoteAddr() string
}
