package servers

// Server defines the interface for a manageable background server.
type Server interface {
	Start() error
	Stop() error
	Name() string
}
