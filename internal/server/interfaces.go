package server

// Server is the lifecycle contract every transport server managed by this
// package satisfies.
//
// RunServer blocks until the server stops; Shutdown releases listeners and
// in-flight resources.
type Server interface {
	// RunServer starts accepting requests and blocks until shutdown.
	RunServer()

	// Shutdown stops the server gracefully.
	Shutdown()
}
