// Package dispatcher defines the boundary between flow tasks and a remote
// management endpoint. Operations address a resource, name an action and
// carry parameters; a composite groups several operations into one opaque
// step that succeeds or fails as a whole.
//
// Read and Write adapt dispatcher calls to flow tasks so that a flow can
// chain remote reads and writes through the shared execution.Context.
package dispatcher
