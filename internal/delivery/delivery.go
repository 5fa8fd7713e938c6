// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running transport surface, e.g. an HTTP server. Serve
// blocks until the surface stops; shutdown runs through lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
