// Package delivery defines the contract every transport adapter satisfies.
package delivery

import "context"

// Delivery is a long-running transport serving the application, started by the
// composition root and stopped through its lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
