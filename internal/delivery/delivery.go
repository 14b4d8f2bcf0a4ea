// Package delivery defines the contract every transport adapter fulfills.
package delivery

import "context"

// Delivery is a long-running transport serving the application until the
// context is canceled or the server is shut down.
type Delivery interface {
	Serve(ctx context.Context) error
}
