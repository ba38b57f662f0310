// Package delivery defines the contract shared by all transport entry points.
package delivery

import "context"

// Delivery is implemented by every transport server the application can run.
type Delivery interface {
	// Serve blocks until the server stops or ctx is cancelled.
	Serve(ctx context.Context) error
}
