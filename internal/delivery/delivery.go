// Package delivery defines the contract every transport front-end fulfils.
package delivery

import "context"

// Delivery is a long-running transport server. Serve blocks until the server
// stops; shutdown is driven through the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
