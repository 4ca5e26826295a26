package meta

import "context"

// Pinger checks the connectivity of a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}
