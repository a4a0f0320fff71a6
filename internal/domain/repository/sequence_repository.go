package repository

import "context"

// SequenceRepository hands out document numbers. Next must run inside the
// transaction that commits the numbered document so gaps never appear.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (string, error)
}
