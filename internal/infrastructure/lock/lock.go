// Package lock serialises writers per product, party and cash account before
// they open a database transaction.
package lock

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// KeyLocker acquires a set of keys and returns a function that releases them
type KeyLocker interface {
	Lock(ctx context.Context, keys ...string) (release func(), err error)
}

// ProductKey returns the lock key for a product
func ProductKey(id uuid.UUID) string {
	return "product:" + id.String()
}

// PartyKey returns the lock key for a party
func PartyKey(id uuid.UUID) string {
	return "party:" + id.String()
}

// AccountKey returns the lock key for a cash account
func AccountKey(id uuid.UUID) string {
	return "account:" + id.String()
}

// normalize drops empty and duplicate keys and sorts the rest so every caller
// acquires overlapping key sets in the same order.
func normalize(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
