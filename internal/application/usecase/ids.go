// Package usecase implements application operations over the layout domain.
package usecase

import "github.com/google/uuid"

// IDGenerator is a function type for generating unique IDs.
type IDGenerator func() string

// NewUUIDGenerator returns the default generator producing random UUIDs.
// Identities are generated once at creation and preserved across every
// mutation that moves rather than recreates an entity.
func NewUUIDGenerator() IDGenerator {
	return uuid.NewString
}
