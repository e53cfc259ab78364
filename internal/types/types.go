// internal/types/types.go
package types

import "github.com/google/uuid"

// Handle identifies a unit or building owned by an external collaborator.
type Handle = uuid.UUID

// NilHandle is never issued to a live entity.
var NilHandle = uuid.Nil

// NewHandle issues a fresh random handle.
func NewHandle() Handle {
	return uuid.New()
}
