package pyebwa

import "github.com/pyebwa/pyebwa/types"

// Re-export common types for convenience so users don't have to import types package.

// Entity is re-exported from types package.
type Entity = types.Entity

// BasisPoints is re-exported from types package.
type BasisPoints = types.BasisPoints

// Re-export Entity constructor
var NewEntity = types.NewEntity
