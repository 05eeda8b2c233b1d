package memory

import "github.com/secmon-lab/themis/pkg/domain/interfaces"

// Backend-agnostic sentinels re-exported for call sites within this package.
var (
	ErrNotFound             = interfaces.ErrNotFound
	ErrDuplicateAssociation = interfaces.ErrDuplicateAssociation
	ErrDuplicateName        = interfaces.ErrDuplicateName
)
