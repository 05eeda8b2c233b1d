package firestore

import "github.com/secmon-lab/themis/pkg/domain/interfaces"

var (
	ErrNotFound             = interfaces.ErrNotFound
	ErrDuplicateAssociation = interfaces.ErrDuplicateAssociation
	ErrDuplicateName        = interfaces.ErrDuplicateName
)
