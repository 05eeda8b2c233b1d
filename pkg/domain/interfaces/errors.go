package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by all repository backends
var (
	ErrNotFound             = goerr.New("record not found")
	ErrDuplicateAssociation = goerr.New("control is already associated with this boundary")
	ErrDuplicateName        = goerr.New("name already exists")
)
