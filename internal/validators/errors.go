package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidOperation  = errors.New("invalid change operation")
	ErrEmptyData         = errors.New("change has no data")
	ErrMissingEntityID   = errors.New("change data has no entity id")
	ErrTableNotSynced    = errors.New("table is not synced")
	ErrInvalidIdentifier = errors.New("invalid sql identifier")
)
