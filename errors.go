package depot

import "errors"

var (
	// ErrStoreRequired is returned by NewEngine when no store is configured.
	ErrStoreRequired = errors.New("depot: store is required")

	// ErrAmbiguousAsset is returned when an assignment names both a
	// hardware and a software asset, or neither.
	ErrAmbiguousAsset = errors.New("depot: assignment must reference exactly one asset")
)
