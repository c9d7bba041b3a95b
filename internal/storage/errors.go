package storage

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist within the
	// caller's tenant scope.
	ErrNotFound = errors.New("entity not found")

	// ErrNotProvisioned signals that the relational backend has no table for
	// the requested collection yet. List operations swallow it and return an
	// empty result; everything else propagates it.
	ErrNotProvisioned = errors.New("tenant storage not provisioned")

	// ErrLocked is returned when editing or deleting a locked award.
	ErrLocked = errors.New("record is locked")

	// ErrInsufficientStock rejects issuing more consumable units than are in
	// stock. The operation leaves no partial state behind.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNoSeats rejects assigning a software license beyond its seat count.
	ErrNoSeats = errors.New("no license seats left")

	// ErrTenantMismatch is returned when an entity's tenant id does not match
	// the scope of the store it is written through.
	ErrTenantMismatch = errors.New("entity tenant does not match store tenant")

	// ErrConflict is returned when an optimistic transaction kept losing
	// against concurrent writers and ran out of retries.
	ErrConflict = errors.New("concurrent modification, retries exhausted")
)

// Wire error codes exchanged with the relational gateway. Structured codes,
// not message matching, drive the client-side mapping back to the sentinel
// errors above.
const (
	CodeUnknownAction     = "unknown_action"
	CodeNotFound          = "not_found"
	CodeTableNotFound     = "table_not_found"
	CodeInsufficientStock = "insufficient_stock"
	CodeRecordLocked      = "record_locked"
	CodeNoSeats           = "no_seats"
	CodeInternal          = "internal"
)

// CodeToError maps a gateway error code to its sentinel, or nil when the code
// carries no dedicated sentinel.
func CodeToError(code string) error {
	switch code {
	case CodeNotFound:
		return ErrNotFound
	case CodeTableNotFound:
		return ErrNotProvisioned
	case CodeInsufficientStock:
		return ErrInsufficientStock
	case CodeRecordLocked:
		return ErrLocked
	case CodeNoSeats:
		return ErrNoSeats
	default:
		return nil
	}
}

// ErrorToCode is the gateway-side inverse of CodeToError.
func ErrorToCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrNotProvisioned):
		return CodeTableNotFound
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrLocked):
		return CodeRecordLocked
	case errors.Is(err, ErrNoSeats):
		return CodeNoSeats
	default:
		return CodeInternal
	}
}
