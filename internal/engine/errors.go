package engine

import "errors"

var (
	// ErrUnknownSymbol is returned for traffic on a symbol the engine was
	// never provisioned for. The caller must fix provisioning; there is
	// nothing to retry.
	ErrUnknownSymbol = errors.New("engine: unknown symbol")

	// ErrOrderNotFound is returned by cancels referencing an id that is not
	// resting. The order may simply have filled already.
	ErrOrderNotFound = errors.New("engine: order not found")

	// ErrUnexpectedMessageType is returned for message kinds the engine does
	// not ingest (including Execute, which is output-only).
	ErrUnexpectedMessageType = errors.New("engine: unrecognized message type")

	// ErrInvalidShares is returned for adds carrying a non-positive share
	// count. The wire format permits zero, the book does not.
	ErrInvalidShares = errors.New("engine: share count must be positive")

	// ErrInvariantViolation means the matching state is corrupt (negative
	// share count, malformed side tag). Fatal: the operation is aborted and
	// the engine must not keep matching.
	ErrInvariantViolation = errors.New("engine: matching invariant violation")
)
