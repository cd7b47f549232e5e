package ledger

import "errors"

// Ledger domain errors
var (
	ErrLedgerNotFound = errors.New("daily ledger row not found")
)
