package contract

////////////////////////////////////////////////////////////////////////////////
// Collaborator boundaries
////////////////////////////////////////////////////////////////////////////////

// BackingToken is the engine's view of the token it sells. Amounts are
// decimal strings of base units. Transfer moves tokens out of the vault.
type BackingToken interface {
	BalanceOf(addr Address) string
	Transfer(from, to Address, amount string) error
}

// PaymentRegistry answers which assets the sale accepts and at what scale.
type PaymentRegistry interface {
	IsAllowed(asset Asset) bool
	DecimalsOf(asset Asset) uint8
}

// PaymentLedger pulls payment assets from the buyer. A returned error means
// nothing moved.
type PaymentLedger interface {
	TransferFrom(asset Asset, from, to Address, amount string) error
}

// Logger receives the engine's event lines. Events are terse pipe-delimited
// records, one per state-changing fact.
type Logger interface {
	Log(msg string)
}

// NopLogger drops every event, for callers that only want the state effects.
type NopLogger struct{}

func (NopLogger) Log(string) {}
