package contract

// Address is a chain account identifier ("hive:alice", "contract:xyz-cc").
// The empty string doubles as the zero address.
type Address string

// String turns the wrapped type back into the underlying string.
func (a Address) String() string { return string(a) }

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool { return a == "" }

// Asset is the ticker of a payment asset accepted by the sale ("usdc", "usdt").
type Asset string

// String unwraps the ticker string for logs or registry calls.
func (a Asset) String() string { return string(a) }

// Env carries the per-operation execution context supplied by the host or
// runner. The engine never reads wall-clock time on its own; Now is the only
// notion of time any check sees.
type Env struct {
	Sender Address
	Now    int64 // unix seconds
	TxID   string
}

// SaleState tracks the one-shot sale lifecycle. Started and Ended each flip
// exactly once; SaleEnd is pinned to SaleStart plus the fixed window.
type SaleState struct {
	Started   bool  `json:"started"`
	Ended     bool  `json:"ended"`
	SaleStart int64 `json:"saleStart"`
	SaleEnd   int64 `json:"saleEnd"`
}

// WalletRecord aggregates a single wallet's purchases. Amounts are decimal
// strings of base units; the empty string reads as zero.
type WalletRecord struct {
	BoughtPerTier [TierCount]string `json:"boughtPerTier"`
	BoughtGlobal  string            `json:"boughtGlobal"`
	LastBuyAt     int64             `json:"lastBuyAt"`
}

// ReferralRecord holds both sides of the referral graph for one wallet:
// who referred it (set at most once, never cleared) and its own standing
// as a referrer of others.
type ReferralRecord struct {
	Referrer      Address `json:"referrer"`
	BonusReceived bool    `json:"bonusReceived"`
	CreditedCount uint8   `json:"creditedCount"`
	LastCreditAt  int64   `json:"lastCreditAt"`
}

// BonusPools keeps the two finite bonus budgets and how much of each has
// been allocated so far. Allocated counters only ever grow.
type BonusPools struct {
	LockPool      string `json:"lockPool"`
	RefPool       string `json:"refPool"`
	AllocatedLock string `json:"allocatedLock"`
	AllocatedRef  string `json:"allocatedRef"`
}

// Position is a single vesting grant. Positions are append-only; Claimed is
// the only field that ever changes after creation.
type Position struct {
	ID          uint64  `json:"id"`
	Beneficiary Address `json:"beneficiary"`
	Total       string  `json:"total"`
	Claimed     string  `json:"claimed"`
	Start       int64   `json:"start"`
	Cliff       int64   `json:"cliff"`
	End         int64   `json:"end"`
	Tier        uint8   `json:"tier"`
}

// BuyArgs is the payload of a purchase request. Amount is the raw payment
// amount in the asset's own smallest units, as decimal text.
type BuyArgs struct {
	Tier     uint8   `json:"tier"`
	Asset    Asset   `json:"asset"`
	Amount   string  `json:"amount"`
	Referrer Address `json:"referrer"`
}

// Config fixes the contract's collaborator addresses at construction.
// There is deliberately no setter for any of these.
type Config struct {
	Owner    Address
	Treasury Address // receives payment assets
	Vault    Address // account holding the backing tokens this contract distributes
}
