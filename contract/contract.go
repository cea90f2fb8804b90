package contract

import "fmt"

////////////////////////////////////////////////////////////////////////////////
// Contract
////////////////////////////////////////////////////////////////////////////////

// Contract is the presale and vesting engine. It owns no storage or chain
// access itself; everything flows through the injected collaborators.
// One instance per deployment; the methods are not safe for concurrent use
// over the same State.
type Contract struct {
	state    State
	log      Logger
	backing  BackingToken
	registry PaymentRegistry
	payments PaymentLedger
	cfg      Config
}

// New wires up a Contract. A nil log is replaced with NopLogger; every other
// collaborator is required.
func New(state State, log Logger, backing BackingToken, registry PaymentRegistry, payments PaymentLedger, cfg Config) *Contract {
	if log == nil {
		log = NopLogger{}
	}
	return &Contract{
		state:    state,
		log:      log,
		backing:  backing,
		registry: registry,
		payments: payments,
		cfg:      cfg,
	}
}

func (c *Contract) requireOwner(env Env) error {
	if env.Sender != c.cfg.Owner {
		return fmt.Errorf("%w: %s", ErrNotOwner, env.Sender)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Record loaders
////////////////////////////////////////////////////////////////////////////////

func (c *Contract) loadSale() SaleState {
	var sale SaleState
	loadJSON(c.state, saleKey, &sale)
	return sale
}

// saleActive reports whether buys are currently accepted at time now.
func (c *Contract) saleActive(now int64) error {
	sale := c.loadSale()
	if !sale.Started {
		return ErrSaleNotStarted
	}
	if sale.Ended || now >= sale.SaleEnd {
		return ErrSaleEnded
	}
	return nil
}

func (c *Contract) loadPools() BonusPools {
	var pools BonusPools
	if !loadJSON(c.state, poolsKey, &pools) {
		pools = BonusPools{
			LockPool: dec(defaultLockPool),
			RefPool:  dec(defaultRefPool),
		}
	}
	return pools
}

func (c *Contract) loadWallet(addr Address) WalletRecord {
	var rec WalletRecord
	loadJSON(c.state, walletKey(addr), &rec)
	return rec
}

func (c *Contract) loadReferral(addr Address) ReferralRecord {
	var rec ReferralRecord
	loadJSON(c.state, referralKey(addr), &rec)
	return rec
}

func (c *Contract) loadPosition(id uint64) (Position, error) {
	var pos Position
	if !loadJSON(c.state, positionKey(id), &pos) {
		return Position{}, fmt.Errorf("%w: %d", ErrPositionNotFound, id)
	}
	return pos, nil
}

func (c *Contract) loadWalletPositions(addr Address) []uint64 {
	var ids []uint64
	loadJSON(c.state, walletPositionsKey(addr), &ids)
	return ids
}

////////////////////////////////////////////////////////////////////////////////
// Views
////////////////////////////////////////////////////////////////////////////////

// Sale returns the lifecycle record as stored.
func (c *Contract) Sale() SaleState {
	return c.loadSale()
}

// Pools returns the bonus budget record, defaults included if never set.
func (c *Contract) Pools() BonusPools {
	return c.loadPools()
}

// TierSold returns the cumulative base units sold in one tier.
func (c *Contract) TierSold(tier uint8) (string, error) {
	if _, err := tierParams(tier); err != nil {
		return "", err
	}
	raw := c.state.Get(tierKey(tier))
	if raw == nil {
		return "0", nil
	}
	return *raw, nil
}

// Wallet returns a buyer's aggregate purchase record.
func (c *Contract) Wallet(addr Address) WalletRecord {
	return c.loadWallet(addr)
}

// Referral returns both sides of a wallet's referral standing.
func (c *Contract) Referral(addr Address) ReferralRecord {
	return c.loadReferral(addr)
}

// GetPosition returns one vesting position by id.
func (c *Contract) GetPosition(id uint64) (Position, error) {
	return c.loadPosition(id)
}

// PositionsOf returns every position owned by addr, in creation order.
func (c *Contract) PositionsOf(addr Address) ([]Position, error) {
	ids := c.loadWalletPositions(addr)
	out := make([]Position, 0, len(ids))
	for _, id := range ids {
		pos, err := c.loadPosition(id)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}

// Liability returns the total unclaimed base units across all positions.
func (c *Contract) Liability() string {
	raw := c.state.Get(liabilityKey)
	if raw == nil {
		return "0"
	}
	return *raw
}
