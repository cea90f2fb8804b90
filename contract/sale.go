package contract

import "fmt"

////////////////////////////////////////////////////////////////////////////////
// Sale lifecycle & owner ops
////////////////////////////////////////////////////////////////////////////////

// Start opens the sale and pins the window. One-shot; there is no way to
// reopen after End.
func (c *Contract) Start(env Env) error {
	if err := c.requireOwner(env); err != nil {
		return err
	}
	sale := c.loadSale()
	if sale.Started {
		return ErrSaleAlreadyLive
	}
	sale.Started = true
	sale.SaleStart = env.Now
	sale.SaleEnd = env.Now + saleWindow

	st := &stage{}
	st.setJSON(saleKey, sale)
	st.emit(evSaleStarted(sale.SaleStart, sale.SaleEnd))
	st.flush(c.state, c.log)
	return nil
}

// End closes the sale. Allowed once the window has elapsed, or early when
// every tier cap is filled.
func (c *Contract) End(env Env) error {
	if err := c.requireOwner(env); err != nil {
		return err
	}
	sale := c.loadSale()
	if !sale.Started {
		return ErrSaleNotStarted
	}
	if sale.Ended {
		return ErrSaleEnded
	}
	if env.Now < sale.SaleEnd && !c.allTiersSoldOut() {
		return fmt.Errorf("%w: window open until %d", ErrSaleNotEnded, sale.SaleEnd)
	}
	sale.Ended = true

	st := &stage{}
	st.setJSON(saleKey, sale)
	st.emit(evSaleEnded(env.Now))
	st.flush(c.state, c.log)
	return nil
}

func (c *Contract) allTiersSoldOut() bool {
	for tier := uint8(1); tier <= TierCount; tier++ {
		sold := mustAmount(orZero(c.state.Get(tierKey(tier))))
		if sold.Lt(tierTable[tier-1].Cap) {
			return false
		}
	}
	return true
}

// SetBonusPools replaces both bonus budgets. Only before the sale starts, so
// a pool can never shrink below its allocations.
func (c *Contract) SetBonusPools(env Env, lockPool, refPool string) error {
	if err := c.requireOwner(env); err != nil {
		return err
	}
	if c.loadSale().Started {
		return ErrSaleAlreadyLive
	}
	lock, err := parseAmount(lockPool)
	if err != nil {
		return err
	}
	ref, err := parseAmount(refPool)
	if err != nil {
		return err
	}
	pools := c.loadPools()
	pools.LockPool = dec(lock)
	pools.RefPool = dec(ref)

	st := &stage{}
	st.setJSON(poolsKey, pools)
	st.emit(evPoolsSet(pools.LockPool, pools.RefPool))
	st.flush(c.state, c.log)
	return nil
}

// Sweep sends the vault's surplus over outstanding liability to a target.
// Only after End; the liability share stays put for future claims.
func (c *Contract) Sweep(env Env, to Address) error {
	if err := c.requireOwner(env); err != nil {
		return err
	}
	sale := c.loadSale()
	if !sale.Ended {
		return ErrSaleNotEnded
	}
	balance, err := parseAmount(c.backing.BalanceOf(c.cfg.Vault))
	if err != nil {
		return err
	}
	surplus := sub(balance, mustAmount(c.Liability()))
	if surplus.IsZero() {
		return ErrNothingToClaim
	}
	if err := c.backing.Transfer(c.cfg.Vault, to, dec(surplus)); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	c.log.Log(evSweep(to, dec(surplus)))
	return nil
}
