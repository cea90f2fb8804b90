package contract

import "fmt"

////////////////////////////////////////////////////////////////////////////////
// Purchases
////////////////////////////////////////////////////////////////////////////////

// Buy runs the whole purchase pipeline: cooldown, normalization, pricing and
// caps, schedule, bonus pools, referral graph, solvency, then the payment
// pull. Nothing is written until every check has passed; an error from any
// step leaves state untouched.
func (c *Contract) Buy(env Env, args BuyArgs) error {
	if err := c.saleActive(env.Now); err != nil {
		return err
	}
	params, err := tierParams(args.Tier)
	if err != nil {
		return err
	}

	wallet := c.loadWallet(env.Sender)
	if wallet.LastBuyAt != 0 && env.Now-wallet.LastBuyAt < purchaseCooldown {
		return fmt.Errorf("%w: last buy at %d", ErrCooldownActive, wallet.LastBuyAt)
	}

	raw, err := parseAmount(args.Amount)
	if err != nil {
		return err
	}
	micro, err := c.normalizePayment(args.Asset, raw)
	if err != nil {
		return err
	}
	if err := checkPurchaseRange(micro); err != nil {
		return err
	}
	base, err := TierBaseUnits(args.Tier, micro)
	if err != nil {
		return err
	}

	// Cap checks: tier supply, then per-tier wallet, then global wallet.
	sold := mustAmount(orZero(c.state.Get(tierKey(args.Tier))))
	newSold := add(sold, base)
	if newSold.Gt(params.Cap) {
		return fmt.Errorf("%w: tier %d", ErrTierSoldOut, args.Tier)
	}
	newTierBought := add(mustAmount(wallet.BoughtPerTier[args.Tier-1]), base)
	if newTierBought.Gt(params.WalletCap) {
		return fmt.Errorf("%w: tier %d wallet cap", ErrWalletCapExceeded, args.Tier)
	}
	newGlobalBought := add(mustAmount(wallet.BoughtGlobal), base)
	if newGlobalBought.Gt(globalWalletCap) {
		return fmt.Errorf("%w: global wallet cap", ErrWalletCapExceeded)
	}

	sale := c.loadSale()
	start, cliff, end, err := buildSchedule(args.Tier, sale.SaleStart)
	if err != nil {
		return err
	}

	st := &stage{}

	// Lock bonus against the lock pool.
	pools := c.loadPools()
	lockBonus := bpsShare(base, params.LockBps)
	newAllocLock := add(mustAmount(pools.AllocatedLock), lockBonus)
	if newAllocLock.Gt(mustAmount(pools.LockPool)) {
		return fmt.Errorf("%w: lock bonus pool", ErrPoolExhausted)
	}

	// Referral bonuses against the referral pool. The graph stages its own
	// record updates; pool accounting stays here.
	ref := c.evalReferral(env.Sender, args.Referrer, base, env.Now, st)
	newAllocRef := add(mustAmount(pools.AllocatedRef), add(ref.refereeBonus, ref.referrerBonus))
	if newAllocRef.Gt(mustAmount(pools.RefPool)) {
		return fmt.Errorf("%w: referral bonus pool", ErrPoolExhausted)
	}

	buyerTotal := add(add(base, lockBonus), ref.refereeBonus)
	minted := add(buyerTotal, ref.referrerBonus)

	// Solvency: the vault must cover everything already owed plus this mint.
	liability := mustAmount(c.Liability())
	newLiability := add(liability, minted)
	vaultBalance, err := parseAmount(c.backing.BalanceOf(c.cfg.Vault))
	if err != nil {
		return err
	}
	if vaultBalance.Lt(newLiability) {
		return fmt.Errorf("%w: vault %s < owed %s", ErrInsolvent, vaultBalance.Dec(), newLiability.Dec())
	}

	// All checks passed; stage the writes.
	ids := newIDAlloc(c.state)
	buyerPos := Position{
		ID:          ids.next(),
		Beneficiary: env.Sender,
		Total:       dec(buyerTotal),
		Claimed:     "0",
		Start:       start,
		Cliff:       cliff,
		End:         end,
		Tier:        args.Tier,
	}
	st.setJSON(positionKey(buyerPos.ID), buyerPos)
	st.setJSON(walletPositionsKey(env.Sender), append(c.loadWalletPositions(env.Sender), buyerPos.ID))
	st.emit(evPosition(buyerPos.ID, buyerPos.Beneficiary, buyerPos.Total, args.Tier))

	if ref.credited {
		refPos := Position{
			ID:          ids.next(),
			Beneficiary: ref.referrer,
			Total:       dec(ref.referrerBonus),
			Claimed:     "0",
			Start:       start,
			Cliff:       cliff,
			End:         end,
			Tier:        args.Tier,
		}
		st.setJSON(positionKey(refPos.ID), refPos)
		st.setJSON(walletPositionsKey(ref.referrer), append(c.loadWalletPositions(ref.referrer), refPos.ID))
		st.emit(evPosition(refPos.ID, refPos.Beneficiary, refPos.Total, args.Tier))
		st.emit(evReferralCredit(ref.referrer, dec(ref.referrerBonus), ref.creditedCount))
	}
	ids.commit(st)

	st.set(tierKey(args.Tier), dec(newSold))
	wallet.BoughtPerTier[args.Tier-1] = dec(newTierBought)
	wallet.BoughtGlobal = dec(newGlobalBought)
	wallet.LastBuyAt = env.Now
	st.setJSON(walletKey(env.Sender), wallet)

	pools.AllocatedLock = dec(newAllocLock)
	pools.AllocatedRef = dec(newAllocRef)
	st.setJSON(poolsKey, pools)
	st.set(liabilityKey, dec(newLiability))

	st.emit(evBuy(args.Tier, env.Sender, args.Asset, micro.Dec(), base.Dec(),
		dec(lockBonus), dec(ref.refereeBonus), ref.referrer))
	if newSold.Eq(params.Cap) {
		st.emit(evSoldOut(args.Tier))
	}

	// Pull payment last so a ledger failure costs nothing. The flush after it
	// is pure local writes and cannot fail.
	if err := c.payments.TransferFrom(args.Asset, env.Sender, c.cfg.Treasury, args.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	st.flush(c.state, c.log)
	return nil
}

// orZero maps a missing stored value to "0".
func orZero(raw *string) string {
	if raw == nil {
		return "0"
	}
	return *raw
}
