package contract

import "fmt"

////////////////////////////////////////////////////////////////////////////////
// Claims
////////////////////////////////////////////////////////////////////////////////

// Claimable returns how much of a position has vested and not been claimed,
// as of env.Now. Pure view; zero before the cliff.
func (c *Contract) Claimable(env Env, id uint64) (string, error) {
	pos, err := c.loadPosition(id)
	if err != nil {
		return "", err
	}
	return dec(claimableAmount(pos, env.Now)), nil
}

// Claim pays out the currently claimable slice of a position to its
// beneficiary. The claimed counter and liability are written before the
// outbound transfer runs, so re-entering the same position mid-transfer
// finds nothing left to claim.
func (c *Contract) Claim(env Env, id uint64) error {
	pos, err := c.loadPosition(id)
	if err != nil {
		return err
	}
	if env.Sender != pos.Beneficiary {
		return fmt.Errorf("%w: position %d", ErrNotBeneficiary, id)
	}
	amount := claimableAmount(pos, env.Now)
	if amount.IsZero() {
		return fmt.Errorf("%w: position %d", ErrNothingToClaim, id)
	}

	pos.Claimed = dec(add(mustAmount(pos.Claimed), amount))
	newLiability := sub(mustAmount(c.Liability()), amount)

	st := &stage{}
	st.setJSON(positionKey(id), pos)
	st.set(liabilityKey, dec(newLiability))
	st.emit(evClaim(id, pos.Beneficiary, dec(amount)))
	st.flush(c.state, c.log)

	if err := c.backing.Transfer(c.cfg.Vault, pos.Beneficiary, dec(amount)); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return nil
}
