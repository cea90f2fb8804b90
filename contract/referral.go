package contract

import "github.com/holiman/uint256"

////////////////////////////////////////////////////////////////////////////////
// Referral graph
////////////////////////////////////////////////////////////////////////////////

// referralOutcome is what a purchase learns from the referral graph: the
// bonuses to mint (zero when ineligible) and the referrer who earns the
// second position, if any.
type referralOutcome struct {
	refereeBonus  *uint256.Int
	referrerBonus *uint256.Int
	referrer      Address
	creditedCount uint8
	credited      bool
	bound         bool
}

// evalReferral resolves a purchase against the referral graph and stages the
// graph updates. A zero or self referrer is ignored outright. Binding is
// first-referrer-wins and permanent; it happens even when no bonus is
// eligible. Bonuses require all of: buyer never bonused, referrer under the
// credit limit, and the referrer's credit cooldown elapsed.
func (c *Contract) evalReferral(buyer, referrer Address, base *uint256.Int, now int64, st *stage) referralOutcome {
	out := referralOutcome{
		refereeBonus:  uint256.NewInt(0),
		referrerBonus: uint256.NewInt(0),
	}

	buyerRec := c.loadReferral(buyer)
	if buyerRec.Referrer.IsZero() {
		if referrer.IsZero() || referrer == buyer {
			return out
		}
		buyerRec.Referrer = referrer
		out.bound = true
	}
	bound := buyerRec.Referrer

	refRec := c.loadReferral(bound)
	eligible := !buyerRec.BonusReceived &&
		refRec.CreditedCount < maxReferralCredits &&
		(refRec.LastCreditAt == 0 || now-refRec.LastCreditAt >= referralCreditGap)

	if eligible {
		out.refereeBonus = bpsShare(base, refereeBps)
		out.referrerBonus = bpsShare(base, referrerBps)
		out.referrer = bound
		out.credited = true
		buyerRec.BonusReceived = true
		refRec.CreditedCount++
		refRec.LastCreditAt = now
		out.creditedCount = refRec.CreditedCount
		st.setJSON(referralKey(bound), refRec)
	}
	if out.bound || out.credited {
		st.setJSON(referralKey(buyer), buyerRec)
	}
	if out.bound {
		st.emit(evReferralBound(buyer, bound))
	}
	return out
}
