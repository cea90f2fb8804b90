package contract

import "fmt"

////////////////////////////////////////////////////////////////////////////////
// Events
////////////////////////////////////////////////////////////////////////////////

// Event lines are terse pipe-delimited records: a 2-char verb, then
// key:value fields. They exist for off-chain indexing, never for reads back
// into the engine.

func evSaleStarted(at, ends int64) string {
	return fmt.Sprintf("ss|at:%d|ends:%d", at, ends)
}

func evSaleEnded(at int64) string {
	return fmt.Sprintf("se|at:%d", at)
}

func evPoolsSet(lock, ref string) string {
	return fmt.Sprintf("pu|lk:%s|rf:%s", lock, ref)
}

func evBuy(tier uint8, by Address, asset Asset, micro, base, lockBonus, refBonus string, referrer Address) string {
	return fmt.Sprintf("by|t:%d|by:%s|as:%s|mi:%s|bs:%s|lk:%s|rb:%s|rr:%s",
		tier, by, asset, micro, base, lockBonus, refBonus, referrer)
}

func evPosition(id uint64, beneficiary Address, total string, tier uint8) string {
	return fmt.Sprintf("ps|id:%d|bn:%s|am:%s|t:%d", id, beneficiary, total, tier)
}

func evReferralBound(referee, referrer Address) string {
	return fmt.Sprintf("rb|re:%s|rr:%s", referee, referrer)
}

func evReferralCredit(referrer Address, amount string, count uint8) string {
	return fmt.Sprintf("rc|rr:%s|am:%s|n:%d", referrer, amount, count)
}

func evSoldOut(tier uint8) string {
	return fmt.Sprintf("so|t:%d", tier)
}

func evClaim(id uint64, by Address, amount string) string {
	return fmt.Sprintf("cl|id:%d|by:%s|am:%s", id, by, amount)
}

func evSweep(to Address, amount string) string {
	return fmt.Sprintf("sw|to:%s|am:%s", to, amount)
}
