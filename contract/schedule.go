package contract

import "github.com/holiman/uint256"

////////////////////////////////////////////////////////////////////////////////
// Vesting schedules
////////////////////////////////////////////////////////////////////////////////

// buildSchedule anchors a tier's cliff and linear window to the sale start.
// Every position in a tier vests on the same calendar regardless of when in
// the window it was bought; a day-29 buyer is 29 days closer to the cliff
// than a day-0 buyer.
func buildSchedule(tier uint8, saleStart int64) (start, cliff, end int64, err error) {
	params, err := tierParams(tier)
	if err != nil {
		return 0, 0, 0, err
	}
	start = saleStart
	cliff = saleStart + params.CliffDur
	end = cliff + params.LinearDur
	return start, cliff, end, nil
}

// vestedAmount computes how much of total has unlocked by now. Zero before
// the cliff, everything at or past end, linear in between with truncating
// division so the remainder unlocks only at end.
func vestedAmount(pos Position, now int64) *uint256.Int {
	total := mustAmount(pos.Total)
	if now < pos.Cliff {
		return uint256.NewInt(0)
	}
	if now >= pos.End {
		return total
	}
	elapsed := uint256.NewInt(uint64(now - pos.Cliff))
	window := uint256.NewInt(uint64(pos.End - pos.Cliff))
	out := new(uint256.Int).Mul(total, elapsed)
	return out.Div(out, window)
}

// claimableAmount is the vested portion not yet claimed.
func claimableAmount(pos Position, now int64) *uint256.Int {
	return sub(vestedAmount(pos, now), mustAmount(pos.Claimed))
}
