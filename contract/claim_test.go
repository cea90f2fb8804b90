package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buyPosition sets up a started sale with one $30 tier-1 position for alice:
// 1100 tokens vesting from t0+90d to t0+360d.
func buyPosition(t *testing.T) (*fixture, Position) {
	t.Helper()
	f := startedFixture(t)
	require.NoError(t, f.c.Buy(env(alice, t0+100), BuyArgs{Tier: 1, Asset: usdc, Amount: usd(30)}))
	pos, err := f.c.GetPosition(1)
	require.NoError(t, err)
	return f, pos
}

func TestClaimableBeforeCliff(t *testing.T) {
	f, pos := buyPosition(t)

	for _, now := range []int64{t0, pos.Cliff - 1} {
		amount, err := f.c.Claimable(env(alice, now), pos.ID)
		require.NoError(t, err)
		assert.Equal(t, "0", amount)
	}

	before := f.state.Snapshot()
	err := f.c.Claim(env(alice, pos.Cliff-1), pos.ID)
	require.ErrorIs(t, err, ErrNothingToClaim)
	requireUnchanged(t, before, f.state)
}

func TestClaimableLinearMidpoint(t *testing.T) {
	f, pos := buyPosition(t)
	mid := pos.Cliff + (pos.End-pos.Cliff)/2

	amount, err := f.c.Claimable(env(alice, mid), pos.ID)
	require.NoError(t, err)
	assert.Equal(t, dec(tokens(550)), amount, "half of 1100 vested at midpoint")
}

func TestClaimableMonotonic(t *testing.T) {
	f, pos := buyPosition(t)

	prev := mustAmount("0")
	for now := pos.Cliff; now <= pos.End; now += 7 * day {
		amount, err := f.c.Claimable(env(alice, now), pos.ID)
		require.NoError(t, err)
		cur := mustAmount(amount)
		assert.False(t, cur.Lt(prev), "claimable never decreases")
		prev = cur
	}
}

func TestClaimPaysAndConverges(t *testing.T) {
	f, pos := buyPosition(t)
	mid := pos.Cliff + (pos.End-pos.Cliff)/2

	require.NoError(t, f.c.Claim(env(alice, mid), pos.ID))
	assert.Equal(t, dec(tokens(550)), f.backing.BalanceOf(alice))

	got, err := f.c.GetPosition(pos.ID)
	require.NoError(t, err)
	assert.Equal(t, dec(tokens(550)), got.Claimed)
	assert.Equal(t, dec(tokens(550)), f.c.Liability(), "liability shrinks with the claim")

	// Re-claim at the same instant finds nothing.
	err = f.c.Claim(env(alice, mid), pos.ID)
	require.ErrorIs(t, err, ErrNothingToClaim)

	// Final claim at end converges exactly to total, no overshoot.
	require.NoError(t, f.c.Claim(env(alice, pos.End), pos.ID))
	got, err = f.c.GetPosition(pos.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Total, got.Claimed)
	assert.Equal(t, got.Total, f.backing.BalanceOf(alice))
	assert.Equal(t, "0", f.c.Liability())

	err = f.c.Claim(env(alice, pos.End+day), pos.ID)
	require.ErrorIs(t, err, ErrNothingToClaim)
}

func TestClaimAfterSaleEnded(t *testing.T) {
	f, pos := buyPosition(t)
	require.NoError(t, f.c.End(env(owner, t0+saleWindow)))

	require.NoError(t, f.c.Claim(env(alice, pos.End), pos.ID))
	assert.Equal(t, pos.Total, f.backing.BalanceOf(alice), "claims outlive the sale")
}

func TestClaimOnlyBeneficiary(t *testing.T) {
	f, pos := buyPosition(t)

	err := f.c.Claim(env(bob, pos.End), pos.ID)
	require.ErrorIs(t, err, ErrNotBeneficiary)
}

func TestClaimUnknownPosition(t *testing.T) {
	f := startedFixture(t)

	_, err := f.c.Claimable(env(alice, t0), 42)
	require.ErrorIs(t, err, ErrPositionNotFound)
	err = f.c.Claim(env(alice, t0), 42)
	require.ErrorIs(t, err, ErrPositionNotFound)
}

func TestClaimMarksBeforeTransfer(t *testing.T) {
	f, pos := buyPosition(t)
	f.backing.failNext = true

	err := f.c.Claim(env(alice, pos.End), pos.ID)
	require.ErrorIs(t, err, ErrTransferFailed)

	// The slice is burned before the transfer runs; a reentrant or repeated
	// claim cannot double-spend it.
	got, err := f.c.GetPosition(pos.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Total, got.Claimed)
}
