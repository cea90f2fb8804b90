package contract

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePayment(t *testing.T) {
	f := newFixture(t)
	f.registry.assets["cusd"] = 2 // coarser than micro

	cases := []struct {
		name  string
		asset Asset
		raw   string
		want  string
	}{
		{"same scale passes through", usdc, "30000000", "30000000"},
		{"finer scale truncates down", dai, "30000000000000000999", "30000000"},
		{"coarser scale multiplies up", "cusd", "3000", "30000000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			micro, err := f.c.normalizePayment(tc.asset, uint256.MustFromDecimal(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, micro.Dec())
		})
	}

	_, err := f.c.normalizePayment("doge", uint256.NewInt(1))
	require.ErrorIs(t, err, ErrAssetNotAllowed)
}

func TestCheckPurchaseRange(t *testing.T) {
	require.ErrorIs(t, checkPurchaseRange(uint256.NewInt(9_999_999)), ErrAmountOutOfRange)
	require.NoError(t, checkPurchaseRange(minPurchaseMicro))
	require.NoError(t, checkPurchaseRange(maxPurchaseMicro))
	require.ErrorIs(t, checkPurchaseRange(uint256.NewInt(100_000_000_001)), ErrAmountOutOfRange)
}

func TestTierBaseUnitsTruncates(t *testing.T) {
	// $10.00001 at $0.04 is 250.00025 tokens; multiply-before-divide keeps
	// the fraction in base units instead of truncating whole tokens.
	base, err := TierBaseUnits(2, uint256.NewInt(10_000_010))
	require.NoError(t, err)
	assert.Equal(t, "250000250000000000000", base.Dec())

	_, err = TierBaseUnits(9, uint256.NewInt(10_000_000))
	require.ErrorIs(t, err, ErrInvalidTier)
}
