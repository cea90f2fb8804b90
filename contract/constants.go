package contract

import "github.com/holiman/uint256"

////////////////////////////////////////////////////////////////////////////////
// Sale parameters
////////////////////////////////////////////////////////////////////////////////

const (
	// TierCount is the number of price brackets the sale runs through.
	TierCount = 3

	// microDecimals is the unit-of-account scale: every payment is normalized
	// to 6-decimal "micro" units before pricing.
	microDecimals = 6

	// tokenDecimals is the backing token's fractional precision.
	tokenDecimals = 18

	day        = 24 * 60 * 60
	saleWindow = 30 * day

	// purchaseCooldown is the minimum gap between two buys from one wallet.
	purchaseCooldown = 24 * 60 * 60

	// referral limits: a referrer earns credit for at most maxReferralCredits
	// referees, with at least referralCreditGap between credited buys.
	maxReferralCredits = 5
	referralCreditGap  = 24 * 60 * 60

	bpsDenominator = 10_000
	refereeBps     = 200 // 2% of base, to the buyer
	referrerBps    = 300 // 3% of base, to the referrer
)

// TierParams is the static pricing row for one tier. Price is micro-units per
// whole token; Cap and WalletCap are base units.
type TierParams struct {
	Price     *uint256.Int
	Cap       *uint256.Int
	WalletCap *uint256.Int
	LockBps   uint64
	CliffDur  int64
	LinearDur int64
}

// tokens scales a whole-token count to base units (1 token = 1e18).
func tokens(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), unitScale)
}

var (
	unitScale = uint256.MustFromDecimal("1000000000000000000") // 1e18

	// tierTable: increasing price, decreasing supply, loosening schedules.
	// Prices: $0.03 / $0.04 / $0.05 in micro-units per whole token.
	tierTable = [TierCount]TierParams{
		{
			Price:     uint256.NewInt(30_000),
			Cap:       tokens(500_000_000),
			WalletCap: tokens(1_000_000),
			LockBps:   1_000, // 10%
			CliffDur:  90 * day,
			LinearDur: 270 * day,
		},
		{
			Price:     uint256.NewInt(40_000),
			Cap:       tokens(300_000_000),
			WalletCap: tokens(750_000),
			LockBps:   700,
			CliffDur:  60 * day,
			LinearDur: 180 * day,
		},
		{
			Price:     uint256.NewInt(50_000),
			Cap:       tokens(200_000_000),
			WalletCap: tokens(500_000),
			LockBps:   500,
			CliffDur:  30 * day,
			LinearDur: 90 * day,
		},
	}

	// globalWalletCap bounds one wallet's purchases across all tiers.
	globalWalletCap = tokens(2_000_000)

	// Accepted payment size after normalization: $10 .. $100k in micro-units.
	minPurchaseMicro = uint256.NewInt(10_000_000)
	maxPurchaseMicro = uint256.NewInt(100_000_000_000)

	// Default bonus budgets, owner-adjustable until the sale starts.
	defaultLockPool = tokens(25_000_000)
	defaultRefPool  = tokens(10_000_000)
)

// tierParams returns the pricing row for a 1-based tier selector.
func tierParams(tier uint8) (TierParams, error) {
	if tier < 1 || tier > TierCount {
		return TierParams{}, invalidTier(tier)
	}
	return tierTable[tier-1], nil
}
