package contract

import (
	"fmt"

	"github.com/holiman/uint256"
)

////////////////////////////////////////////////////////////////////////////////
// Payment normalization
////////////////////////////////////////////////////////////////////////////////

// normalizePayment converts a raw payment amount from the asset's own decimal
// scale to 6-decimal micro-units, the sale's single unit of account. Assets
// wider than 6 decimals lose their sub-micro dust to truncation.
func (c *Contract) normalizePayment(asset Asset, raw *uint256.Int) (*uint256.Int, error) {
	if !c.registry.IsAllowed(asset) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotAllowed, asset)
	}
	decimals := c.registry.DecimalsOf(asset)
	if decimals == microDecimals {
		return new(uint256.Int).Set(raw), nil
	}
	if decimals > microDecimals {
		return new(uint256.Int).Div(raw, pow10(decimals-microDecimals)), nil
	}
	return new(uint256.Int).Mul(raw, pow10(microDecimals-decimals)), nil
}

// checkPurchaseRange enforces the per-transaction micro-unit bounds.
func checkPurchaseRange(micro *uint256.Int) error {
	if micro.Lt(minPurchaseMicro) || micro.Gt(maxPurchaseMicro) {
		return fmt.Errorf("%w: %s micro", ErrAmountOutOfRange, micro.Dec())
	}
	return nil
}

// TierBaseUnits prices a normalized micro-unit payment against a tier:
// base = micro * 1e18 / price, truncating. Exported so pricing is testable
// without a live sale.
func TierBaseUnits(tier uint8, micro *uint256.Int) (*uint256.Int, error) {
	params, err := tierParams(tier)
	if err != nil {
		return nil, err
	}
	base := new(uint256.Int).Mul(micro, unitScale)
	base.Div(base, params.Price)
	if base.IsZero() {
		return nil, ErrZeroAllocation
	}
	return base, nil
}
