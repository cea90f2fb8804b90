package contract

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// Error taxonomy
////////////////////////////////////////////////////////////////////////////////

// Sentinels callers can match with errors.Is. Any error returned from an
// operation means the call wrote nothing.
var (
	ErrNotOwner          = errors.New("NotOwner")
	ErrInvalidTier       = errors.New("InvalidTier")
	ErrSaleNotStarted    = errors.New("SaleNotStarted")
	ErrSaleAlreadyLive   = errors.New("SaleAlreadyLive")
	ErrSaleEnded         = errors.New("SaleEnded")
	ErrSaleNotEnded      = errors.New("SaleNotEnded")
	ErrAssetNotAllowed   = errors.New("AssetNotAllowed")
	ErrBadAmount         = errors.New("BadAmount")
	ErrAmountOutOfRange  = errors.New("AmountOutOfRange")
	ErrZeroAllocation    = errors.New("ZeroAllocation")
	ErrTierSoldOut       = errors.New("TierSoldOut")
	ErrWalletCapExceeded = errors.New("WalletCapExceeded")
	ErrPoolExhausted     = errors.New("PoolExhausted")
	ErrCooldownActive    = errors.New("CooldownActive")
	ErrPaymentFailed     = errors.New("PaymentFailed")
	ErrInsolvent         = errors.New("Insolvent")
	ErrPositionNotFound  = errors.New("PositionNotFound")
	ErrNotBeneficiary    = errors.New("NotBeneficiary")
	ErrNothingToClaim    = errors.New("NothingToClaim")
	ErrTransferFailed    = errors.New("TransferFailed")
)

// invalidTier tags a bad tier selector with the offending value.
func invalidTier(tier uint8) error {
	return fmt.Errorf("%w: %d", ErrInvalidTier, tier)
}
