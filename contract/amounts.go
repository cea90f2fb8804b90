package contract

import (
	"fmt"

	"github.com/holiman/uint256"
)

////////////////////////////////////////////////////////////////////////////////
// Amount arithmetic
////////////////////////////////////////////////////////////////////////////////

// Amounts cross the storage and call boundaries as decimal strings and only
// become uint256 inside the engine. All division here truncates; every
// rounding loss lands in the contract's favor.

// parseAmount decodes a non-negative decimal string. The empty string is a
// distinct case from "0": stored records use "" for never-written fields.
func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return uint256.NewInt(0), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	return v, nil
}

// ParseBalance decodes a non-negative decimal balance for callers outside
// the engine (runners, collaborator fakes). Same semantics as the engine's
// own amount parsing.
func ParseBalance(s string) (*uint256.Int, error) {
	return parseAmount(s)
}

// mustAmount decodes a stored decimal string, panicking on corruption. Only
// used on values the engine itself wrote.
func mustAmount(s string) *uint256.Int {
	v, err := parseAmount(s)
	if err != nil {
		panic(fmt.Sprintf("corrupt stored amount %q", s))
	}
	return v
}

// dec renders an amount back to storage form.
func dec(v *uint256.Int) string {
	return v.Dec()
}

// pow10 returns 10^n as uint256; payment assets never exceed 38 decimals.
func pow10(n uint8) *uint256.Int {
	out := uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := uint8(0); i < n; i++ {
		out.Mul(out, ten)
	}
	return out
}

// bpsShare computes amount * bps / 10_000, truncating.
func bpsShare(amount *uint256.Int, bps uint64) *uint256.Int {
	out := new(uint256.Int).Mul(amount, uint256.NewInt(bps))
	return out.Div(out, uint256.NewInt(bpsDenominator))
}

// add and sub return fresh values; sub saturates at zero rather than wrapping
// so a stray over-claim reads as zero owed instead of a 2^256 liability.
func add(a, b *uint256.Int) *uint256.Int {
	return new(uint256.Int).Add(a, b)
}

func sub(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Sub(a, b)
}
