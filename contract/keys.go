package contract

import "strconv"

////////////////////////////////////////////////////////////////////////////////
// Storage key layout
////////////////////////////////////////////////////////////////////////////////

// One readable prefix per record family. Keys are flat strings so any kv
// host (map, sqlite, chain storage) can hold them without extra encoding.
const (
	saleKey      = "sale"      // SaleState JSON
	poolsKey     = "pools"     // BonusPools JSON
	liabilityKey = "liability" // decimal string, unclaimed totals across all positions
	positionsCnt = "count:pos" // uint64 counter for position ids
)

// tierKey holds the cumulative sold counter for one tier as a decimal string.
func tierKey(tier uint8) string {
	return "tier:" + strconv.FormatUint(uint64(tier), 10)
}

// walletKey holds the WalletRecord for one buyer.
func walletKey(addr Address) string {
	return "wallet:" + addr.String()
}

// referralKey holds the ReferralRecord for one wallet.
func referralKey(addr Address) string {
	return "ref:" + addr.String()
}

// positionKey holds one Position by id.
func positionKey(id uint64) string {
	return "pos:" + strconv.FormatUint(id, 10)
}

// walletPositionsKey holds the JSON id list of positions owned by one wallet.
func walletPositionsKey(addr Address) string {
	return "wpos:" + addr.String()
}
