package utils

import "fmt"

// Cache key layout. Every key is scoped by family so invalidation never
// crosses family boundaries.

// WalletKey caches a single wallet. Form: wallet:family:{f}:user:{u}
func WalletKey(familyID, userID uint) string {
	return fmt.Sprintf("wallet:family:%d:user:%d", familyID, userID)
}

// TxHistoryPrefix prefixes the paginated ledger pages of one wallet.
func TxHistoryPrefix(familyID, userID uint) string {
	return fmt.Sprintf("txhistory:family:%d:user:%d", familyID, userID)
}

// TxHistoryKey caches one ledger page.
func TxHistoryKey(familyID, userID uint, page, size int) string {
	return fmt.Sprintf("%s:page:%d:size:%d", TxHistoryPrefix(familyID, userID), page, size)
}

// CurrentRoundKey caches the latest round of a family for read endpoints.
func CurrentRoundKey(familyID uint) string {
	return fmt.Sprintf("round:family:%d:current", familyID)
}

// RoundHistoryPrefix prefixes the paginated round history of a family.
func RoundHistoryPrefix(familyID uint) string {
	return fmt.Sprintf("rounds:family:%d", familyID)
}

// RoundHistoryKey caches one round history page.
func RoundHistoryKey(familyID uint, page, size int) string {
	return fmt.Sprintf("%s:page:%d:size:%d", RoundHistoryPrefix(familyID), page, size)
}
