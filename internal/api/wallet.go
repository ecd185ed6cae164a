package api

import (
	"net/http" // HTTP status codes

	"tetconnect/internal/service" // Round access service

	"github.com/gin-gonic/gin" // Gin web framework
)

// GetWalletHandler returns the caller's chip wallet in a family
func GetWalletHandler(rounds *service.RoundService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		wallet, cached, err := rounds.Wallet(c.Request.Context(), parseID(c.Query("familyId")), userID)
		if err != nil {
			respondError(c, "get wallet", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "wallet": wallet, "cached": cached})
	}
}

// GetTransactionHistoryHandler returns the caller's wallet transactions in a family
func GetTransactionHistoryHandler(rounds *service.RoundService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		page, pageSize := pageParams(c)
		out, err := rounds.WalletHistory(c.Request.Context(), parseID(c.Query("familyId")), userID, page, pageSize)
		if err != nil {
			respondError(c, "transaction history", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"transactions": out.Transactions, // Newest first
			"page":         out.Page,         // Current page
			"page_size":    out.PageSize,     // Page size
			"total":        out.Total,        // Total transactions
			"total_pages":  out.TotalPages,   // Total pages
			"cached":       out.Cached,       // Served from Redis
		})
	}
}
