package api

import (
	"net/http" // HTTP status codes
	"time"     // Timestamps

	"tetconnect/internal/domain"  // Importing domain models
	"tetconnect/internal/service" // Round access service

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for starting a round
type StartRoundRequest struct {
	FamilyID uint `json:"familyId"` // Family to start or resume a round in
}

// RoundSummary is the round shape returned by the start endpoint
type RoundSummary struct {
	ID          string    `json:"id"`           // Round UUID
	RoundNumber int       `json:"round_number"` // Sequential per family
	Status      string    `json:"status"`       // betting, rolling or settled
	StartedAt   time.Time `json:"started_at"`   // Creation time
}

// Request struct for placing a bet
type BetRequest struct {
	Symbol string `json:"symbol"` // bau, cua, tom, ca, ga or nai
	Amount int64  `json:"amount"` // Stake in chips
}

func summarize(r domain.Round) RoundSummary {
	return RoundSummary{ID: r.ID, RoundNumber: r.RoundNumber, Status: r.Status, StartedAt: r.StartedAt}
}

// StartRoundHandler starts a round for the family or returns the one still
// accepting bets
func StartRoundHandler(rounds *service.RoundService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req StartRoundRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		round, err := rounds.RequestStart(c.Request.Context(), req.FamilyID, userID)
		if err != nil {
			respondError(c, "start round", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "round": summarize(round)})
	}
}

// CurrentRoundHandler returns the family's latest round with its bets
func CurrentRoundHandler(rounds *service.RoundService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		view, err := rounds.Current(c.Request.Context(), parseID(c.Query("familyId")), userID)
		if err != nil {
			respondError(c, "current round", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "round": view})
	}
}

// RoundHistoryHandler lists the family's rounds, newest first
func RoundHistoryHandler(rounds *service.RoundService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		page, pageSize := pageParams(c)
		out, err := rounds.History(c.Request.Context(), parseID(c.Query("familyId")), userID, page, pageSize)
		if err != nil {
			respondError(c, "round history", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"rounds":      out.Rounds,     // Rounds with bets
			"page":        out.Page,       // Current page
			"page_size":   out.PageSize,   // Page size
			"total":       out.Total,      // Total rounds
			"total_pages": out.TotalPages, // Total pages
			"cached":      out.Cached,     // Served from Redis
		})
	}
}

// PlaceBetHandler stakes chips on a symbol in a betting round
func PlaceBetHandler(rounds *service.RoundService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req BetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		res, err := rounds.PlaceBet(c.Request.Context(), service.BetInput{
			RoundID: c.Param("roundId"),
			UserID:  userID,
			Symbol:  req.Symbol,
			Amount:  req.Amount,
		})
		if err != nil {
			respondError(c, "place bet", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "bet": res.Bet, "wallet": res.Wallet})
	}
}

// RollHandler rolls the dice and settles the round
func RollHandler(rounds *service.RoundService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		view, err := rounds.Roll(c.Request.Context(), c.Param("roundId"), userID)
		if err != nil {
			respondError(c, "roll round", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "round": view})
	}
}
