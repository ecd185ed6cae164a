package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Time durations

	"tetconnect/internal/domain"  // Importing domain models
	"tetconnect/internal/service" // Round access service
	"tetconnect/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

const adminCacheTTL = 30 * time.Second

// Request struct for granting chips
type GrantRequest struct {
	FamilyID uint  `json:"familyId"` // Family the wallet belongs to
	UserID   uint  `json:"userId"`   // Wallet owner
	Amount   int64 `json:"amount"`   // Chips to credit
}

// GrantHandler credits chips to a member's wallet
func GrantHandler(rounds *service.RoundService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GrantRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.UserID == 0 {
			badRequest(c, "userId is required")
			return
		}
		wallet, err := rounds.Grant(c.Request.Context(), req.FamilyID, req.UserID, req.Amount)
		if err != nil {
			respondError(c, "grant chips", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "wallet": wallet})
	}
}

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID       uint            `json:"id"`       // User ID
	Username string          `json:"username"` // Username
	Role     string          `json:"role"`     // User role
	Wallets  []domain.Wallet `json:"wallets"`  // One wallet per family played in
}

// ListUsersHandler returns users with their wallets across families
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, pageSize := normalizedPage(c)
		cacheKey := "admin:users:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		var cached struct {
			Users      []UserAdminResponse `json:"users"`       // List of users
			Page       int                 `json:"page"`        // Current page
			PageSize   int                 `json:"page_size"`   // Page size
			Total      int64               `json:"total"`       // Total number of users
			TotalPages int                 `json:"total_pages"` // Total pages
		}
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"success":     true,
				"users":       cached.Users,
				"page":        cached.Page,
				"page_size":   cached.PageSize,
				"total":       cached.Total,
				"total_pages": cached.TotalPages,
				"cached":      true, // Indicate response is from cache
			})
			return
		}
		var total int64 // Total user count
		if err := db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
			respondError(c, "count users", err)
			return
		}
		var users []domain.User
		if err := db.WithContext(ctx).Order("id asc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
			respondError(c, "list users", err)
			return
		}
		ids := make([]uint, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		var wallets []domain.Wallet
		if len(ids) > 0 {
			if err := db.WithContext(ctx).Where("user_id IN ?", ids).Order("family_id asc").Find(&wallets).Error; err != nil {
				respondError(c, "list wallets", err)
				return
			}
		}
		byUser := make(map[uint][]domain.Wallet, len(users))
		for _, w := range wallets {
			byUser[w.UserID] = append(byUser[w.UserID], w)
		}
		resp := make([]UserAdminResponse, len(users))
		for i, u := range users {
			resp[i] = UserAdminResponse{ID: u.ID, Username: u.Username, Role: u.Role, Wallets: byUser[u.ID]}
			if resp[i].Wallets == nil {
				resp[i].Wallets = []domain.Wallet{}
			}
		}
		respData := gin.H{
			"success":     true,
			"users":       resp,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (int(total) + pageSize - 1) / pageSize,
			"cached":      false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, adminCacheTTL)
		c.JSON(http.StatusOK, respData)
	}
}

// ListTransactionsHandler returns ledger entries across wallets, with optional
// filtering by family, user, type or creation time (unix milliseconds)
func ListTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var keyParts []string // Parts of the cache key
		for _, k := range []string{"family_id", "user_id", "type", "from", "to", "page", "page_size"} {
			keyParts = append(keyParts, k+"="+c.DefaultQuery(k, ""))
		}
		cacheKey := "admin:txs:" + strings.Join(keyParts, ":")
		var cached struct {
			Transactions []domain.Transaction `json:"transactions"` // List of transactions
			Page         int                  `json:"page"`         // Current page
			PageSize     int                  `json:"page_size"`    // Page size
			Total        int64                `json:"total"`        // Total number of transactions
			TotalPages   int                  `json:"total_pages"`  // Total pages
		}
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"success":      true,
				"transactions": cached.Transactions,
				"page":         cached.Page,
				"page_size":    cached.PageSize,
				"total":        cached.Total,
				"total_pages":  cached.TotalPages,
				"cached":       true,
			})
			return
		}
		page, pageSize := normalizedPage(c)
		query := db.WithContext(ctx).Model(&domain.Transaction{}) // Start building the query
		if familyID := parseID(c.Query("family_id")); familyID != 0 {
			query = query.Where("family_id = ?", familyID)
		}
		if userID := parseID(c.Query("user_id")); userID != 0 {
			query = query.Where("user_id = ?", userID)
		}
		if txType := c.Query("type"); txType != "" {
			query = query.Where("type = ?", txType)
		}
		if from := c.Query("from"); from != "" {
			query = query.Where("created_at >= ?", from)
		}
		if to := c.Query("to"); to != "" {
			query = query.Where("created_at <= ?", to)
		}
		var total int64
		if err := query.Count(&total).Error; err != nil {
			respondError(c, "count transactions", err)
			return
		}
		txs := []domain.Transaction{}
		if err := query.Order("id desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&txs).Error; err != nil {
			respondError(c, "list transactions", err)
			return
		}
		respData := gin.H{
			"success":      true,
			"transactions": txs,
			"page":         page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  (int(total) + pageSize - 1) / pageSize,
			"cached":       false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, adminCacheTTL)
		c.JSON(http.StatusOK, respData)
	}
}

// normalizedPage applies the listing defaults: page 1, 20 per page, at most 100
func normalizedPage(c *gin.Context) (int, int) {
	page, pageSize := pageParams(c)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
