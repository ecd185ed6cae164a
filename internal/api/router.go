package api

import (
	"net/http" // HTTP status codes

	"tetconnect/internal/middleware" // Custom package for middleware
	"tetconnect/internal/service"    // Services behind the handlers

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
	"gorm.io/gorm"                                            // GORM ORM library
)

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client // nil disables caching
	JWTSecret string
	Families  *service.FamilyService
	Rounds    *service.RoundService
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), middleware.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	r.POST("/users", RegisterHandler(d.DB))              // Registration endpoint
	r.POST("/sessions", LoginHandler(d.DB, d.JWTSecret)) // Login endpoint

	auth := middleware.JWTAuthMiddleware(d.JWTSecret)

	families := r.Group("/families", auth)
	families.POST("", CreateFamilyHandler(d.Families))
	families.GET("/:familyId/members", ListMembersHandler(d.Families))
	families.POST("/:familyId/members", AddMemberHandler(d.Families))

	game := r.Group("/baucua", auth)
	game.POST("/rounds/start", StartRoundHandler(d.Rounds))
	game.GET("/rounds/current", CurrentRoundHandler(d.Rounds))
	game.GET("/rounds", RoundHistoryHandler(d.Rounds))
	game.POST("/rounds/:roundId/bets", PlaceBetHandler(d.Rounds))
	game.POST("/rounds/:roundId/roll", RollHandler(d.Rounds))
	game.GET("/wallet", GetWalletHandler(d.Rounds))
	game.GET("/wallet/transactions", GetTransactionHistoryHandler(d.Rounds))

	// Admin routes (protected, admin only)
	admin := r.Group("/admin", auth, middleware.AdminOnlyMiddleware(d.DB))
	admin.POST("/wallets/grant", GrantHandler(d.Rounds))
	admin.GET("/users", ListUsersHandler(d.DB, d.Redis))
	admin.GET("/transactions", ListTransactionsHandler(d.DB, d.Redis))

	return r
}
