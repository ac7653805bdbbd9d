package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/auth"
	"github.com/paperfi/backend/internal/infrastructure/logger"
	"github.com/paperfi/backend/internal/interfaces/http/handler"
	"github.com/paperfi/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Config holds the transport settings of the API
type Config struct {
	ServiceName      string
	MaxBodySize      int64
	CORSAllowOrigins []string
	TracingEnabled   bool
	IdempotencyTTL   time.Duration
}

// Dependencies are the collaborators of the middleware chain
type Dependencies struct {
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Idempotency    shared.IdempotencyStore
	// RateLimiter is optional; nil disables rate limiting
	RateLimiter *middleware.RateLimiter
}

// Handlers bundles the resource handlers
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Account  *handler.AccountHandler
	Paper    *handler.PaperHandler
	Review   *handler.ReviewHandler
	Purchase *handler.PurchaseHandler
	Platform *handler.PlatformHandler
	Badge    *handler.BadgeHandler
}

// New builds the engine: the global chain, the /health probe and the
// /api/v1 routes with mutating routes behind authentication
func New(cfg Config, deps Dependencies, h Handlers) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)
	if cfg.TracingEnabled {
		engine.Use(middleware.Tracing(cfg.ServiceName))
	}
	engine.Use(
		middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowOrigins)),
		middleware.Secure(),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	engine.GET("/health", h.System.Health)

	guard := []gin.HandlerFunc{
		middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService:     deps.JWTService,
			TokenBlacklist: deps.TokenBlacklist,
			Logger:         log,
		}),
		middleware.SpanAttributes(),
	}
	if deps.RateLimiter != nil {
		guard = append(guard, middleware.RateLimit(deps.RateLimiter))
	}
	if deps.Idempotency != nil {
		guard = append(guard, middleware.Idempotency(deps.Idempotency, cfg.IdempotencyTTL, log))
	}

	r := NewRouter(engine, WithGuard(guard...))
	for _, group := range domainGroups(h) {
		r.Register(group)
	}
	r.Setup()

	return engine
}

func domainGroups(h Handlers) []*DomainGroup {
	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)

	authGroup := NewDomainGroup("auth", "/auth")
	authGroup.Protected().
		GET("/me", h.Auth.Me).
		POST("/revoke", h.Auth.Revoke)

	accounts := NewDomainGroup("accounts", "/accounts")
	accounts.GET("/:identity", h.Account.GetAccount)
	accounts.Protected().
		POST("", h.Account.Signup).
		PATCH("/me", h.Account.EditUser)

	papers := NewDomainGroup("papers", "/papers")
	papers.GET("/:owner", h.Paper.ListPapers)
	papers.GET("/:owner/:id", h.Paper.GetPaper)
	papers.Protected().
		POST("", h.Paper.Publish).
		PATCH("/:owner/:id", h.Paper.Edit).
		POST("/:owner/:id/authors", h.Paper.AddAuthor).
		POST("/:owner/:id/authors/verify", h.Paper.VerifyAuthor).
		POST("/:owner/:id/reviews", h.Review.Submit).
		PATCH("/:owner/:id/reviews/me", h.Review.Edit).
		POST("/:owner/:id/purchase", h.Purchase.Buy)

	platform := NewDomainGroup("platform", "/platform")
	platform.GET("", h.Platform.GetPlatform)
	platform.Protected().
		POST("/admins", h.Platform.AddAdmin).
		PUT("/fee", h.Platform.SetFee).
		POST("/withdraw", h.Platform.AdminWithdraw)

	vaults := NewDomainGroup("vaults", "/vaults")
	vaults.Protected().POST("/withdraw", h.Platform.Withdraw)

	badges := NewDomainGroup("badges", "/badges")
	badges.GET("/:owner", h.Badge.ListBadges)
	badges.Protected().
		POST("/collections", h.Badge.CreateCollection).
		POST("/mint", h.Badge.Mint)

	return []*DomainGroup{system, authGroup, accounts, papers, platform, vaults, badges}
}
