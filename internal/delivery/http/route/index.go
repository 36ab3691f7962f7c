package route

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"skillswap/internal/config"
	httpHandler "skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	mongorepo "skillswap/internal/repository/mongodb"
	repo "skillswap/internal/repository/postgresql"
	service "skillswap/internal/service/postgresql"
)

// SetupRoute wires repositories, services and handlers onto the engine.
// mongoclient may be nil, in which case status history logging is disabled.
func SetupRoute(app *gin.Engine, db *sql.DB, mongoclient *mongo.Client, cfg *config.Config) {
	// --- repositories ---
	accountRepo := repo.NewAccountRepository(db)
	profileRepo := repo.NewProfileRepository(db)
	exchangeRepo := repo.NewExchangeRepository(db)

	var logRepo mongorepo.LogRepository = mongorepo.NoopLogRepository{}
	if mongoclient != nil {
		logRepo = mongorepo.NewLogRepository(mongoclient)
	}

	// --- services ---
	authService := service.NewAuthService(accountRepo, profileRepo)
	profileService := service.NewProfileService(profileRepo)
	exchangeService := service.NewExchangeService(exchangeRepo, profileRepo, logRepo)

	// --- handlers ---
	secret := []byte(cfg.SessionSecret)
	authHandler := httpHandler.NewAuthHandler(authService, secret, cfg.SessionTTL)
	profileHandler := httpHandler.NewProfileHandler(profileService)
	exchangeHandler := httpHandler.NewExchangeHandler(exchangeService)

	app.Use(middleware.RequestLogger())

	api := app.Group("/api")

	// --- authentication & session ---
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/session", middleware.SessionAccount(secret), authHandler.Session)

	// --- profiles ---
	api.GET("/profile", middleware.RequireLogin(secret), profileHandler.GetOwnProfile)
	api.PUT("/profile", middleware.RequireLogin(secret), profileHandler.UpdateProfile)
	api.GET("/profile/skills/:id", profileHandler.GetProfileSkills)
	api.GET("/profile/:id", middleware.RequireLogin(secret), profileHandler.GetProfile)
	api.GET("/profiles", profileHandler.ListProfiles)
	api.GET("/search", profileHandler.SearchProfiles)

	// --- exchanges ---
	exchange := api.Group("/exchange", middleware.RequireLogin(secret))
	exchange.POST("/request", exchangeHandler.CreateRequest)
	exchange.GET("/received", exchangeHandler.GetReceived)
	exchange.GET("/sent", exchangeHandler.GetSent)
	exchange.PUT("/:id/status", exchangeHandler.UpdateStatus)
}
