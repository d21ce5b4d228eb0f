package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoinsure/config"
	"github.com/princinho/sahoinsure/controllers"
	"github.com/princinho/sahoinsure/database"
	"github.com/princinho/sahoinsure/logger"
	"github.com/princinho/sahoinsure/middleware"
	"github.com/princinho/sahoinsure/utils"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger config is not known yet
		boot := logger.New(logger.Config{Level: "info", Pretty: true})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
	logger.SetGlobalLogger(log)
	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()
	db := client.Database(cfg.DatabaseName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	quotes := database.NewQuoteStore(db)
	policies := database.NewPolicyStore(db)
	users := database.NewUserStore(db)

	if err := utils.SeedAdminUser(ctx, users, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		log.Warn().Err(err).Msg("admin user not seeded")
	}

	objects, err := utils.NewObjectStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.Storage.Provider).Msg("init object storage")
	}
	if objects == nil {
		log.Warn().Msg("object storage disabled, policy document upload unavailable")
	}
	r := newRouter(cfg, log, quotes, policies, users, objects)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// newRouter registers every route. Customer data behind /admin requires a
// bearer token.
func newRouter(
	cfg *config.Config,
	log zerolog.Logger,
	quotes database.QuoteStore,
	policies database.PolicyStore,
	users database.UserStore,
	objects utils.ObjectStore,
) *gin.Engine {
	fv := utils.NewFileValidator(cfg.Uploads)
	clock := controllers.Clock(controllers.SystemClock)

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	log.Info().Strs("origins", cfg.AllowedOrigins).Msg("cors allowed origins")

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth/login", controllers.Login(users, cfg.JWTSecret, cfg.AccessTokenTTL))

	r.GET("/categories", controllers.GetCategories())
	r.GET("/categories/:slug", controllers.GetCategory())
	r.GET("/products", controllers.GetProducts())
	r.GET("/products/:slug", controllers.GetProduct())
	r.GET("/schema", controllers.GetSchema(clock))

	r.POST("/quotes/validate", controllers.ValidateQuote(clock))
	r.POST("/quotes", controllers.CreateQuote(quotes, clock, log))
	r.POST("/policies", controllers.CreatePolicy(policies, quotes, clock, log))

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		admin.GET("/quotes", controllers.GetQuotes(quotes, cfg.QueryDefaultLimit, cfg.QueryMaxLimit))
		admin.GET("/quotes/:id", controllers.GetQuote(quotes, clock))
		admin.PATCH("/quotes/:id/status", controllers.UpdateQuoteStatus(quotes))
		admin.POST("/quotes/:id/notes", controllers.AddQuoteNote(quotes))

		admin.GET("/policies", controllers.GetPolicies(policies, clock))
		admin.DELETE("/policies/:id", controllers.DeletePolicy(policies, objects, log))
		admin.POST("/policies/:id/document", controllers.UploadPolicyDocument(policies, objects, fv))
	}
	return r
}
