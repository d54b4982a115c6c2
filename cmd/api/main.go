package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"leadcrm/internal/config"
	"leadcrm/internal/database"
	"leadcrm/internal/domain/lead"
	"leadcrm/internal/middleware"
	"leadcrm/internal/modules/auth"
	"leadcrm/internal/modules/events"
	"leadcrm/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := lead.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	var provider auth.Provider
	if cfg.SupabaseURL != "" {
		provider, err = auth.NewSupabaseProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("Identity provider: supabase")
	} else {
		if err := auth.AutoMigrateUsers(db); err != nil {
			log.Fatal(err)
		}
		j := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
		provider = auth.NewLocalProvider(db, j)
		log.Println("Identity provider: local")
	}

	authService := auth.NewService(provider)
	authHandler := auth.NewHandler(authService)

	hub := events.NewHub()
	defer hub.Close()
	eventsHandler := events.NewHandler(hub)

	leadRepo := lead.NewRepository(db)
	leadService := lead.NewService(leadRepo, hub)
	leadHandler := lead.NewHandler(leadService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(provider))
		{
			authHandler.RegisterProtectedRoutes(protected)
			eventsHandler.RegisterRoutes(protected)
			lead.RegisterRoutes(protected, leadHandler)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
