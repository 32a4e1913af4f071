package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"splitpath/internal/config"
	"splitpath/internal/database"
	"splitpath/internal/domain"
	"splitpath/internal/middleware"
	"splitpath/internal/modules/auth"
	"splitpath/internal/modules/friends"
	"splitpath/internal/modules/messages"
	jwtsvc "splitpath/internal/pkg/jwt"
	"splitpath/internal/realtime"
	"splitpath/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Friend{}, &domain.Message{}); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	jwtService := jwtsvc.New(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	tokensService := auth.NewTokensService(userRepo, jwtService)
	authService := auth.NewService(userRepo, tokensService)
	authHandler := auth.NewHandler(authService, tokensService, jwtService, auth.CookieConfig{
		Path:     cfg.CookiePath,
		Secure:   cfg.CookieSecure,
		SameSite: parseSameSite(cfg.CookieSameSite),
	})

	registry := realtime.NewMemoryRegistry()
	wsAuth := realtime.NewAuthenticator(jwtService)
	presence := realtime.NewPresenceBroadcaster(registry, friendRepo, cfg.PresenceFanoutLimit)
	relay := realtime.NewMessagingRelay(registry)
	wsHandler := realtime.NewHandler(wsAuth, registry, presence, relay)

	friendsService := friends.NewService(friendRepo, userRepo, presence)
	friendsHandler := friends.NewHandler(friendsService, registry)

	messagesService := messages.NewService(messageRepo, friendRepo, relay)
	messagesHandler := messages.NewHandler(messagesService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(jwtService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			friendsHandler.RegisterRoutes(protected)
			messagesHandler.RegisterRoutes(protected)
		}
	}

	// Websocket upgrades bypass the HTTP middleware chain; the handler does
	// its own credential check before upgrading.
	wsHandler.RegisterRoutes(r)

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
