package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"warbler/config"
	"warbler/controllers"
	"warbler/routes"
	"warbler/stores"
	"warbler/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := utils.SetupDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to setup database: %v", err)
	}
	defer func() {
		if err := utils.CloseDatabase(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users := stores.NewPostgresUserStore(db)
	sessions := stores.NewMemorySessionStore(cfg.SessionDuration, cfg.MaxIdleTime)

	app := &controllers.App{
		Users:         users,
		Messages:      stores.NewPostgresMessageStore(db),
		Follows:       stores.NewPostgresFollowStore(db),
		Sessions:      sessions,
		Hub:           controllers.NewHub(256),
		BcryptCost:    cfg.BcryptCost,
		TimelineLimit: cfg.TimelineLimit,
		CookieSecure:  cfg.CookieSecure,
	}

	controllers.StartPeriodicCleanup(ctx, sessions, cfg.CleanupInterval)
	log.Printf("Started periodic session cleanup every %v (max idle %v)", cfg.CleanupInterval, cfg.MaxIdleTime)

	go app.Hub.RunSocket(ctx)

	r := gin.Default()
	routes.WarblerRouter(r, app)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	go func() {
		log.Printf("Server starting on %s with session duration: %v", cfg.Addr(), cfg.SessionDuration)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
