package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/config"
	"github.com/iliyamo/academic-records/internal/database"
	"github.com/iliyamo/academic-records/internal/handler"
	"github.com/iliyamo/academic-records/internal/middleware"
	"github.com/iliyamo/academic-records/internal/queue"
	"github.com/iliyamo/academic-records/internal/repository"
	"github.com/iliyamo/academic-records/internal/router"
	"github.com/iliyamo/academic-records/internal/service"
)

func main() {
	// .env is optional; in containers the environment comes preset.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional infrastructure: without it the rate limiter and
	// the response cache become pass-through and the API still serves.
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	careers := repository.NewCareerRepo(db)
	courses := repository.NewCourseRepo(db)

	audit := service.NewAuditLogger(true)
	auth := service.NewAuthService(users, roles, cfg.JWTSecret, audit)

	authHandler := handler.NewAuthHandler(auth)
	userHandler := handler.NewUserHandler(users, roles, cfg.BcryptCost)
	careerHandler := handler.NewCareerHandler(careers)
	courseHandler := handler.NewCourseHandler(courses, careers, users)

	// The audit consumer drains login attempt events into the audit log.
	// It reconnects on its own; a broker outage never blocks logins.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, middleware.RateLimit(rlCfg, rdb))
	router.RegisterAcademic(e, careerHandler, courseHandler, userHandler, roles, cfg.JWTSecret, middleware.CacheResponse(cacheCfg, rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
