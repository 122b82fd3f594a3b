package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"roga/config"
	"roga/controllers"
	"roga/db"
	"roga/internal/cache"
	"roga/internal/llm"
	"roga/internal/logger"
	"roga/internal/qi"
	"roga/internal/qikb"
	"roga/internal/ratelimit"
	"roga/middlewares"
	"roga/routes"
	"roga/services"
	"roga/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultConfigPath = "./config/config.yml"

func main() {
	cfg, err := config.LoadConfig(configPath())
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		logrus.Fatalf("Failed to init logger: %v", err)
	}
	log := logger.Get("app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.SetJWTSecret(cfg.JWT.Secret)
	if cfg.JWT.Required && cfg.JWT.Secret == "" {
		log.Fatal("jwt.required is set but no JWT secret is configured")
	}

	gen, err := llm.New(ctx, llm.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		GeminiKey:   cfg.Gemini.ApiKey,
		OpenAIKey:   cfg.Openai.GptApiKey,
		OpenAIBase:  cfg.Openai.BaseURL,
		TimeoutSecs: cfg.LLM.TimeoutSeconds,
	})
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.WithField("provider", cfg.LLM.Provider).Warn("LLM not configured, scoring will fail and mentors use fallback replies")
	case err != nil:
		log.WithError(err).Fatal("Failed to init LLM")
	}

	kb, err := loadKnowledgeBase(cfg.Scoring.KnowledgeBase)
	if err != nil {
		log.WithError(err).Fatal("Failed to load QI knowledge base")
	}

	var store services.SessionStore = services.NewMemorySessionStore()
	var telemetry services.TelemetrySink = services.NewLogTelemetrySink()
	var scores services.Cache
	var rdb redis.Cmdable

	if cfg.Database.URI != "" {
		if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
			log.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.DisconnectMongoDB(shutdownCtx); err != nil {
				log.WithError(err).Warn("Failed to disconnect MongoDB")
			}
		}()
		mongoStore := db.NewMongoSessionStore(db.MongoDatabase)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			log.WithError(err).Warn("Failed to create session indexes")
		}
		store = mongoStore
		telemetry = db.NewMongoTelemetrySink(db.MongoDatabase)
	} else {
		log.Info("No database URI, sessions are kept in memory")
	}

	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer client.Close()
		rdb = client
		scores = cache.NewScoreCache(client, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second)
	} else {
		log.Info("No Redis address, score cache and rate limiting are disabled")
	}

	detector := qi.NewDetector(nil)
	scorer := services.NewScorer(gen, scores)
	classifier := services.NewClassifier(gen, kb, qi.QIPolicy)
	mentor := services.NewMentor(gen, kb, detector, cfg.Scoring.MentorMaxSentences)

	ctl := &controllers.Controller{
		Scorer:       scorer,
		Classifier:   classifier,
		Coach:        services.NewCoach(kb, classifier, qi.QIPolicy, cfg.Scoring.MaxFeedbackWords),
		Sessions:     services.NewSessions(store, mentor, scorer, telemetry),
		Detector:     detector,
		Policy:       kb.Policy(qi.QIPolicy),
		MaxSentences: cfg.Scoring.MentorMaxSentences,
	}
	limiter := ratelimit.NewLimiter(rdb, cfg.Scoring.RateLimitPerMinute, time.Minute)

	router := setupRouter(cfg, ctl, limiter)
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Server shutdown failed")
	}
}

func configPath() string {
	if p := os.Getenv("ROGA_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

func loadKnowledgeBase(path string) (*qikb.KB, error) {
	if path == "" {
		return qikb.Load()
	}
	return qikb.LoadFile(path)
}

func setupRouter(cfg *config.Config, ctl *controllers.Controller, limiter *ratelimit.Limiter) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger(logger.Get("http")))

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// cors panics on an empty origin list
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, ctl,
		middlewares.AuthMiddleware(cfg.JWT.Required),
		middlewares.RateLimit(limiter, logger.Get("http")),
	)
	return router
}
