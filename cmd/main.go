package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minhanle/eqpractice/config"
	"github.com/minhanle/eqpractice/database"
	_ "github.com/minhanle/eqpractice/docs" // Swagger docs - auto-generated
	"github.com/minhanle/eqpractice/internal/controller"
	"github.com/minhanle/eqpractice/internal/logger"
	"github.com/minhanle/eqpractice/internal/model"
	"github.com/minhanle/eqpractice/internal/repository"
	"github.com/minhanle/eqpractice/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title EQ Practice API
// @version 1.0
// @description Role-play practice sessions with AI characters and automated post-session evaluation.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewScenarioRepository,
			repository.NewSessionRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGeminiLLMService,
			service.NewTurnService,
			service.NewEvaluationService,
			service.NewScenarioService,
			service.NewSessionService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewChatController,
			controller.NewSessionController,
			controller.NewScenarioController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	chatCtrl *controller.ChatController,
	sessionCtrl *controller.SessionController,
	scenarioCtrl *controller.ScenarioController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/chat", chatCtrl.ProcessTurn)
		api.POST("/eval", chatCtrl.Evaluate)

		api.GET("/sessions", sessionCtrl.ListSessions)
		api.GET("/sessions/:session_id", sessionCtrl.GetSession)

		api.POST("/scenarios/generate", scenarioCtrl.GenerateScenario)
		api.GET("/scenarios/:id", scenarioCtrl.GetScenario)
		api.POST("/scenarios/:id/initial-message", scenarioCtrl.GenerateInitialMessage)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("EQ Practice API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Scenario{},
		&model.Session{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
