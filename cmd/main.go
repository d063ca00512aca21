package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nandaakram/chapter-assessment/config"
	"github.com/nandaakram/chapter-assessment/database"
	_ "github.com/nandaakram/chapter-assessment/docs" // Swagger docs
	adminctrl "github.com/nandaakram/chapter-assessment/internal/controller/admin"
	assessorctrl "github.com/nandaakram/chapter-assessment/internal/controller/assessor"
	"github.com/nandaakram/chapter-assessment/internal/logger"
	"github.com/nandaakram/chapter-assessment/internal/model"
	"github.com/nandaakram/chapter-assessment/internal/repository"
	"github.com/nandaakram/chapter-assessment/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Chapter Assessment API
// @version 1.0
// @description Rubric-based chapter assessment grading: parameters, aspects and sub-aspects with per-leaf error counts, derived scores and predicates.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewParameterRepository,
			repository.NewAspectRepository,
			repository.NewSubAspectRepository,
			repository.NewScoreCategoryRepository,
			repository.NewChapterRepository,
			repository.NewAssessmentRepository,
		),

		fx.Provide(
			service.NewScoringEngine,
			service.NewRubricService,
			service.NewChapterService,
			service.NewScoreCategoryService,
			service.NewAssessmentService,
		),

		fx.Provide(
			adminctrl.NewRubricController,
			adminctrl.NewChapterController,
			adminctrl.NewScoreCategoryController,
			assessorctrl.NewAssessmentController,
		),

		fx.Invoke(AutoMigrateAndSeed),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer mounts every controller under /api/v1 and ties
// the HTTP server to the fx lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	rubricCtrl *adminctrl.RubricController,
	chapterCtrl *adminctrl.ChapterController,
	categoryCtrl *adminctrl.ScoreCategoryController,
	assessmentCtrl *assessorctrl.AssessmentController,
) {
	apiV1 := router.Group("/api/v1")
	rubricCtrl.RegisterRoutes(apiV1)
	chapterCtrl.RegisterRoutes(apiV1)
	categoryCtrl.RegisterRoutes(apiV1)
	assessmentCtrl.RegisterRoutes(apiV1)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Chapter assessment API starting on port %s", cfg.Server.Port)
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

// AutoMigrateAndSeed migrates the schema and installs the default score
// category bands on an empty catalog.
func AutoMigrateAndSeed(db *gorm.DB, categorySvc service.ScoreCategoryService) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Parameter{},
		&model.Aspect{},
		&model.SubAspect{},
		&model.ScoreCategory{},
		&model.Chapter{},
		&model.Assessment{},
		&model.AssessmentDetail{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	if err := categorySvc.SeedDefaults(); err != nil {
		log.Error().Err(err).Msg("Score category seeding failed")
		return err
	}

	log.Info().Msg("Database migration completed")
	return nil
}
