package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/veridex/projectmeter/internal/analysis"
	"github.com/veridex/projectmeter/internal/apperrors"
	"github.com/veridex/projectmeter/internal/cache"
	"github.com/veridex/projectmeter/internal/config"
	"github.com/veridex/projectmeter/internal/middleware"
	"github.com/veridex/projectmeter/internal/monitoring"
	"github.com/veridex/projectmeter/internal/project"
	"github.com/veridex/projectmeter/internal/ratelimit"
	"github.com/veridex/projectmeter/internal/scoring"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scoring HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts.cfg)
		},
	}
}

// server bundles the dependencies the HTTP handlers need.
type server struct {
	cfg         *config.Config
	logger      *monitoring.Logger
	metrics     *monitoring.Metrics
	engine      *scoring.Engine
	cache       *cache.Cache
	limiter     *ratelimit.Limiter
	compression *middleware.Compression
}

func newServer(cfg *config.Config) (*server, error) {
	logger := monitoring.NewLogger(cfg.SlogLevel())
	metrics := monitoring.NewMetrics()

	engine, err := buildEngine(cfg, logger.Logger)
	if err != nil {
		return nil, err
	}

	return &server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		engine:  engine,
		cache: cache.NewCache(
			time.Duration(cfg.CacheTTLSeconds)*time.Second,
			"/api/v1/analyze",
			"/api/v1/score",
			"/api/v1/compare",
		),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
			BurstMultiplier:   cfg.RateLimitBurst,
		}, metrics),
		compression: middleware.NewCompression(middleware.DefaultCompressionConfig()),
	}, nil
}

func runServe(cfg *config.Config) error {
	s, err := newServer(cfg)
	if err != nil {
		return err
	}

	r := s.setupRouter()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()
	s.logger.SystemLogger("server_started", "listening on "+cfg.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.SystemLogger("server_stopping", "shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.SystemLogger("server_stopped", "graceful shutdown complete")
	return nil
}

func (s *server) setupRouter() *gin.Engine {
	gin.SetMode(s.cfg.GinMode)
	r := gin.New()

	r.Use(s.compression.Middleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(monitoring.RequestID())
	r.Use(monitoring.Middleware(s.metrics, s.logger))
	r.Use(cors.New(s.corsConfig()))
	r.Use(apperrors.ErrorHandler(s.logger.Logger))
	r.Use(apperrors.RecoveryHandler(s.logger.Logger))
	r.Use(s.limiter.Middleware())
	r.Use(s.cache.Middleware(s.metrics, s.logger))

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", s.handleMetrics)
	r.GET("/cache/stats", s.handleCacheStats)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/score", s.handleScore)
		api.POST("/score/batch", s.handleScoreBatch)
		api.POST("/compare", s.handleCompare)
		api.GET("/models", s.handleModels)
	}

	return r
}

func (s *server) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	if len(s.cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = s.cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	return corsConfig
}

// handleHealth reports liveness and the loaded model versions.
func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"models":    s.engine.Analysis().ModelVersions(),
	})
}

// handleAnalyze runs the analysis pipeline without scoring.
func (s *server) handleAnalyze(c *gin.Context) {
	var rec project.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.Error(apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := rec.Validate(); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	start := time.Now()
	bundle := s.engine.Analysis().Analyze(c.Request.Context(), rec)

	s.metrics.IncrementAnalysis(bundle.Degraded)
	s.logger.AnalysisLogger(rec.Name, bundle.Category.Name, bundle.Category.Confidence,
		bundle.Degraded, time.Since(start))

	c.JSON(http.StatusOK, bundle)
}

// scoreResponse is the wire shape for a scored project.
type scoreResponse struct {
	scoring.Result
	ProjectName     string           `json:"project_name"`
	Analysis        *analysis.Bundle `json:"analysis,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
}

// handleScore scores one project with the requested algorithm and weights.
func (s *server) handleScore(c *gin.Context) {
	var req project.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	scoreOpts, err := project.DecodeScoreOptions(req.Options)
	if err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	start := time.Now()
	result, err := s.engine.Score(c.Request.Context(), req.Project, req.Algorithm, req.Weights, req.Options)
	if err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	algorithm := algorithmFromTrace(result)
	runID, _ := result.Details["run_id"].(string)
	s.metrics.IncrementScoring(algorithm)
	s.logger.ScoringLogger(runID, algorithm, result.OverallScore, time.Since(start))

	resp := scoreResponse{Result: result, ProjectName: req.Project.Name}
	if scoreOpts.IncludeAnalysis || scoreOpts.IncludeRecommendations {
		bundle := s.engine.Analysis().Analyze(c.Request.Context(), req.Project)
		if scoreOpts.IncludeAnalysis {
			resp.Analysis = &bundle
		}
		if scoreOpts.IncludeRecommendations {
			resp.Recommendations = bundle.Recommendations
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleScoreBatch scores a list of projects with shared settings.
func (s *server) handleScoreBatch(c *gin.Context) {
	var req project.BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	results, err := s.engine.ScoreBatch(c.Request.Context(), req.Projects, req.Algorithm, req.Weights)
	if err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	s.metrics.AddBatchItems(len(req.Projects))
	for _, result := range results {
		s.metrics.IncrementScoring(algorithmFromTrace(result))
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// handleCompare reports textual similarity between two descriptions.
func (s *server) handleCompare(c *gin.Context) {
	var req project.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if strings.TrimSpace(req.TextA) == "" {
		c.Error(apperrors.NewInputEmptyError("text_a"))
		return
	}
	if strings.TrimSpace(req.TextB) == "" {
		c.Error(apperrors.NewInputEmptyError("text_b"))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	comparison := s.engine.Analysis().NLP().CompareTexts(req.TextA, req.TextB)
	c.JSON(http.StatusOK, comparison)
}

// handleModels reports every loaded model and the classifier's fit state.
func (s *server) handleModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"models":     s.engine.Analysis().ModelVersions(),
		"classifier": s.engine.Analysis().Classifier().Info(),
	})
}

// handleMetrics exposes service counters plus limiter and compression stats.
func (s *server) handleMetrics(c *gin.Context) {
	stats := s.metrics.GetStats()
	stats["rate_limit"] = s.limiter.GetStats()
	stats["compression"] = s.compression.GetStats()
	c.JSON(http.StatusOK, stats)
}

func (s *server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.cache.Stats())
}

// algorithmFromTrace reads the algorithm name an engine run recorded.
func algorithmFromTrace(result scoring.Result) string {
	if name, ok := result.Details["algorithm"].(string); ok && name != "" {
		return name
	}
	return "unknown"
}
