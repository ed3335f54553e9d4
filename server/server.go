// Package server exposes a generation backend over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/gosocial"
	"github.com/ZaguanLabs/gosocial/composer"
	"github.com/ZaguanLabs/gosocial/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Backend answers generation requests and reports its health.
type Backend interface {
	gosocial.Generator
	Health() composer.Health
}

var _ Backend = (*composer.Service)(nil)

type handler struct {
	backend Backend
	logger  logrus.FieldLogger
	metrics *metrics
}

// generateRequest mirrors gosocial.PromptRequest. Theme is a pointer so a
// missing field can be told apart from an empty one in logs.
type generateRequest struct {
	Theme      *string `json:"theme"`
	Language   string  `json:"language"`
	BasePrompt string  `json:"basePrompt"`
	Tone       string  `json:"tone"`
}

// New builds the HTTP handler.
func New(cfg config.ServerConfig, backend Backend, logger logrus.FieldLogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	h := &handler{
		backend: backend,
		logger:  logger,
		metrics: newMetrics(),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(accessLog(logger))
	router.Use(h.metrics.middleware())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	api := router.Group("/api")
	{
		api.POST("/generate", h.generate)
		api.GET("/health", h.health)
	}
	router.GET("/metrics", gin.WrapH(h.metrics.handler()))

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func (h *handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Theme == nil || strings.TrimSpace(*req.Theme) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing theme"})
		return
	}

	tone, err := gosocial.ParseTone(req.Tone)
	if req.Tone != "" && err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	res, err := h.backend.Generate(c.Request.Context(), gosocial.PromptRequest{
		Theme:      *req.Theme,
		Language:   strings.ToLower(req.Language),
		BasePrompt: req.BasePrompt,
		Tone:       tone,
	})
	h.metrics.observeGeneration(res, err, time.Since(start))

	if err != nil {
		var ve *gosocial.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		h.logger.WithFields(logrus.Fields{
			"theme":      *req.Theme,
			"request_id": c.GetString(requestIDKey),
		}).WithError(err).Error("generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	c.Header("ETag", `"`+gosocial.Fingerprint(res)+`"`)
	c.JSON(http.StatusOK, res)
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, h.backend.Health())
}

// Run serves handler on cfg.Port until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
