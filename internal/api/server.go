package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yt-viral/internal/config"
	"github.com/yt-viral/internal/finder"
	"github.com/yt-viral/internal/logger"
	"github.com/yt-viral/internal/models"
)

const defaultWindowDays = 7

// Server represents the API server
type Server struct {
	router *gin.Engine
	finder *finder.Finder
	log    logger.Logger
}

// runRequest is the body of both run endpoints
type runRequest struct {
	APIKey string `json:"apiKey"`
	Days   *int   `json:"days" binding:"omitempty,min=1,max=30"`
}

func (r runRequest) input() finder.RunInput {
	days := defaultWindowDays
	if r.Days != nil {
		days = *r.Days
	}
	return finder.RunInput{APIKey: r.APIKey, Days: days}
}

type runResponse struct {
	Status   models.OutcomeKind `json:"status"`
	Message  string             `json:"message"`
	Count    int                `json:"count"`
	Results  models.RunReport   `json:"results"`
	Searched []models.Topic     `json:"searched"`
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, f *finder.Finder, log logger.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger.Ensure(log)))

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	router.Use(cors.New(corsCfg))

	server := &Server{
		router: router,
		finder: f,
		log:    logger.Ensure(log),
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	s.router.GET("/topics", s.getTopics)

	s.router.POST("/viral/run", s.runViral)
	s.router.POST("/viral/stream", s.streamViral)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) getTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"topics": s.finder.Topics(),
	})
}

// runViral runs a search and answers once with the whole report
func (s *Server) runViral(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	p := &jsonPresenter{resp: runResponse{Results: models.RunReport{}, Searched: []models.Topic{}}}
	outcome := finder.Execute(c.Request.Context(), s.finder, req.input(), p)

	status := http.StatusOK
	if outcome.Kind == models.OutcomeFailure {
		status = http.StatusInternalServerError
		if errors.Is(outcome.Err, finder.ErrMissingAPIKey) || errors.Is(outcome.Err, finder.ErrInvalidWindow) {
			status = http.StatusBadRequest
		}
	}
	c.JSON(status, p.resp)
}

// streamViral runs a search and streams every event as server-sent events
func (s *Server) streamViral(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	finder.Execute(c.Request.Context(), s.finder, req.input(), &ssePresenter{c: c})
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.InfoObj("request handled", "http_request", map[string]any{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}

type jsonPresenter struct {
	resp runResponse
}

func (p *jsonPresenter) Searching(topic models.Topic) {
	p.resp.Searched = append(p.resp.Searched, topic)
}

func (p *jsonPresenter) Success(report models.RunReport) {
	p.resp.Status = models.OutcomeSuccess
	p.resp.Message = finder.SuccessMessage(len(report))
	p.resp.Count = len(report)
	p.resp.Results = report
}

func (p *jsonPresenter) Warning(message string) {
	p.resp.Status = models.OutcomeEmpty
	p.resp.Message = message
}

func (p *jsonPresenter) Error(message string) {
	p.resp.Status = models.OutcomeFailure
	p.resp.Message = message
}

type ssePresenter struct {
	c *gin.Context
}

func (p *ssePresenter) send(event string, data any) {
	p.c.SSEvent(event, data)
	p.c.Writer.Flush()
}

func (p *ssePresenter) Searching(topic models.Topic) {
	p.send("searching", gin.H{"topic": topic})
}

func (p *ssePresenter) Success(report models.RunReport) {
	p.send("success", gin.H{"message": finder.SuccessMessage(len(report)), "count": len(report)})
	for _, r := range report {
		p.send("result", r)
	}
}

func (p *ssePresenter) Warning(message string) {
	p.send("warning", gin.H{"message": message})
}

func (p *ssePresenter) Error(message string) {
	p.send("error", gin.H{"message": message})
}
