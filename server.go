package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"seleniumguide/catalog"
	"seleniumguide/config"
	"seleniumguide/export"
	"seleniumguide/i18n"
	"seleniumguide/logger"
	"seleniumguide/practice"
)

//go:embed web/templates/*.gohtml
var webTemplates embed.FS

const shutdownTimeout = 10 * time.Second

// Server exposes the catalog, the exporters and the practice page over HTTP.
type Server struct {
	cfg           config.ServerConfig
	defaultFormat export.Format
	registry      *ServiceRegistry
	exports       *ExportFacadeService
	notifier      *NotificationCenter
	logger        *logger.Logger
	templates     *template.Template
	engine        *gin.Engine
}

// NewServer builds the router. It does not start listening.
func NewServer(
	cfg config.ServerConfig,
	defaultFormat export.Format,
	registry *ServiceRegistry,
	exports *ExportFacadeService,
	notifier *NotificationCenter,
	log *logger.Logger,
) (*Server, error) {
	tmpl, err := template.ParseFS(webTemplates, "web/templates/section.gohtml")
	if err != nil {
		return nil, WrapOperationError("parse page templates", err)
	}
	if log == nil {
		log = logger.NewNop()
	}

	s := &Server{
		cfg:           cfg,
		defaultFormat: defaultFormat,
		registry:      registry,
		exports:       exports,
		notifier:      notifier,
		logger:        log,
		templates:     tmpl,
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	if s.cfg.Mode != "" {
		gin.SetMode(s.cfg.Mode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger.Zap()))
	if len(s.cfg.CORS.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", s.handleHealth)
	r.GET("/sections/:id", s.handleSectionPage)

	v1 := r.Group("/api/v1")
	{
		sections := v1.Group("/sections")
		{
			sections.GET("", s.handleListSections)
			sections.GET("/:id", s.handleGetSection)
			sections.GET("/:id/preview", s.handlePreview)
			sections.GET("/:id/export", s.handleExport)
		}

		p := v1.Group("/practice")
		{
			p.GET("/locators.html", s.handlePracticePage)
			p.POST("/evaluate", s.handleEvaluate)
		}

		v1.GET("/formats", s.handleFormats)
		v1.GET("/exports", s.handleRecentExports)
		v1.GET("/exports/counts", s.handleExportCounts)
		v1.GET("/notifications", s.handleNotifications)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(s.msg(nil, "server.started", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return WrapOperationError("serve http", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server shutdown failed", zap.Error(err))
		return WrapOperationError("shutdown http server", err)
	}
	s.logger.Info(s.msg(nil, "server.stopped"))
	return nil
}

var supportedLanguages = []language.Tag{language.English, language.Chinese}

var languageMatcher = language.NewMatcher(supportedLanguages)

// requestLanguage picks the reply language from Accept-Language, falling back
// to the configured language.
func (s *Server) requestLanguage(c *gin.Context) i18n.Language {
	if c != nil {
		if accept := c.GetHeader("Accept-Language"); accept != "" {
			_, idx := language.MatchStrings(languageMatcher, accept)
			if supportedLanguages[idx] == language.Chinese {
				return i18n.Chinese
			}
			return i18n.English
		}
	}
	return s.notifier.Language()
}

// msg translates key for the request. A nil c uses the configured language.
func (s *Server) msg(c *gin.Context, key string, params ...interface{}) string {
	return i18n.In(s.requestLanguage(c), key, params...)
}

// requestLogger logs one line per request with zap.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("client error", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}

// attachment sets the download headers for fileName.
func attachment(c *gin.Context, fileName string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		fileName, url.PathEscape(fileName)))
}

// writeServiceError maps service errors onto HTTP statuses.
func (s *Server) writeServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, ErrSectionNotFound):
		NotFound(c, s.msg(c, "export.section_not_found", c.Param("id")), err.Error())
	case errors.Is(err, ErrUnsupportedFormat):
		BadRequest(c, s.msg(c, "export.unsupported_format", c.Query("format")), err.Error())
	case errors.Is(err, practice.ErrEmptySelector):
		BadRequest(c, s.msg(c, "server.bad_request", err.Error()), err.Error())
	case errors.Is(err, ErrGenerateFailed):
		InternalError(c, s.msg(c, "export.failed", c.Param("id")))
	default:
		InternalError(c, s.msg(c, "server.internal_error"))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	statuses := s.registry.Health()
	status, code := "ok", http.StatusOK
	for _, st := range statuses {
		if !st.Healthy {
			status = "degraded"
			if st.Critical {
				status, code = "unavailable", http.StatusServiceUnavailable
				break
			}
		}
	}
	c.JSON(code, gin.H{"status": status, "services": statuses})
}

func (s *Server) handleListSections(c *gin.Context) {
	OK(c, s.exports.Sections())
}

func (s *Server) handleGetSection(c *gin.Context) {
	_, data, err := s.exports.SectionContent(c.Param("id"))
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	OK(c, data)
}

func (s *Server) handlePreview(c *gin.Context) {
	preview, err := s.exports.Preview(c.Param("id"))
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	OK(c, preview)
}

func (s *Server) handleFormats(c *gin.Context) {
	OK(c, s.exports.Formats())
}

func (s *Server) handleExport(c *gin.Context) {
	format := s.defaultFormat
	if q := c.Query("format"); q != "" {
		f, err := export.ParseFormat(q)
		if err != nil {
			s.writeServiceError(c, err)
			return
		}
		format = f
	}

	res, err := s.exports.ExportSection(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		s.writeServiceError(c, err)
		return
	}

	attachment(c, res.FileName)
	c.Data(http.StatusOK, res.MIME, res.Data)
}

func (s *Server) handlePracticePage(c *gin.Context) {
	name, data := s.exports.PracticePage()
	attachment(c, name)
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

type evaluateRequest struct {
	Selector string `json:"selector" binding:"required"`
}

type evaluateResponse struct {
	practice.Match
	Hint string `json:"hint"`
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, s.msg(c, "server.bad_request", "selector is required"), err.Error())
		return
	}

	m, err := s.exports.EvaluateLocator(req.Selector)
	if err != nil {
		if errors.Is(err, practice.ErrEmptySelector) {
			s.writeServiceError(c, err)
			return
		}
		BadRequest(c, s.msg(c, "practice.invalid_selector", strings.TrimSpace(req.Selector)), err.Error())
		return
	}

	resp := evaluateResponse{Match: m}
	switch m.Status {
	case practice.MatchUnique:
		resp.Hint = s.msg(c, "practice.selector_unique")
	case practice.MatchAmbiguous:
		resp.Hint = s.msg(c, "practice.selector_many", m.Count)
	default:
		resp.Hint = s.msg(c, "practice.selector_none")
	}
	OK(c, resp)
}

// limitParam reads ?limit=, falling back to def on absent or bad values.
func limitParam(c *gin.Context, def int) int {
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		return v
	}
	return def
}

func (s *Server) handleRecentExports(c *gin.Context) {
	records, err := s.exports.RecentExports(c.Request.Context(), limitParam(c, 0))
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	OK(c, records)
}

func (s *Server) handleExportCounts(c *gin.Context) {
	counts, err := s.exports.ExportCounts(c.Request.Context())
	if err != nil {
		s.writeServiceError(c, err)
		return
	}
	OK(c, counts)
}

func (s *Server) handleNotifications(c *gin.Context) {
	OK(c, s.notifier.Recent(limitParam(c, 20)))
}

type slideView struct {
	catalog.SlideContent
	Number   int
	CodeHTML template.HTML
}

type sectionPage struct {
	Section    catalog.Section
	Slides     []slideView
	Formats    []export.Format
	Prev, Next *catalog.Section
}

func (s *Server) handleSectionPage(c *gin.Context) {
	meta, data, err := s.exports.SectionContent(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrSectionNotFound) {
			c.String(http.StatusNotFound, s.msg(c, "export.section_not_found", c.Param("id")))
			return
		}
		c.String(http.StatusInternalServerError, s.msg(c, "server.internal_error"))
		return
	}

	page := sectionPage{
		Section: meta,
		Slides:  make([]slideView, 0, len(data.Slides)),
		Formats: s.exports.Formats(),
	}
	for i, slide := range data.Slides {
		v := slideView{SlideContent: slide, Number: i + 1}
		if slide.HasCode() {
			v.CodeHTML = highlightCode(slide.Code, slide.CodeTitle)
		}
		page.Slides = append(page.Slides, v)
	}

	all := s.exports.Sections()
	for i := range all {
		if all[i].ID != meta.ID {
			continue
		}
		if i > 0 {
			page.Prev = &all[i-1]
		}
		if i+1 < len(all) {
			page.Next = &all[i+1]
		}
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.templates.ExecuteTemplate(c.Writer, "section.gohtml", page); err != nil {
		s.logger.Error("render section page", zap.String("section", meta.ID), zap.Error(err))
	}
}
