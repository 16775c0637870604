package api

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/david/spending-search/internal/awards"
	"github.com/david/spending-search/internal/config"
	"github.com/david/spending-search/internal/upstream"
	"github.com/david/spending-search/web"
)

type Server struct {
	Config    *config.Config
	Echo      *echo.Echo
	Forwarder *upstream.Forwarder
	Client    *awards.Client

	page        *template.Template
	allowedKeys map[string]struct{}
}

func NewServer(cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = jsonErrorHandler
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(metricsMiddleware)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	forwarder := upstream.NewForwarder(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)

	// The UI talks to the upstream directly; the proxy endpoints exist for browsers and the CLI.
	client := awards.NewClient(cfg.Upstream.BaseURL, awards.UpstreamEndpoints)
	client.HTTP = forwarder.Client
	client.Renderer = awards.NewRenderer(cfg.Site.BaseURL)

	s := &Server{
		Config:      cfg,
		Echo:        e,
		Forwarder:   forwarder,
		Client:      client,
		page:        template.Must(template.ParseFS(web.Templates, "templates/index.html")),
		allowedKeys: make(map[string]struct{}, len(cfg.Proxy.AllowedKeys)),
	}
	for _, k := range cfg.Proxy.AllowedKeys {
		s.allowedKeys[k] = struct{}{}
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	s.Echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.Echo.GET("/", s.handleIndex)
	s.Echo.StaticFS("/static", echo.MustSubFS(web.Static, "static"))

	api := s.Echo.Group("/api")
	api.Use(middleware.BodyLimit(s.Config.Proxy.MaxBody))
	api.POST("/search", s.handleProxy(upstream.SearchEndpoint))
	api.POST("/count", s.handleProxy(upstream.CountEndpoint))
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) Start(port string) error {
	log.Printf("Forwarding to %s", s.Forwarder.BaseURL)
	return s.Echo.Start(":" + port)
}
