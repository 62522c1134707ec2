// Package server is the HTTP surface for display browsers: the shell page,
// the display websocket, and a health probe.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quiz-screen/internal/config"
	"quiz-screen/internal/web"
)

type Server struct {
	log *zap.Logger
	cfg config.Config
	hub *Hub
}

func New(log *zap.Logger, cfg config.Config, hub *Hub) *Server {
	return &Server{log: log, cfg: cfg, hub: hub}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(RequestLogger(s.log), gin.Recovery())

	r.GET("/", s.handleDisplay)
	r.GET("/healthz", s.handleHealth)
	r.GET("/ws", s.handleDisplaySocket)
	r.Static("/static", "./static")
	return r
}

func (s *Server) handleDisplay(c *gin.Context) {
	info := web.RoomInfo{
		Title:   s.cfg.RoomTitle,
		RoomID:  s.cfg.RoomID,
		JoinURL: s.cfg.JoinURL(),
		QRURL:   s.cfg.QRURL(),
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := web.Display(info).Render(c.Request.Context(), c.Writer); err != nil {
		s.log.Error("display render failed", zap.Error(err))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDisplaySocket(c *gin.Context) {
	s.hub.HandleUpgrade(c.Writer, c.Request)
}
