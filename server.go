package main

import (
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/ThakurMayank5/Collect-Server/config"
	"github.com/ThakurMayank5/Collect-Server/dispatch"
	ws "github.com/ThakurMayank5/Collect-Server/websocket"
)

type server struct {
	cfg        *config.Config
	dispatcher *dispatch.Dispatcher
	upgrader   websocket.Upgrader
}

func newServer(cfg *config.Config, d *dispatch.Dispatcher) *server {
	s := &server{
		cfg:        cfg,
		dispatcher: d,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *server) checkOrigin(r *http.Request) bool {
	if s.cfg.AllowsAnyOrigin() {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(s.cfg.AllowOrigins, origin)
}

func (s *server) wsHandler(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("upgrade error")
		return
	}

	sessionID := uuid.New().String()
	ua := useragent.Parse(c.Request.UserAgent())
	log.Info().
		Str("session", sessionID).
		Str("remote", c.ClientIP()).
		Str("browser", ua.Name).
		Str("os", ua.OS).
		Msg("🔌 client connected")

	ws.NewConn(sessionID, conn, s.dispatcher, rate.Limit(s.cfg.MessageRate), s.cfg.MessageBurst).Run()

	log.Info().Str("session", sessionID).Msg("❌ client disconnected")
}

func (s *server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) statsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.dispatcher.Stats())
}

func (s *server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.LoggerWithWriter(os.Stdout))

	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/ws", s.wsHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/stats", s.statsHandler)

	return router
}
