package api

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/matt-g-everett/ledseq/stream"
)

// Player is the part of the controller the API drives.
type Player interface {
	Play(duration time.Duration, repeat int)
	Stop()
	Burst(at int, baseName string, count int) int
	Status() stream.Status
}

// ApiResponse is the envelope of every API response.
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// PlayRequest starts the main sequence. Zero values take the configured
// defaults.
type PlayRequest struct {
	DurationMs int64 `json:"durationMs" binding:"min=0"`
	Repeat     int   `json:"repeat"`
}

// BurstRequest plays a burst overlay centred on pixel At.
type BurstRequest struct {
	At       *int   `json:"at" binding:"required"`
	BaseName string `json:"baseName"`
	Count    int    `json:"count" binding:"min=0"`
}

type Api struct {
	player    Player
	staticDir string
	log       *slog.Logger
}

func NewApi(player Player, staticDir string, log *slog.Logger) *Api {
	a := new(Api)
	a.player = player
	a.staticDir = staticDir
	a.log = log
	if a.log == nil {
		a.log = slog.Default()
	}
	return a
}

// Router builds the gin engine serving the API and the static client.
func (a *Api) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", a.handleHealth)
		api.GET("/status", a.handleStatus)
		api.POST("/play", a.handlePlay)
		api.POST("/stop", a.handleStop)
		api.POST("/burst", a.handleBurst)
	}

	if a.staticDir != "" {
		if info, err := os.Stat(a.staticDir); err == nil && info.IsDir() {
			r.NoRoute(gin.WrapH(http.FileServer(http.Dir(a.staticDir))))
		}
	}

	return r
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	a.log.Info("listening", "addr", addr)
	return a.Router().Run(addr)
}

func (a *Api) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{Status: "success", Message: "ok"})
}

func (a *Api) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{Status: "success", Data: a.player.Status()})
}

func (a *Api) handlePlay(c *gin.Context) {
	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "invalid play request: " + err.Error(),
		})
		return
	}

	a.player.Play(time.Duration(req.DurationMs)*time.Millisecond, req.Repeat)
	c.JSON(http.StatusOK, ApiResponse{Status: "success", Data: a.player.Status()})
}

func (a *Api) handleStop(c *gin.Context) {
	a.player.Stop()
	c.JSON(http.StatusOK, ApiResponse{Status: "success", Data: a.player.Status()})
}

func (a *Api) handleBurst(c *gin.Context) {
	var req BurstRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "invalid burst request: " + err.Error(),
		})
		return
	}

	frames := a.player.Burst(*req.At, req.BaseName, req.Count)
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   map[string]any{"at": *req.At, "frames": frames},
	})
}
