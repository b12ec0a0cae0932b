package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"calder/tictactoe-arena/internal/api/controller"
	"calder/tictactoe-arena/internal/bot"
	"calder/tictactoe-arena/internal/hub"
	"calder/tictactoe-arena/internal/hub/types"
	"calder/tictactoe-arena/internal/player"
)

var tracer = otel.Tracer("server")

// Server wires the HTTP surface: the REST API, the websocket entry point,
// and the static client.
type Server struct {
	engine   *gin.Engine
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

// NewServer builds the gin engine and registers all routes.
func NewServer(h *hub.Hub, userController *controller.UserController, gameController *controller.GameController, statsController *controller.StatsController) *Server {
	s := &Server{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	api := engine.Group("/api")
	{
		api.POST("/register", userController.Register)
		api.POST("/login", userController.Login)
		api.POST("/guest", userController.GuestLogin)

		api.POST("/games", gameController.Create)
		api.GET("/games/:id", gameController.Get)
		api.POST("/games/:id/moves", gameController.Move)
		api.POST("/games/:id/restart", gameController.Restart)
		api.DELETE("/games/:id", gameController.Delete)

		api.GET("/stats/:player_id", statsController.PlayerStats)
	}

	engine.GET("/ws", s.handleWebSocket)

	// Everything else is the static client.
	engine.NoRoute(gin.WrapH(http.FileServer(http.Dir("./web"))))

	s.engine = engine
	return s
}

// Engine returns the underlying gin engine for the HTTP server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// handleWebSocket upgrades the connection and hands a registration request
// to the hub. It does not distinguish between new and reconnecting players;
// the hub decides based on the supplied player ID.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	previousID := c.Query("playerId")
	playerID := previousID
	if playerID == "" {
		playerID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("player.id", playerID))

	p := player.NewPlayer(playerID, conn)

	mode := c.Query("mode")
	if mode == "" {
		mode = "human"
	}
	difficulty := c.Query("difficulty")
	if mode == "bot" && difficulty == "" {
		difficulty = bot.DifficultyHard
	}
	span.SetAttributes(attribute.String("game.mode", mode), attribute.String("game.difficulty", difficulty))

	s.hub.Register() <- &types.RegistrationRequest{
		Player:     p,
		PlayerID:   previousID,
		Mode:       mode,
		Difficulty: difficulty,
		Ctx:        ctx,
	}
}

// requestLogger logs each request through slog, websocket upgrades excluded.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.IsWebsocket() {
			return
		}
		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
