package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/gymsync-server/internal/auth"
	"github.com/vovakirdan/gymsync-server/internal/config"
	"github.com/vovakirdan/gymsync-server/internal/core"
	"github.com/vovakirdan/gymsync-server/internal/proto"
	"github.com/vovakirdan/gymsync-server/internal/service/invites"
	"github.com/vovakirdan/gymsync-server/internal/service/routines"
	"github.com/vovakirdan/gymsync-server/internal/service/sessions"
	"github.com/vovakirdan/gymsync-server/internal/store"
)

// NewServer builds the HTTP server: REST API, WebSocket endpoint and
// health check.
func NewServer(hub *core.Hub, authService *auth.Service, st store.Store, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, authService, logger, cfg.WSRateLimit)))

	apiHandlers := NewAPIHandlers(authService, logger)
	routineHandlers := NewRoutineHandlers(routines.New(st), logger)
	exerciseHandlers := NewExerciseHandlers(st, logger)
	inviteHandlers := NewInviteHandlers(invites.New(st), logger)
	sessionHandlers := NewSessionHandlers(sessions.New(st), logger)
	userHandlers := NewUserHandlers(st, logger)

	api := router.Group("/api")
	{
		api.POST("/register", apiHandlers.Register)
		api.POST("/login", apiHandlers.Login)
		api.POST("/guest", apiHandlers.GuestLogin)
	}

	authed := api.Group("")
	authed.Use(AuthMiddleware(authService, logger))
	{
		authed.GET("/users/search", userHandlers.SearchUsers)

		authed.GET("/exercises", exerciseHandlers.List)
		authed.GET("/exercises/:id", exerciseHandlers.Get)

		authed.GET("/routines/:id", routineHandlers.Get)

		authed.POST("/invites/redeem", inviteHandlers.Redeem)
		authed.GET("/coach", inviteHandlers.Coach)

		authed.POST("/sessions", sessionHandlers.Create)
		authed.GET("/sessions", sessionHandlers.List)
		authed.GET("/sessions/:code", sessionHandlers.Lookup)
		authed.GET("/sessions/:code/routine", sessionHandlers.Routine)
		authed.DELETE("/sessions/:code", sessionHandlers.End)
	}

	coachOnly := authed.Group("")
	coachOnly.Use(RequireRole(store.RoleCoach))
	{
		coachOnly.POST("/exercises", exerciseHandlers.Create)
		coachOnly.PUT("/exercises/:id", exerciseHandlers.Update)
		coachOnly.DELETE("/exercises/:id", exerciseHandlers.Delete)

		coachOnly.POST("/routines", routineHandlers.Create)
		coachOnly.GET("/routines", routineHandlers.List)
		coachOnly.PUT("/routines/:id", routineHandlers.Update)
		coachOnly.DELETE("/routines/:id", routineHandlers.Delete)
		coachOnly.PUT("/routines/:id/exercises", routineHandlers.SetExercises)

		coachOnly.POST("/invites", inviteHandlers.Issue)
		coachOnly.GET("/clients", inviteHandlers.Clients)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(stdhttp.StatusOK, gin.H{"status": "ok", "protocol": proto.ProtocolVersion})
}
