package agent

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "GET", "OPTIONS"},
		AllowHeaders:    []string{"authorization", "x-client-info", "apikey", "content-type"},
		MaxAge:          24 * time.Hour,
	}
}

func NewRouter(handler *Handler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"ai_enabled": handler.Enabled(),
		})
	})

	r.GET("/menu", func(ctx *gin.Context) {
		idx := handler.Index()
		cfg := idx.Config()

		ctx.JSON(http.StatusOK, gin.H{
			"restaurantInfo": cfg.RestaurantInfo,
			"categories":     cfg.Menu.Categories,
			"allergens":      idx.Allergens(),
			"tags":           idx.Tags(),
			"welcomeMessage": cfg.Prompts.WelcomeMessage,
		})
	})

	chat := func(ctx *gin.Context) {
		var req Request
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, errorEnvelope(CodeValidation, "invalid request body: "+err.Error()))
			return
		}

		resp, err := handler.Handle(ctx.Request.Context(), req)
		if err != nil {
			status, body := errorResponse(err)
			ctx.JSON(status, body)
			return
		}

		ctx.JSON(http.StatusOK, SuccessEnvelope{Data: resp})
	}

	r.POST("/chat", chat)
	r.POST("/api/chat", chat)

	r.GET("/ws", func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		serveChatSocket(ctx.Request.Context(), conn, handler)
	})

	return r
}

func errorEnvelope(code, message string) ErrorEnvelope {
	return ErrorEnvelope{Error: ErrorBody{Code: code, Message: message}}
}

// errorResponse maps a Handle error onto an HTTP status and envelope.
func errorResponse(err error) (int, ErrorEnvelope) {
	switch {
	case errors.Is(err, ErrMessageRequired):
		return http.StatusBadRequest, errorEnvelope(CodeValidation, err.Error())
	case errors.Is(err, ErrMissingCredential):
		return http.StatusServiceUnavailable, errorEnvelope(CodeConfiguration, err.Error())
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway, errorEnvelope(CodeUpstream, err.Error())
	}

	return http.StatusInternalServerError, errorEnvelope(CodeInternal, err.Error())
}
