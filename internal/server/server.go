// Package server provides the HTTP boundary for the portfolio chat backend.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jardelmessias/portfolio-chat/internal/db"
	"github.com/jardelmessias/portfolio-chat/internal/metrics"
	"github.com/jardelmessias/portfolio-chat/internal/models"
	"github.com/jardelmessias/portfolio-chat/internal/moderation"
	"github.com/jardelmessias/portfolio-chat/internal/weather"
)

// ChatService is the slice of the core the HTTP layer calls into.
type ChatService interface {
	ProcessMessage(ctx context.Context, text, sessionID string) (string, string, error)
	GetVoiceAudio(ctx context.Context, text string) []byte
	GetSessionHistory(ctx context.Context, sessionID string) (*models.Session, error)
}

// WeatherService resolves a city to aggregated weather data.
type WeatherService interface {
	GetCityWeather(ctx context.Context, city string) (*weather.Report, error)
}

// Handler holds the injected collaborators for the route handlers.
type Handler struct {
	chat    ChatService
	weather WeatherService
	metrics *metrics.Collector
}

// NewHandler creates the route handler set.
func NewHandler(chatSvc ChatService, weatherSvc WeatherService, collector *metrics.Collector) *Handler {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Handler{chat: chatSvc, weather: weatherSvc, metrics: collector}
}

// New creates and configures the HTTP server. CORS is permissive: the
// frontend is a static portfolio site served from a different origin.
func New(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	return e
}

// RegisterRoutes attaches all routes under /api.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/", h.Root)
	api.POST("/chat", h.Chat)
	api.POST("/tts", h.TTS)
	api.GET("/sessions/:session_id", h.SessionHistory)
	api.GET("/weather", h.Weather)
	api.GET("/status", h.Status)
}

// Root is a liveness probe for the frontend.
// GET /api/
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "API do portfólio rodando!"})
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Chat runs one conversational exchange.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "corpo inválido"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Mensagem vazia"})
	}

	reply, sessionID, err := h.chat.ProcessMessage(c.Request().Context(), req.Message, req.SessionID)
	if err != nil {
		// Moderation rejection is the one intentionally hard stop, and it is
		// client-caused: surface the fixed rationale, never a server error.
		if errors.Is(err, moderation.ErrRejected) {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": moderation.RejectionMessage})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "Erro interno"})
	}

	return c.JSON(http.StatusOK, chatResponse{Response: reply, SessionID: sessionID})
}

type ttsRequest struct {
	Text string `json:"text"`
}

// TTS synthesizes arbitrary text to speech. A failed synthesis is a distinct,
// expected outcome, not a crash.
// POST /api/tts
func (h *Handler) TTS(c echo.Context) error {
	var req ttsRequest
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sem texto"})
	}

	audio := h.chat.GetVoiceAudio(c.Request().Context(), req.Text)
	if audio == nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Falha no áudio"})
	}

	return c.Blob(http.StatusOK, "audio/mpeg", audio)
}

// SessionHistory returns the stored message history of a session.
// GET /api/sessions/:session_id
func (h *Handler) SessionHistory(c echo.Context) error {
	sessionID := c.Param("session_id")

	session, err := h.chat.GetSessionHistory(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "sessão não encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "Erro interno"})
	}

	return c.JSON(http.StatusOK, session)
}

// Weather aggregates current conditions with a clothing suggestion.
// GET /api/weather?city=...
func (h *Handler) Weather(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "parâmetro city obrigatório"})
	}

	report, err := h.weather.GetCityWeather(c.Request().Context(), city)
	if err != nil {
		if errors.Is(err, weather.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "cidade não encontrada"})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"detail": "serviço de clima indisponível"})
	}

	return c.JSON(http.StatusOK, report)
}

// Status exposes the in-memory runtime statistics.
// GET /api/status
func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metrics.Snapshot())
}
