package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"weather-dashboard/internal/services"
	"weather-dashboard/pkg/client"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const defaultChatbotCity = "London"

var popularCities = []string{
	"London", "New York", "Tokyo", "Paris", "Sydney", "Mumbai", "Beijing",
	"Berlin", "Rome", "Madrid", "Amsterdam", "Vienna", "Prague", "Budapest",
	"Warsaw", "Stockholm", "Oslo", "Copenhagen", "Helsinki", "Reykjavik",
}

// StatusReporter exposes background job state for the health endpoint.
type StatusReporter interface {
	GetStatus() map[string]interface{}
}

type Handler struct {
	weather   *services.WeatherService
	chat      *services.ChatService
	scheduler StatusReporter
	logger    *zap.Logger
	startTime time.Time
}

func NewHandler(weather *services.WeatherService, chat *services.ChatService, scheduler StatusReporter, logger *zap.Logger) *Handler {
	return &Handler{
		weather:   weather,
		chat:      chat,
		scheduler: scheduler,
		logger:    logger,
		startTime: time.Now(),
	}
}

func errorReply(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(client.ChatResponse{
		Response: fmt.Sprintf("Sorry, I encountered an error: %s", err),
	})
}

// GetWeather handles GET /api/weather/:city
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	// Params are only valid during the request; the city is kept in the store.
	city := strings.TrimSpace(utils.CopyString(c.Params("city")))

	h.logger.Info("Fetching weather", zap.String("city", city))

	data, err := h.weather.Fetch(c.UserContext(), city)
	if err != nil {
		h.logger.Error("Failed to get weather",
			zap.String("city", city),
			zap.Error(err))

		return c.Status(fiber.StatusBadRequest).JSON(client.WeatherEnvelope{
			Error: fmt.Sprintf("Could not fetch weather data for %s. Please check the city name and try again.", city),
		})
	}

	return c.JSON(client.WeatherEnvelope{
		Success:  true,
		Current:  data.Current,
		Forecast: data.Forecast,
		DemoMode: data.DemoMode,
	})
}

// PostChatbot handles POST /api/chatbot
func (h *Handler) PostChatbot(c *fiber.Ctx) error {
	var req client.ChatbotRequest
	if err := c.BodyParser(&req); err != nil {
		return errorReply(c, fiber.StatusInternalServerError, err)
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		city = defaultChatbotCity
	}

	data, ok := h.weather.Store().Get(city)
	if !ok {
		return c.JSON(client.ChatResponse{
			Response: fmt.Sprintf("I don't have weather data for %s. Please search for a city first.", city),
		})
	}

	answer, err := services.Answer(req.Message, data)
	if err != nil {
		h.logger.Error("Chatbot rules failed",
			zap.String("city", city),
			zap.Error(err))
		return errorReply(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(client.ChatResponse{Success: true, Response: answer})
}

// PostChat handles POST /chat
func (h *Handler) PostChat(c *fiber.Ctx) error {
	var req client.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return errorReply(c, fiber.StatusInternalServerError, err)
	}

	reply, err := h.chat.Reply(c.UserContext(), req.Query, req.WeatherData)
	switch {
	case errors.Is(err, services.ErrQueryRequired):
		return c.Status(fiber.StatusBadRequest).JSON(client.ChatResponse{Response: "Please provide a query."})
	case errors.Is(err, services.ErrModelUnconfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(client.ChatResponse{
			Response: "Gemini API is not configured. Please check your API key.",
		})
	case err != nil:
		return errorReply(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(client.ChatResponse{Success: reply.Success, Response: reply.Response})
}

// GetCities handles GET /api/cities
func (h *Handler) GetCities(c *fiber.Ctx) error {
	return c.JSON(popularCities)
}

// GetHealth handles GET /api/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	health := fiber.Map{
		"status":     "healthy",
		"timestamp":  time.Now(),
		"last_fetch": h.weather.GetLastFetchTime(),
		"uptime":     time.Since(h.startTime).String(),
		"demo_mode":  h.weather.DemoMode(),
		"model":      h.chat.Configured(),
		"stats":      h.weather.GetStats(),
	}
	if h.scheduler != nil {
		health["scheduler"] = h.scheduler.GetStatus()
	}

	return c.JSON(health)
}
