package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"weather-dashboard/internal/models"
	"go.uber.org/zap"
)

// WeatherEnvelope is the body of GET /api/weather/{city}.
type WeatherEnvelope struct {
	Success  bool                         `json:"success"`
	Current  *OpenWeatherCurrentResponse  `json:"current,omitempty"`
	Forecast *OpenWeatherForecastResponse `json:"forecast,omitempty"`
	DemoMode bool                         `json:"demo_mode"`
	Error    string                       `json:"error,omitempty"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query       string `json:"query"`
	WeatherData string `json:"weatherData"`
}

// ChatbotRequest is the body of POST /api/chatbot.
type ChatbotRequest struct {
	Message string `json:"message"`
	City    string `json:"city"`
}

// ChatResponse is returned by both chat endpoints.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// ErrUnsuccessful is wrapped when the backend answers with success=false.
var ErrUnsuccessful = errors.New("backend reported failure")

// DashboardClient talks to the dashboard backend. Each endpoint has its own
// circuit breaker so a failing language-model proxy does not block the
// rule-based fallback.
type DashboardClient struct {
	baseURL string
	weather *BaseClient
	chat    *BaseClient
	chatbot *BaseClient
	logger  *zap.Logger
}

func NewDashboardClient(baseURL string, config ClientConfig, logger *zap.Logger) *DashboardClient {
	return &DashboardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		weather: NewBaseClient("dashboard-weather", config, logger),
		chat:    NewBaseClient("dashboard-chat", config, logger),
		chatbot: NewBaseClient("dashboard-chatbot", config, logger),
		logger:  logger,
	}
}

// FetchWeather retrieves current conditions and forecast for city.
func (c *DashboardClient) FetchWeather(ctx context.Context, city string) (*models.WeatherReport, error) {
	var envelope WeatherEnvelope
	if err := c.weather.GetJSON(ctx, c.baseURL+"/api/weather/"+url.PathEscape(city), &envelope); err != nil {
		return nil, err
	}

	if !envelope.Success {
		reason := envelope.Error
		if reason == "" {
			reason = "City not found"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, reason)
	}
	if envelope.Current == nil || envelope.Forecast == nil {
		return nil, fmt.Errorf("%w: incomplete weather payload", ErrUnsuccessful)
	}

	return &models.WeatherReport{
		Current:  envelope.Current.ToModel(),
		Forecast: envelope.Forecast.ToModel(),
		DemoMode: envelope.DemoMode,
	}, nil
}

// Chat sends the query together with the weather summary to the
// language-model endpoint.
func (c *DashboardClient) Chat(ctx context.Context, query, weatherData string) (string, error) {
	var response ChatResponse
	err := c.chat.PostJSON(ctx, c.baseURL+"/chat", ChatRequest{Query: query, WeatherData: weatherData}, &response)
	if err != nil {
		return "", err
	}
	if !response.Success {
		reason := response.Response
		if reason == "" {
			reason = "Unknown error"
		}
		return "", fmt.Errorf("%w: %s", ErrUnsuccessful, reason)
	}
	return response.Response, nil
}

// ChatFallback asks the rule-based chatbot, which only knows the city name.
func (c *DashboardClient) ChatFallback(ctx context.Context, message, city string) (string, error) {
	var response ChatResponse
	err := c.chatbot.PostJSON(ctx, c.baseURL+"/api/chatbot", ChatbotRequest{Message: message, City: city}, &response)
	if err != nil {
		return "", err
	}
	if !response.Success {
		return "", fmt.Errorf("%w: %s", ErrUnsuccessful, response.Response)
	}
	return response.Response, nil
}
