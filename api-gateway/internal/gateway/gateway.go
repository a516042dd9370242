package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	MapsSvcURL   string
	UserSvcURL   string
	NotifySvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
	logger arbor.ILogger
}

func NewGateway(config Config, client HTTPClient, logger arbor.ILogger) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		logger: logger,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	})
}

// hopHeaders are not forwarded in either direction.
var hopHeaders = map[string]bool{
	"Connection":        true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
	"Upgrade":           true,
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	g.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Str("target", targetURL).Msg("Proxying request")

	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.logger.Error().Err(err).Msg("Failed to create proxy request")
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	copyHeaders(req.Header, r.Header)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn().Err(err).Str("target", targetURL).Msg("Failed to proxy request")
		writeError(w, http.StatusBadGateway, "upstream_error", "service unavailable")
		return
	}
	defer resp.Body.Close()

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Warn().Err(err).Msg("Failed to copy response")
	}
}

// RouteHandler dispatches on the first path segment.
func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, "/maps/"):
		g.ProxyRequest(w, r, g.config.MapsSvcURL)
	case strings.HasPrefix(path, "/users/"):
		g.ProxyRequest(w, r, g.config.UserSvcURL)
	case strings.HasPrefix(path, "/notifications/"):
		g.ProxyRequest(w, r, g.config.NotifySvcURL)
	default:
		g.logger.Debug().Str("path", path).Msg("Unmatched route")
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	}
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}

func copyHeaders(dst, src http.Header) {
	for k, v := range src {
		if hopHeaders[k] {
			continue
		}
		dst[k] = v
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{"error": kind, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
