package handler

import (
	"context"
	"html/template"
	"net/http"

	"LaunchpadPlatform/pkg/errors"
	"LaunchpadPlatform/pkg/logger"
)

// StatusProber интерфейс статусной проверки через внешний кеш
type StatusProber interface {
	Probe(ctx context.Context) (string, error)
}

// welcomeMessage сообщение на стартовой странице
const welcomeMessage = "Your new application is ready."

// indexTemplate шаблон стартовой страницы
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <title>Welcome</title>
</head>
<body>
    <h1>{{.Message}}</h1>
</body>
</html>
`))

// HTTPHandler обрабатывает HTTP запросы веб-сервиса
type HTTPHandler struct {
	logger logger.Logger
	prober StatusProber
}

// NewHTTPHandler создает новый HTTP обработчик
func NewHTTPHandler(log logger.Logger, prober StatusProber) *HTTPHandler {
	return &HTTPHandler{
		logger: log,
		prober: prober,
	}
}

// RegisterRoutes регистрирует HTTP маршруты
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/status", h.handleStatus)
}

// handleIndex отдает стартовую страницу
func (h *HTTPHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	// ServeMux отдает "/" для всех несовпавших путей
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ Message string }{Message: welcomeMessage}); err != nil {
		h.logger.Error("Failed to render index page", logger.Error(err))
	}
}

// handleStatus пишет статусную запись в кеш, читает ее обратно и
// возвращает прочитанное значение как plain text
func (h *HTTPHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	message, err := h.prober.Probe(r.Context())
	if err != nil {
		h.logger.Error("Status probe failed", logger.Error(err))

		appErr := errors.Wrap(err, errors.ErrCacheUnavailable, "status probe failed")
		if coded, ok := err.(*errors.Error); ok {
			appErr = coded
		}
		errors.SendError(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(message))
}
