package api

import (
	"net/http"
)

// NewRouter registers the transcription endpoints under the configured API
// prefix and applies global middleware.
func NewRouter(h *Handler, prefix string, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+prefix+"/transcribe", h.Transcribe)
	mux.HandleFunc("GET "+prefix+"/status/{id}", h.Status)
	mux.HandleFunc("GET "+prefix+"/download/{filename}", h.Download)
	mux.HandleFunc("GET "+prefix+"/events", h.Events)

	return CORSMiddleware(mux, allowedOrigins)
}
