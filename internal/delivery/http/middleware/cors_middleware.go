package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORSMiddleware answers preflights for the admin API. A "*" entry allows
// any origin but never with credentials, so the session cookie only crosses
// origins that are listed explicitly.
type CORSMiddleware struct {
	handler func(http.Handler) http.Handler
}

func NewCORSMiddleware(allowedOrigins ...string) *CORSMiddleware {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return &CORSMiddleware{
		handler: cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: !slices.Contains(allowedOrigins, "*"),
			MaxAge:           300,
		}),
	}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return m.handler(next)
}
