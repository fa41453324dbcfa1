package middleware

import (
	"context"
	"net/http"

	"hospital-admin/pkg/jwt"
	"hospital-admin/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const SessionIDKey contextKey = "session_id"

// SessionMiddleware binds every request to a form session carried in a
// signed cookie. Requests without a valid cookie start a new session.
type SessionMiddleware struct {
	jwtService *jwt.JWTService
	cookieName string
	secure     bool
	log        *logrus.Logger
}

func NewSessionMiddleware(jwtService *jwt.JWTService, cookieName string, secure bool, log *logrus.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
		secure:     secure,
		log:        log,
	}
}

func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			if claims, err := m.jwtService.ValidateToken(cookie.Value); err == nil {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			id, token, err := m.jwtService.GenerateSessionToken()
			if err != nil {
				m.log.Warnf("Failed to issue session token: %+v", err)
				response.InternalServerError(w, "Failed to start session")
				return
			}
			sessionID = id
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(m.jwtService.GetSessionTTL().Seconds()),
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionIDFromContext extracts the form session id from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}
