// Package middleware содержит HTTP middleware сервиса расчётов.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	sessionIDKey contextKey = "sessionID"
	requestIDKey contextKey = "requestID"
	adminKey     contextKey = "admin"
)

const (
	sessionCookieName = "feedcalc_session"
	sessionCookieTTL  = 30 * 24 * time.Hour
)

// SessionMiddleware привязывает запрос к сессии корзины по подписанному cookie.
// Запрос без cookie или с неверной подписью получает новую сессию.
type SessionMiddleware struct {
	secretKey []byte
}

// NewSessionMiddleware создаёт middleware сессий. Пустой секрет заменяется случайным ключом.
func NewSessionMiddleware(secret string) *SessionMiddleware {
	return &SessionMiddleware{secretKey: secretOrRandom(secret)}
}

func secretOrRandom(secret string) []byte {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}
	return key
}

// Middleware добавляет идентификатор сессии в контекст запроса, при необходимости выдавая новый cookie.
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := "", false
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			sessionID, ok = m.parseCookie(cookie.Value)
		}

		if !ok {
			sessionID = uuid.NewString()
			m.setCookie(w, sessionID)
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) setCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID + "." + m.sign(sessionID),
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionMiddleware) sign(sessionID string) string {
	mac := hmac.New(sha256.New, m.secretKey)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (m *SessionMiddleware) parseCookie(value string) (string, bool) {
	sessionID, signature, found := strings.Cut(value, ".")
	if !found || sessionID == "" {
		return "", false
	}

	if !hmac.Equal([]byte(signature), []byte(m.sign(sessionID))) {
		return "", false
	}

	if _, err := uuid.Parse(sessionID); err != nil {
		return "", false
	}

	return sessionID, true
}

// GetSessionID извлекает идентификатор сессии из контекста запроса.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}
