package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	adminCookieName = "feedcalc_admin"
	adminTokenTTL   = 12 * time.Hour
)

// ErrInvalidToken возвращается для неверного или просроченного токена администратора.
var ErrInvalidToken = errors.New("invalid admin token")

type adminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AdminAuth выдаёт и проверяет токен администратора (JWT HS256) в HttpOnly cookie.
type AdminAuth struct {
	secretKey []byte
	now       func() time.Time
}

// NewAdminAuth создаёт проверку токенов администратора. Пустой секрет заменяется случайным ключом.
func NewAdminAuth(secret string) *AdminAuth {
	return &AdminAuth{secretKey: secretOrRandom(secret), now: time.Now}
}

// IssueToken подписывает токен администратора для email.
func (a *AdminAuth) IssueToken(email string) (string, error) {
	now := a.now()
	claims := &adminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return token, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает email администратора.
func (a *AdminAuth) ParseToken(token string) (string, error) {
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.Email, nil
}

// SetAdminCookie выдаёт cookie с токеном администратора.
func (a *AdminAuth) SetAdminCookie(w http.ResponseWriter, email string) error {
	token, err := a.IssueToken(email)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  a.now().Add(adminTokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// ClearAdminCookie удаляет cookie администратора.
func (a *AdminAuth) ClearAdminCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Middleware пропускает только запросы с действительным токеном администратора.
func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		email, err := a.ParseToken(cookie.Value)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), adminKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminEmail извлекает email администратора из контекста запроса.
func GetAdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminKey).(string)
	return email, ok
}
