package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Raorakshith/smartparking/internal/api/handlers"
	"github.com/Raorakshith/smartparking/internal/domain"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"

	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный или просроченный токен"
	msgForbidden    = "недостаточно прав"
)

var (
	ErrMissingSubject = errors.New("middleware: token has no subject")
	ErrInvalidRole    = errors.New("middleware: token has invalid role")
)

type contextKey string

const identityKey contextKey = "identity"

// Claims полезная нагрузка токена внешнего провайдера аутентификации
// sub - ID пользователя, role - user | admin
type Claims struct {
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Identity аутентифицированный пользователь запроса
type Identity struct {
	UserID string
	Role   domain.Role
	Name   string
	Email  string
}

// WithIdentity кладет пользователя в контекст
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func GetUserID(ctx context.Context) (string, bool) {
	id, ok := GetIdentity(ctx)
	if !ok || id.UserID == "" {
		return "", false
	}
	return id.UserID, true
}

func IsAdmin(ctx context.Context) bool {
	id, ok := GetIdentity(ctx)
	return ok && id.Role == domain.RoleAdmin
}

// Auth проверяет bearer JWT (HS256) и кладет Identity в контекст
func Auth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(authorizationHeader)
			fields := strings.Fields(header)
			if len(fields) != 2 || !strings.EqualFold(fields[0], bearerPrefix) {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			identity, err := ParseToken(fields[1], key)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// ParseToken проверяет подпись и срок действия токена
func ParseToken(token string, key []byte) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}

	if claims.Subject == "" {
		return Identity{}, ErrMissingSubject
	}

	// Токен без роли - обычный пользователь
	role := domain.RoleUser
	if claims.Role != "" {
		role, err = domain.ParseRole(claims.Role)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: %q", ErrInvalidRole, claims.Role)
		}
	}

	return Identity{
		UserID: claims.Subject,
		Role:   role,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}

// RequireRole пропускает только пользователей с одной из ролей
// Должен стоять после Auth
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetIdentity(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}
