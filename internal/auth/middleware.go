package auth

import (
	"context"
	"net/http"
	"strings"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/utils"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// ClaimsFromContext returns the claims stored by the middleware, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// Protected verifies the bearer token and stores its claims on the request
// context. When roles are given, the token must carry one of them.
func Protected(tm *TokenManager, next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			ae := utils.ApiError{StatusCode: http.StatusUnauthorized, Msg: "missing bearer token"}
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		claims, err := tm.Verify(token)
		if err != nil {
			ae := utils.ApiError{StatusCode: http.StatusUnauthorized, Msg: models.ErrInvalidToken.Error()}
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			ae := utils.ApiError{StatusCode: http.StatusForbidden, Msg: "insufficient role"}
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func hasRole(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
