package http

import (
	"context"
	"net/http"

	commonhttp "github.com/techchallenge/vehicle-api/internal/common/http"
	userdomain "github.com/techchallenge/vehicle-api/internal/user/domain"
)

type userContextKey struct{}

type Authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (userdomain.User, error)
}

// RequireUser lets a request through only when its bearer token resolves to an
// active user, which later handlers read back with UserFromContext.
func RequireUser(auth Authenticator, errs *commonhttp.ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				errs.HandleError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromContext(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(userdomain.User)
	return user, ok
}
