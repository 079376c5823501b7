package http

import (
	"net/http"

	"github.com/lexdesk/claimsync/pkg/domain/model/api"
	"github.com/lexdesk/claimsync/pkg/usecase/backend"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
)

// actorMiddleware attributes the request to the agent named in the user
// headers. Requests without them act as the system.
func actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(api.UserHeader)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := backend.WithActor(r.Context(), backend.Actor{
			ID:   userID,
			Name: r.Header.Get(api.UserNameHeader),
		})
		ctx = logging.With(ctx, logging.From(ctx).With("user_id", userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
