package middleware

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/pkg/auth"
	"github.com/shashiranjanraj/boutique/pkg/logger"
	"github.com/shashiranjanraj/boutique/pkg/response"
)

// Auth requires a valid access token and stores its user id in the request
// context for auth.UserIDFromCtx. The request logger is tagged with the id.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			response.Unauthorized(w, "No token, authorization denied")
			return
		}

		claims, err := auth.ValidateKind(token, auth.KindAccess)
		if err != nil {
			response.Unauthorized(w, "Token is not valid")
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			response.Unauthorized(w, "Token is not valid")
			return
		}

		ctx := auth.WithUserID(r.Context(), userID)
		ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With("user_id", claims.UserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
