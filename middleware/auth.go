// middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/store"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/utils"
)

type contextKey string

const actorKey contextKey = "actor"

// ActorFromContext returns the authenticated actor resolved by Auth.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(models.Actor)
	return actor, ok
}

// Auth validates the bearer token and resolves the account into an
// explicit models.Actor in the request context. The workflow core never
// reads ambient session state; it receives this actor as a parameter.
func Auth(users *store.UserStore) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// WebSocket upgrades authenticate inside the handler.
			if r.Header.Get("Upgrade") == "websocket" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := utils.ValidateJWT(tokenString)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID in token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				log.Printf("Auth: user %s not found: %v", claims.UserID, err)
				utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
				return
			}

			if !user.Role.Valid() {
				utils.RespondWithError(w, http.StatusForbidden, "Account has no portal role")
				return
			}
			if user.Role == models.RoleClient && user.OrganizationID.IsZero() {
				utils.RespondWithError(w, http.StatusForbidden, "Client account has no organization")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, user.Actor())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
