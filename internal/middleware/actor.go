package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

const actorKey = contextKey("actor")

// Header names the frontend uses to identify who is acting. The deployment
// sits behind the business owner's own infrastructure, so these are trusted
// as-is; an absent header simply yields an anonymous actor in the audit log.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

// ActorMiddleware extracts the acting user from the request headers and
// stores it in the request context for activity logging.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := domain.Actor{
			UserID:    c.GetHeader(HeaderUserID),
			UserEmail: c.GetHeader(HeaderUserEmail),
		}
		ctx := context.WithValue(c.Request.Context(), actorKey, actor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetActorFromCtx retrieves the acting user from a plain context. A context
// without an actor yields the zero Actor.
func GetActorFromCtx(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorKey).(domain.Actor); ok {
		return actor
	}
	return domain.Actor{}
}

// GetActorFromContext retrieves the acting user from the Gin context.
func GetActorFromContext(c *gin.Context) domain.Actor {
	return GetActorFromCtx(c.Request.Context())
}
