// Package restapi exposes the service over HTTP as a JSON API.
package restapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/log"
	"github.com/promptvault/promptvault/internal/service"
)

const identityKey = "promptvault.identity"

// Options configures the router.
type Options struct {
	// GuestMode substitutes the guest sentinel identity when no credential
	// is presented, instead of rejecting with 401.
	GuestMode bool
	Logger    *log.Logger
}

// NewRouter assembles the gin engine with every resource family mounted.
func NewRouter(svc *service.Service, verifier auth.Verifier, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Logger.Level() >= log.Basic {
		r.Use(gin.Logger())
	}

	NewHealthHandler(r, svc)
	NewPublicHandler(r, svc)

	authed := r.Group("/", identityMiddleware(verifier, opts.GuestMode))
	NewCategoriesHandler(authed, svc)
	NewPromptsHandler(authed, svc)
	NewSkillsHandler(authed, svc)
	NewTagsHandler(authed, svc)
	NewTransferHandler(authed, svc)

	return r
}

// identityMiddleware resolves the caller before any handler runs. The
// bearer header wins; a session cookie is the fallback.
func identityMiddleware(verifier auth.Verifier, guestMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie("pv_session"); err == nil {
				token = cookie
			}
		}

		if token == "" {
			if guestMode {
				c.Set(identityKey, auth.GuestIdentity())
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrTimeout) {
				c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"error": "identity provider timed out"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// caller returns the identity resolved by the middleware.
func caller(c *gin.Context) auth.Identity {
	v, _ := c.Get(identityKey)
	identity, _ := v.(auth.Identity)
	return identity
}

// respondError maps service errors onto the API's status codes. Unexpected
// errors are logged server-side and surface as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, auth.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "upstream timed out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
