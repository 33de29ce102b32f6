package middleware

import (
	"encoding/gob"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/pkg/config"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// ContextIdentityKey stores the resolved models.Identity in the gin context.
const ContextIdentityKey = "portal.identity"

// Session keys written at login.
const (
	SessionKeyUserID = "user_id"
	SessionKeyEmail  = "user_email"
	SessionKeyName   = "user_name"
	SessionKeyRole   = "user_role"
)

// Redirect targets for rejected requests.
const (
	LoginPath     = "/"
	DashboardPath = "/dashboard"
)

func init() {
	gob.Register(Flash{})
}

// NewSessionStore builds the cookie or memory session store for cfg.
func NewSessionStore(cfg config.SessionConfig) sessions.Store {
	secret := []byte(cfg.Secret)

	var store sessions.Store
	switch cfg.Backend {
	case config.SessionBackendMemory:
		store = memstore.NewStore(secret)
	default:
		store = cookie.NewStore(secret)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: cfg.HTTPOnly,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Sessions attaches the named session to every request.
func Sessions(cfg config.SessionConfig) gin.HandlerFunc {
	name := cfg.Name
	if name == "" {
		name = "session"
	}
	return sessions.Sessions(name, NewSessionStore(cfg))
}

// StartSession replaces the session contents with the identity of user.
func StartSession(c *gin.Context, user models.User) error {
	identity := models.IdentityOf(user)
	session := sessions.Default(c)
	session.Clear()
	session.Set(SessionKeyUserID, identity.UserID)
	session.Set(SessionKeyEmail, identity.Email)
	session.Set(SessionKeyName, identity.Name)
	session.Set(SessionKeyRole, string(identity.Role))
	return session.Save()
}

// EndSession drops every session value, pending flashes included.
func EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// SessionIdentity resolves the identity stored in the session. A session
// without an email is anonymous.
func SessionIdentity(c *gin.Context) (*models.Identity, bool) {
	session := sessions.Default(c)
	email, ok := session.Get(SessionKeyEmail).(string)
	if !ok || email == "" {
		return nil, false
	}
	id, _ := session.Get(SessionKeyUserID).(int)
	name, _ := session.Get(SessionKeyName).(string)
	role, _ := session.Get(SessionKeyRole).(string)
	return &models.Identity{UserID: id, Email: email, Name: name, Role: models.UserRole(role)}, true
}

// Authorize decides whether identity may proceed. A nil identity needs to log
// in; an identity outside roles is a mismatch. No roles means any session.
func Authorize(identity *models.Identity, roles ...models.UserRole) error {
	if identity == nil {
		return appErrors.ErrAuthRequired
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if identity.Role == r {
			return nil
		}
	}
	return appErrors.ErrRoleMismatch
}

// RequireSession gates a route on a session and, optionally, a role. Missing
// sessions are sent to the login view with a warning flash; role mismatches
// go back to the dashboard silently.
func RequireSession(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := SessionIdentity(c)
		switch err := Authorize(identity, roles...); {
		case err == nil:
			c.Set(ContextIdentityKey, *identity)
			c.Next()
		case errors.Is(err, appErrors.ErrAuthRequired):
			AddFlash(c, FlashWarning, appErrors.ErrAuthRequired.Message)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
		default:
			c.Redirect(http.StatusFound, DashboardPath)
			c.Abort()
		}
	}
}

// IdentityFromContext returns the identity set by RequireSession.
func IdentityFromContext(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}
