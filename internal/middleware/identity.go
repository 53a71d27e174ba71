package middleware

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"subsmanager-miniapp/internal/errors"
	"subsmanager-miniapp/internal/handlers"
	"subsmanager-miniapp/internal/models"
	"subsmanager-miniapp/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	// InitDataHeader carries the host launch parameters on fetches made by the page
	InitDataHeader = "X-Telegram-Init-Data"
	// InitDataQueryParam is how the host passes launch parameters on first open
	InitDataQueryParam = handlers.LaunchParamsQueryParam
	// InitDataFormField lets a form post re-send the launch parameters
	InitDataFormField = "init_data"
	// UserIDQueryParam is the unverified identity fallback
	UserIDQueryParam = "user_id"
)

const (
	identitySourceSession = "session"

	identityResultOK      = "ok"
	identityResultInvalid = "invalid"
	identityResultExpired = "expired"
	identityResultDenied  = "denied"
	identityResultMissing = "missing"
)

// IdentityConfig wires the identity middleware
type IdentityConfig struct {
	InitData         services.InitDataServiceInterface
	Tokens           services.TokenServiceInterface
	Metrics          services.MetricsRecorderInterface
	Logger           *slog.Logger
	CookieName       string
	AllowQueryUserID bool
	// SecureCookie marks the session cookie Secure and SameSite=None so it
	// survives inside the host's iframe.
	SecureCookie bool
}

// Identity resolves the host user for every request, in order: signed init
// data, a host session cookie, the user_id query parameter, then a session
// cookie minted from a query identity. The last two only count when
// AllowQueryUserID is set. A fresh session cookie is issued whenever init data
// or the query parameter resolved the user.
func Identity(cfg IdentityConfig) echo.MiddlewareFunc {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	r := &identityResolver{IdentityConfig: cfg}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, code, ok := r.resolve(c)
			if !ok {
				return handlers.SendError(c, code)
			}
			c.Set(handlers.HostUserContextKey, user)
			return next(c)
		}
	}
}

type identityResolver struct {
	IdentityConfig
}

func (r *identityResolver) resolve(c echo.Context) (models.HostUser, errors.ErrorCode, bool) {
	if initData := initDataFrom(c); initData != "" {
		user, err := r.InitData.Validate(initData)
		if err != nil {
			result, code := identityResultInvalid, errors.AuthInvalidInitData
			if stderrors.Is(err, services.ErrInitDataExpired) {
				result, code = identityResultExpired, errors.AuthExpiredInitData
			}
			r.record(string(models.IdentitySourceHost), result)
			r.Logger.Warn("Rejected host init data",
				"trace_id", GetTraceID(c),
				"error", err.Error(),
			)
			return models.HostUser{}, code, false
		}
		r.record(string(models.IdentitySourceHost), identityResultOK)
		r.issueCookie(c, *user)
		return *user, "", true
	}

	claims, cookieErr := r.sessionClaims(c)
	if claims != nil && claims.Source == models.IdentitySourceHost {
		r.record(identitySourceSession, identityResultOK)
		return claims.HostUser(), "", true
	}

	if raw := c.QueryParam(UserIDQueryParam); raw != "" {
		if !r.AllowQueryUserID {
			r.record(string(models.IdentitySourceQuery), identityResultDenied)
			return models.HostUser{}, errors.AuthQueryIdentityDenied, false
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			r.record(string(models.IdentitySourceQuery), identityResultInvalid)
			return models.HostUser{}, errors.AuthMissingIdentity, false
		}
		user := models.HostUser{ID: id, Source: models.IdentitySourceQuery}
		if claims != nil && claims.UserID == id {
			user.FirstName = claims.FirstName
		}
		r.record(string(models.IdentitySourceQuery), identityResultOK)
		r.issueCookie(c, user)
		return user, "", true
	}

	if claims != nil && r.AllowQueryUserID {
		r.record(identitySourceSession, identityResultOK)
		return claims.HostUser(), "", true
	}

	if cookieErr != nil {
		r.clearCookie(c)
		if stderrors.Is(cookieErr, services.ErrExpiredToken) {
			r.record(identitySourceSession, identityResultExpired)
			return models.HostUser{}, errors.AuthExpiredSession, false
		}
		r.record(identitySourceSession, identityResultInvalid)
		return models.HostUser{}, errors.AuthInvalidSession, false
	}

	r.record("none", identityResultMissing)
	return models.HostUser{}, errors.AuthMissingIdentity, false
}

// sessionClaims returns nil claims and nil error when no cookie was sent
func (r *identityResolver) sessionClaims(c echo.Context) (*models.SessionClaims, error) {
	cookie, err := c.Cookie(r.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return r.Tokens.Validate(cookie.Value)
}

func (r *identityResolver) issueCookie(c echo.Context, user models.HostUser) {
	token, expiresAt, err := r.Tokens.Issue(user)
	if err != nil {
		r.Logger.Error("Failed to issue session token",
			"trace_id", GetTraceID(c),
			"user_id", user.ID,
			"error", err.Error(),
		)
		return
	}
	cookie := r.newCookie(token)
	cookie.Expires = expiresAt
	c.SetCookie(cookie)
}

func (r *identityResolver) clearCookie(c echo.Context) {
	cookie := r.newCookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
}

func (r *identityResolver) newCookie(value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     r.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if r.SecureCookie {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func (r *identityResolver) record(source, result string) {
	if r.Metrics == nil {
		return
	}
	r.Metrics.IncrementCounter(services.MetricIdentityResolved, map[string]string{
		"source": source,
		"result": result,
	})
}

func initDataFrom(c echo.Context) string {
	if v := c.Request().Header.Get(InitDataHeader); v != "" {
		return v
	}
	if v := c.QueryParam(InitDataQueryParam); v != "" {
		return v
	}
	if c.Request().Method == http.MethodPost {
		return c.FormValue(InitDataFormField)
	}
	return ""
}
