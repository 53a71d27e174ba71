package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"subsmanager-miniapp/internal/handlers"
	"subsmanager-miniapp/internal/models"
	"subsmanager-miniapp/internal/services"
	"subsmanager-miniapp/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

const testCookieName = "miniapp_session"

type IdentityTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	initData *service_mocks.MockInitDataServiceInterface
	tokens   *service_mocks.MockTokenServiceInterface
	metrics  *service_mocks.MockMetricsRecorderInterface
	echo     *echo.Echo
	resolved *models.HostUser
}

func TestIdentityTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityTestSuite))
}

func (s *IdentityTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.initData = service_mocks.NewMockInitDataServiceInterface(s.ctrl)
	s.tokens = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.echo = echo.New()
	s.resolved = nil
}

func (s *IdentityTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *IdentityTestSuite) serve(allowQuery bool, req *http.Request) *httptest.ResponseRecorder {
	mw := Identity(IdentityConfig{
		InitData:         s.initData,
		Tokens:           s.tokens,
		Metrics:          s.metrics,
		CookieName:       testCookieName,
		AllowQueryUserID: allowQuery,
	})
	handler := mw(func(c echo.Context) error {
		user, ok := handlers.HostUserFromContext(c)
		s.Require().True(ok)
		s.resolved = &user
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	_ = handler(s.echo.NewContext(req, rec))
	return rec
}

func (s *IdentityTestSuite) expectMetric(source, result string) {
	s.metrics.EXPECT().IncrementCounter(services.MetricIdentityResolved, map[string]string{
		"source": source,
		"result": result,
	})
}

func (s *IdentityTestSuite) sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == testCookieName {
			return cookie
		}
	}
	return nil
}

func (s *IdentityTestSuite) TestInitDataHeader_ResolvesAndIssuesCookie() {
	user := &models.HostUser{ID: 42, FirstName: "Анна", Source: models.IdentitySourceHost}
	s.initData.EXPECT().Validate("signed-init-data").Return(user, nil)
	s.tokens.EXPECT().Issue(*user).Return("session-token", time.Now().Add(time.Hour), nil)
	s.expectMetric("host", "ok")

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set(InitDataHeader, "signed-init-data")
	rec := s.serve(false, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(s.resolved)
	s.Equal(*user, *s.resolved)

	cookie := s.sessionCookie(rec)
	s.Require().NotNil(cookie)
	s.Equal("session-token", cookie.Value)
	s.True(cookie.HttpOnly)
}

func (s *IdentityTestSuite) TestInitDataQueryParam() {
	user := &models.HostUser{ID: 7, Source: models.IdentitySourceHost}
	s.initData.EXPECT().Validate("from-query").Return(user, nil)
	s.tokens.EXPECT().Issue(*user).Return("t", time.Now().Add(time.Hour), nil)
	s.expectMetric("host", "ok")

	req := httptest.NewRequest(http.MethodGet, "/app?"+InitDataQueryParam+"=from-query", nil)
	rec := s.serve(false, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(int64(7), s.resolved.ID)
}

func (s *IdentityTestSuite) TestInitDataFormField() {
	user := &models.HostUser{ID: 8, Source: models.IdentitySourceHost}
	s.initData.EXPECT().Validate("from-form").Return(user, nil)
	s.tokens.EXPECT().Issue(*user).Return("t", time.Now().Add(time.Hour), nil)
	s.expectMetric("host", "ok")

	form := url.Values{InitDataFormField: {"from-form"}}
	req := httptest.NewRequest(http.MethodPost, "/app/reload", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := s.serve(false, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(int64(8), s.resolved.ID)
}

func (s *IdentityTestSuite) TestInitDataInvalid() {
	s.initData.EXPECT().Validate("forged").Return(nil, services.ErrInitDataSignature)
	s.expectMetric("host", "invalid")

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set(InitDataHeader, "forged")
	rec := s.serve(true, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_002")
	s.Nil(s.resolved)
}

func (s *IdentityTestSuite) TestInitDataExpired() {
	s.initData.EXPECT().Validate("stale").Return(nil, services.ErrInitDataExpired)
	s.expectMetric("host", "expired")

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set(InitDataHeader, "stale")
	rec := s.serve(false, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_003")
}

func (s *IdentityTestSuite) TestHostSessionCookie() {
	claims := &models.SessionClaims{UserID: 42, FirstName: "Анна", Source: models.IdentitySourceHost}
	s.tokens.EXPECT().Validate("good-token").Return(claims, nil)
	s.expectMetric("session", "ok")

	req := httptest.NewRequest(http.MethodPost, "/app/reload", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "good-token"})
	rec := s.serve(false, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(claims.HostUser(), *s.resolved)
	s.Nil(s.sessionCookie(rec))
}

func (s *IdentityTestSuite) TestHostSessionCookieBeatsQueryParam() {
	claims := &models.SessionClaims{UserID: 42, Source: models.IdentitySourceHost}
	s.tokens.EXPECT().Validate("good-token").Return(claims, nil)
	s.expectMetric("session", "ok")

	req := httptest.NewRequest(http.MethodGet, "/app?user_id=99", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "good-token"})
	rec := s.serve(true, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(int64(42), s.resolved.ID)
}

func (s *IdentityTestSuite) TestQueryUserID_Allowed() {
	expected := models.HostUser{ID: 99, Source: models.IdentitySourceQuery}
	s.tokens.EXPECT().Issue(expected).Return("query-token", time.Now().Add(time.Hour), nil)
	s.expectMetric("query", "ok")

	req := httptest.NewRequest(http.MethodGet, "/app?user_id=99", nil)
	rec := s.serve(true, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(expected, *s.resolved)
	s.Require().NotNil(s.sessionCookie(rec))
}

func (s *IdentityTestSuite) TestQueryUserID_Denied() {
	s.expectMetric("query", "denied")

	req := httptest.NewRequest(http.MethodGet, "/app?user_id=99", nil)
	rec := s.serve(false, req)

	s.Equal(http.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_006")
}

func (s *IdentityTestSuite) TestQueryUserID_Malformed() {
	for _, raw := range []string{"abc", "0", "-5"} {
		s.expectMetric("query", "invalid")

		req := httptest.NewRequest(http.MethodGet, "/app?user_id="+raw, nil)
		rec := s.serve(true, req)

		s.Equal(http.StatusUnauthorized, rec.Code, raw)
		s.Contains(rec.Body.String(), "AUTH_001")
	}
}

func (s *IdentityTestSuite) TestQuerySessionCookie_OnlyWhenAllowed() {
	claims := &models.SessionClaims{UserID: 99, Source: models.IdentitySourceQuery}

	s.tokens.EXPECT().Validate("query-token").Return(claims, nil).Times(2)
	s.expectMetric("session", "ok")
	s.expectMetric("none", "missing")

	allowed := httptest.NewRequest(http.MethodGet, "/app", nil)
	allowed.AddCookie(&http.Cookie{Name: testCookieName, Value: "query-token"})
	s.Equal(http.StatusOK, s.serve(true, allowed).Code)
	s.Equal(int64(99), s.resolved.ID)

	s.resolved = nil
	denied := httptest.NewRequest(http.MethodGet, "/app", nil)
	denied.AddCookie(&http.Cookie{Name: testCookieName, Value: "query-token"})
	rec := s.serve(false, denied)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_001")
	s.Nil(s.resolved)
}

func (s *IdentityTestSuite) TestExpiredCookie_ClearedAndRejected() {
	s.tokens.EXPECT().Validate("old-token").Return(nil, services.ErrExpiredToken)
	s.expectMetric("session", "expired")

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "old-token"})
	rec := s.serve(false, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_005")

	cookie := s.sessionCookie(rec)
	s.Require().NotNil(cookie)
	s.Empty(cookie.Value)
	s.Negative(cookie.MaxAge)
}

func (s *IdentityTestSuite) TestInvalidCookie_FallsBackToQuery() {
	expected := models.HostUser{ID: 5, Source: models.IdentitySourceQuery}
	s.tokens.EXPECT().Validate("tampered").Return(nil, services.ErrInvalidToken)
	s.tokens.EXPECT().Issue(expected).Return("fresh", time.Now().Add(time.Hour), nil)
	s.expectMetric("query", "ok")

	req := httptest.NewRequest(http.MethodGet, "/app?user_id=5", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "tampered"})
	rec := s.serve(true, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(expected, *s.resolved)
}

func (s *IdentityTestSuite) TestInvalidCookie_Rejected() {
	s.tokens.EXPECT().Validate("tampered").Return(nil, services.ErrInvalidToken)
	s.expectMetric("session", "invalid")

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "tampered"})
	rec := s.serve(false, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_004")
}

func (s *IdentityTestSuite) TestNoIdentity() {
	s.expectMetric("none", "missing")

	rec := s.serve(true, httptest.NewRequest(http.MethodGet, "/app", nil))

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_001")
}

func (s *IdentityTestSuite) TestSecureCookie() {
	user := &models.HostUser{ID: 42, Source: models.IdentitySourceHost}
	s.initData.EXPECT().Validate("signed").Return(user, nil)
	s.tokens.EXPECT().Issue(*user).Return("t", time.Now().Add(time.Hour), nil)

	mw := Identity(IdentityConfig{
		InitData:     s.initData,
		Tokens:       s.tokens,
		CookieName:   testCookieName,
		SecureCookie: true,
	})
	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set(InitDataHeader, "signed")
	rec := httptest.NewRecorder()
	s.NoError(mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(s.echo.NewContext(req, rec)))

	cookie := s.sessionCookie(rec)
	s.Require().NotNil(cookie)
	s.True(cookie.Secure)
	s.Equal(http.SameSiteNoneMode, cookie.SameSite)
}
