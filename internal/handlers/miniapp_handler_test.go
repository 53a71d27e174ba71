package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"subsmanager-miniapp/internal/dto"
	"subsmanager-miniapp/internal/format"
	"subsmanager-miniapp/internal/models"
	"subsmanager-miniapp/internal/render"
	"subsmanager-miniapp/internal/services"
	"subsmanager-miniapp/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type MiniAppHandlerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	dashboard *service_mocks.MockDashboardServiceInterface
	journal   *service_mocks.MockActionJournalInterface
	registry  *prometheus.Registry
	store     services.StateStoreInterface
	handler   *MiniAppHandler
	echo      *echo.Echo
	user      models.HostUser
	ctx       context.Context
}

func TestMiniAppHandlerSuite(t *testing.T) {
	suite.Run(t, new(MiniAppHandlerTestSuite))
}

func (s *MiniAppHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.dashboard = service_mocks.NewMockDashboardServiceInterface(s.ctrl)
	s.journal = service_mocks.NewMockActionJournalInterface(s.ctrl)
	s.registry = prometheus.NewRegistry()
	metrics := services.NewPrometheusMetricsWithRegistry(s.registry)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = services.NewStateStore(nil, logger)
	s.handler = NewMiniAppHandler(s.dashboard, s.store, s.journal, metrics, format.MustNew("ru-RU", "₽"), logger)
	s.user = models.HostUser{ID: int64(gofakeit.IntRange(1, 1<<40)), FirstName: "Анна", Source: models.IdentitySourceHost}
	s.ctx = context.Background()

	renderer, err := render.New()
	s.Require().NoError(err)

	s.echo = echo.New()
	s.echo.Renderer = renderer
	s.echo.Validator = NewValidator()
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(HostUserContextKey, s.user)
			return next(c)
		}
	})
	s.handler.RegisterRoutes(s.echo.Group("/app"))
}

func (s *MiniAppHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// do sends a request as the app's own page would, with a Referer under /app
func (s *MiniAppHandlerTestSuite) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	return s.send(method, target, form, "http://example.com/app")
}

// open sends a request the way the host opens the app, without a Referer
func (s *MiniAppHandlerTestSuite) open(target string) *httptest.ResponseRecorder {
	return s.send(http.MethodGet, target, nil, "")
}

func (s *MiniAppHandlerTestSuite) send(method, target string, form url.Values, referer string) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *MiniAppHandlerTestSuite) seed(subs ...models.Subscription) {
	_, generation, cancel := s.store.BeginLoad(s.ctx, s.user)
	defer cancel()
	s.store.ApplyLoad(s.ctx, s.user, generation, func(state *models.ViewState) {
		state.ApplySubscriptions(subs)
		state.Loaded = true
	})
}

func (s *MiniAppHandlerTestSuite) state() models.ViewState {
	var snapshot models.ViewState
	_ = s.store.Update(s.ctx, s.user, func(state *models.ViewState) error {
		snapshot = *state
		return nil
	})
	return snapshot
}

func (s *MiniAppHandlerTestSuite) uiActions(action string) float64 {
	families, err := s.registry.Gather()
	s.Require().NoError(err)
	for _, family := range families {
		if family.GetName() != "miniapp_ui_actions_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "action" && label.GetValue() == action {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func subscription(id int64, name string) models.Subscription {
	return models.Subscription{
		ID:           id,
		Name:         name,
		Price:        decimal.NewFromInt(299),
		BillingCycle: models.BillingCycleMonthly,
		Category:     models.CategoryStreaming,
		Status:       models.SubscriptionStatusActive,
	}
}

func (s *MiniAppHandlerTestSuite) assertRedirect(rec *httptest.ResponseRecorder) {
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/app", rec.Header().Get(echo.HeaderLocation))
}

func (s *MiniAppHandlerTestSuite) TestIndex_LoadsOnFirstOpen() {
	s.dashboard.EXPECT().Load(gomock.Any(), s.user).DoAndReturn(
		func(ctx context.Context, user models.HostUser) models.LoadResult {
			s.seed(subscription(1, "Netflix"))
			return models.LoadResult{Generation: 1, Applied: true}
		})

	rec := s.do(http.MethodGet, "/app", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentType), "text/html")
	s.Contains(rec.Body.String(), "Netflix")
	s.Contains(rec.Body.String(), "Анна")
}

func (s *MiniAppHandlerTestSuite) TestIndex_SkipsLoadAfterOwnRedirect() {
	s.seed(subscription(1, "Spotify"))

	rec := s.do(http.MethodGet, "/app", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Spotify")
}

func (s *MiniAppHandlerTestSuite) TestIndex_ReloadsWhenAppReopened() {
	s.seed(subscription(1, "Spotify"))
	s.dashboard.EXPECT().Load(gomock.Any(), s.user).DoAndReturn(
		func(ctx context.Context, user models.HostUser) models.LoadResult {
			s.seed(subscription(1, "Spotify"), subscription(2, "Яндекс Плюс"))
			return models.LoadResult{Generation: 2, Applied: true}
		})

	rec := s.open("/app")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Яндекс Плюс")
}

func (s *MiniAppHandlerTestSuite) TestIndex_ReloadsWithLaunchParams() {
	s.seed(subscription(1, "Spotify"))
	s.dashboard.EXPECT().Load(gomock.Any(), s.user).Return(models.LoadResult{Generation: 2, Applied: true})

	rec := s.do(http.MethodGet, "/app?"+LaunchParamsQueryParam+"=query_id%3D1", nil)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *MiniAppHandlerTestSuite) TestIndex_ReloadsFromForeignReferer() {
	s.seed(subscription(1, "Spotify"))
	s.dashboard.EXPECT().Load(gomock.Any(), s.user).Return(models.LoadResult{Generation: 2, Applied: true})

	rec := s.send(http.MethodGet, "/app", nil, "https://web.telegram.org/k/")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *MiniAppHandlerTestSuite) TestIndex_RetriesAfterFailedLoad() {
	s.dashboard.EXPECT().Load(gomock.Any(), s.user).Return(models.LoadResult{
		Generation: 1,
		Applied:    true,
		Failed:     []string{services.OpFetchSubscriptions},
	}).Times(2)

	first := s.do(http.MethodGet, "/app", nil)
	second := s.do(http.MethodGet, "/app", nil)

	s.Equal(http.StatusOK, first.Code)
	s.Equal(http.StatusOK, second.Code)
	s.False(s.state().Loaded)
}

func (s *MiniAppHandlerTestSuite) TestIndex_AppliesThemeAndConsumesOneShots() {
	s.seed()
	_ = s.store.Update(s.ctx, s.user, func(state *models.ViewState) error {
		state.Notify(models.NotificationSuccess, "Подписка удалена")
		state.Bridge.Haptic = models.HapticSuccess
		return nil
	})

	theme := url.QueryEscape(`{"bg_color":"#101010","text_color":"red","button_color":5}`)
	rec := s.do(http.MethodGet, "/app?color_scheme=dark&theme="+theme, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "Подписка удалена")
	s.Contains(body, "notification:success")

	state := s.state()
	s.Equal("dark", state.Bridge.ColorScheme)
	s.Equal(map[string]string{"--bg-primary": "#101010"}, state.Bridge.Palette)
	s.Empty(state.Notifications)
	s.Equal(models.HapticNone, state.Bridge.Haptic)
}

func (s *MiniAppHandlerTestSuite) TestIndex_RequiresUser() {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	rec := httptest.NewRecorder()

	s.NoError(s.handler.Index(e.NewContext(req, rec)))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_001")
}

func (s *MiniAppHandlerTestSuite) TestReload() {
	s.dashboard.EXPECT().Load(gomock.Any(), s.user).Return(models.LoadResult{Applied: true})

	rec := s.do(http.MethodPost, "/app/reload", url.Values{})

	s.assertRedirect(rec)
	s.Equal(float64(1), s.uiActions(actionReload))
}

func (s *MiniAppHandlerTestSuite) TestReload_QueryIdentityKeepsUserID() {
	s.user = models.HostUser{ID: 77, Source: models.IdentitySourceQuery}
	s.dashboard.EXPECT().Load(gomock.Any(), s.user).Return(models.LoadResult{Applied: true})

	rec := s.do(http.MethodPost, "/app/reload", url.Values{})

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/app?user_id=77", rec.Header().Get(echo.HeaderLocation))
}

func (s *MiniAppHandlerTestSuite) TestSwitchTab() {
	s.seed()
	s.journal.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, entry *models.ActionLog) {
		s.Equal(models.ActionTabSwitched, entry.Action)
		s.Equal("analytics", entry.Metadata["tab"])
		s.Equal(s.user.ID, entry.UserID)
	})

	rec := s.do(http.MethodPost, "/app/tabs/analytics", url.Values{})

	s.assertRedirect(rec)
	state := s.state()
	s.Equal(models.TabAnalytics, state.CurrentTab)
	s.Equal(models.HapticSelectionChanged, state.Bridge.Haptic)
}

func (s *MiniAppHandlerTestSuite) TestSwitchTab_Unknown() {
	rec := s.do(http.MethodPost, "/app/tabs/settings", url.Values{})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_004")
	s.Equal(models.TabSubscriptions, s.state().CurrentTab)
}

func (s *MiniAppHandlerTestSuite) TestOpenAndCloseAddForm() {
	rec := s.do(http.MethodPost, "/app/subscriptions/new", url.Values{})
	s.assertRedirect(rec)
	s.True(s.state().AddFormOpen)

	rec = s.do(http.MethodPost, "/app/modals/close", url.Values{})
	s.assertRedirect(rec)
	s.False(s.state().AddFormOpen)
}

func (s *MiniAppHandlerTestSuite) TestCreateSubscription_Valid() {
	s.dashboard.EXPECT().AddSubscription(gomock.Any(), s.user, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ models.HostUser, form *dto.AddSubscriptionForm) error {
			s.Equal("Netflix", form.Name)
			s.Equal("799.50", form.Price)
			s.Equal("yearly", form.BillingCycle)
			s.True(form.IsTrial)
			s.Equal("2026-12-01", form.TrialEndDate)
			return nil
		})

	rec := s.do(http.MethodPost, "/app/subscriptions", url.Values{
		"name":           {"  Netflix "},
		"price":          {"799,50"},
		"billing_cycle":  {"yearly"},
		"category":       {"streaming"},
		"is_trial":       {"true"},
		"trial_end_date": {"2026-12-01"},
	})

	s.assertRedirect(rec)
	s.Equal(float64(1), s.uiActions(actionSubmitForm))
}

func (s *MiniAppHandlerTestSuite) TestCreateSubscription_InvalidKeepsForm() {
	rec := s.do(http.MethodPost, "/app/subscriptions", url.Values{
		"name":  {"  "},
		"price": {"abc"},
	})

	s.assertRedirect(rec)
	state := s.state()
	s.True(state.AddFormOpen)
	s.Require().NotNil(state.AddForm)
	s.Equal("abc", state.AddForm.Price)
	s.Contains(state.AddForm.Errors, "name")
	s.Contains(state.AddForm.Errors, "price")
	s.Equal(models.HapticError, state.Bridge.Haptic)
}

func (s *MiniAppHandlerTestSuite) TestCreateSubscription_BackendFailureStillRedirects() {
	s.dashboard.EXPECT().AddSubscription(gomock.Any(), s.user, gomock.Any()).Return(errors.New("backend down"))

	rec := s.do(http.MethodPost, "/app/subscriptions", url.Values{
		"name":  {"Netflix"},
		"price": {"799"},
	})

	s.assertRedirect(rec)
}

func (s *MiniAppHandlerTestSuite) TestQuickAdd() {
	s.dashboard.EXPECT().QuickAdd(gomock.Any(), s.user, "kinopoisk").Return(nil)

	rec := s.do(http.MethodPost, "/app/quick-add/kinopoisk", url.Values{})

	s.assertRedirect(rec)
}

func (s *MiniAppHandlerTestSuite) TestQuickAdd_UnknownService() {
	rec := s.do(http.MethodPost, "/app/quick-add/netflix", url.Values{})

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "SUBSCRIPTION_003")
}

func (s *MiniAppHandlerTestSuite) TestShowSubscription() {
	s.seed(subscription(5, "Кинопоиск"))
	s.journal.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, entry *models.ActionLog) {
		s.Equal(models.ActionDetailOpened, entry.Action)
		s.Equal("5", entry.ResourceID)
	})

	rec := s.do(http.MethodPost, "/app/subscriptions/5/select", url.Values{})

	s.assertRedirect(rec)
	state := s.state()
	s.Require().NotNil(state.SelectedID)
	s.Equal(int64(5), *state.SelectedID)
}

func (s *MiniAppHandlerTestSuite) TestShowSubscription_UnknownIsNoOp() {
	s.seed(subscription(5, "Кинопоиск"))

	rec := s.do(http.MethodPost, "/app/subscriptions/6/select", url.Values{})

	s.assertRedirect(rec)
	s.Nil(s.state().SelectedID)
}

func (s *MiniAppHandlerTestSuite) TestStateChangingRoutesRejectGet() {
	for _, target := range []string{"/app/subscriptions/new", "/app/subscriptions/5/select"} {
		rec := s.do(http.MethodGet, target, nil)
		s.NotEqual(http.StatusSeeOther, rec.Code, target)
	}
	s.False(s.state().AddFormOpen)
	s.Nil(s.state().SelectedID)
}

func (s *MiniAppHandlerTestSuite) TestShowSubscription_InvalidID() {
	rec := s.do(http.MethodPost, "/app/subscriptions/abc/select", url.Values{})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "SUBSCRIPTION_002")
}

func (s *MiniAppHandlerTestSuite) TestDelete_AsksForConfirmationFirst() {
	s.seed(subscription(5, "Кинопоиск"))

	rec := s.do(http.MethodPost, "/app/subscriptions/5/delete", url.Values{})

	s.assertRedirect(rec)
	state := s.state()
	s.True(state.DeleteConfirmationFor(5))
	s.Equal(float64(1), s.uiActions(actionDeleteRequest))
}

func (s *MiniAppHandlerTestSuite) TestDelete_Confirmed() {
	s.dashboard.EXPECT().DeleteSubscription(gomock.Any(), s.user, int64(5)).Return(nil)

	rec := s.do(http.MethodPost, "/app/subscriptions/5/delete", url.Values{"confirm": {"yes"}})

	s.assertRedirect(rec)
	s.Equal(float64(1), s.uiActions(actionDeleteConfirm))
}

func (s *MiniAppHandlerTestSuite) TestDelete_UnknownIDIsNoOp() {
	s.dashboard.EXPECT().DeleteSubscription(gomock.Any(), s.user, int64(9)).Return(services.ErrSubscriptionNotFound)

	rec := s.do(http.MethodPost, "/app/subscriptions/9/delete", url.Values{"confirm": {"yes"}})

	s.assertRedirect(rec)
}

func (s *MiniAppHandlerTestSuite) TestEdit_ShowsComingSoon() {
	rec := s.do(http.MethodPost, "/app/subscriptions/5/edit", url.Values{})

	s.assertRedirect(rec)
	notifications := s.state().Notifications
	s.Require().Len(notifications, 1)
	s.Equal(models.NotificationWarning, notifications[0].Kind)
	s.Equal(services.MsgEditComingSoon, notifications[0].Message)
}

func (s *MiniAppHandlerTestSuite) TestViewDuplicates_NotifiesAndCloses() {
	rec := s.do(http.MethodPost, "/app/duplicates/view", url.Values{})

	s.assertRedirect(rec)
	state := s.state()
	s.True(state.Bridge.CloseRequested)
	s.Require().Len(state.Notifications, 1)
	s.Equal(services.MsgDuplicatesInBot, state.Notifications[0].Message)
}

func (s *MiniAppHandlerTestSuite) TestCloseApp() {
	rec := s.do(http.MethodPost, "/app/close", url.Values{})

	s.assertRedirect(rec)
	s.True(s.state().Bridge.CloseRequested)
}

func (s *MiniAppHandlerTestSuite) TestRegion_RendersFragment() {
	s.seed(subscription(1, "Netflix"))

	rec := s.do(http.MethodGet, "/app/regions/subscriptions", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Netflix")
	s.NotContains(rec.Body.String(), "<html")
}

func (s *MiniAppHandlerTestSuite) TestRegion_NotificationsConsumed() {
	_ = s.store.Update(s.ctx, s.user, func(state *models.ViewState) error {
		state.Notify(models.NotificationError, services.MsgLoadFailed)
		return nil
	})

	first := s.do(http.MethodGet, "/app/regions/notifications", nil)
	second := s.do(http.MethodGet, "/app/regions/notifications", nil)

	s.Contains(first.Body.String(), services.MsgLoadFailed)
	s.NotContains(second.Body.String(), services.MsgLoadFailed)
}

func (s *MiniAppHandlerTestSuite) TestRegion_OtherRegionsKeepNotifications() {
	_ = s.store.Update(s.ctx, s.user, func(state *models.ViewState) error {
		state.Notify(models.NotificationError, services.MsgLoadFailed)
		return nil
	})

	rec := s.do(http.MethodGet, "/app/regions/header", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Len(s.state().Notifications, 1)
}

func (s *MiniAppHandlerTestSuite) TestRegion_Unknown() {
	rec := s.do(http.MethodGet, "/app/regions/footer", nil)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_005")
}

func (s *MiniAppHandlerTestSuite) TestParseTheme() {
	s.Nil(parseTheme(""))
	s.Nil(parseTheme("{not json"))
	s.Equal(map[string]string{"bg_color": "#ffffff"}, parseTheme(`{"bg_color":"#ffffff","n":1}`))
}
