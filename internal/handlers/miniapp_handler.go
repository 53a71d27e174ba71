package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"subsmanager-miniapp/internal/dto"
	"subsmanager-miniapp/internal/errors"
	"subsmanager-miniapp/internal/format"
	"subsmanager-miniapp/internal/models"
	"subsmanager-miniapp/internal/render"
	"subsmanager-miniapp/internal/services"
	"subsmanager-miniapp/internal/validation"

	"github.com/labstack/echo/v4"
)

const (
	actionReload         = "reload"
	actionTabSwitch      = "tab_switch"
	actionOpenAddForm    = "open_add_form"
	actionCloseModals    = "close_modals"
	actionQuickAdd       = "quick_add"
	actionSubmitForm     = "submit_form"
	actionSelect         = "select"
	actionDeleteRequest  = "delete_request"
	actionDeleteConfirm  = "delete_confirm"
	actionEdit           = "edit"
	actionViewDuplicates = "view_duplicates"
	actionClose          = "close"
)

// MiniAppHandler serves the mini app page. Every mutating route applies one
// transition to the user's view state and redirects back to the page.
type MiniAppHandler struct {
	dashboard services.DashboardServiceInterface
	store     services.StateStoreInterface
	journal   services.ActionJournalInterface
	metrics   services.MetricsRecorderInterface
	formatter *format.Formatter
	logger    *slog.Logger
}

func NewMiniAppHandler(
	dashboard services.DashboardServiceInterface,
	store services.StateStoreInterface,
	journal services.ActionJournalInterface,
	metrics services.MetricsRecorderInterface,
	formatter *format.Formatter,
	logger *slog.Logger,
) *MiniAppHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MiniAppHandler{
		dashboard: dashboard,
		store:     store,
		journal:   journal,
		metrics:   metrics,
		formatter: formatter,
		logger:    logger,
	}
}

// RegisterRoutes mounts the page routes on g, which is expected at /app
func (h *MiniAppHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.Index)
	g.POST("/reload", h.Reload)
	g.POST("/tabs/:tab", h.SwitchTab)
	g.POST("/subscriptions/new", h.OpenAddForm)
	g.POST("/modals/close", h.CloseModals)
	g.POST("/quick-add/:service", h.QuickAdd)
	g.POST("/subscriptions", h.CreateSubscription)
	g.POST("/subscriptions/:id/select", h.ShowSubscription)
	g.POST("/subscriptions/:id/delete", h.DeleteSubscription)
	g.POST("/subscriptions/:id/edit", h.EditSubscription)
	g.POST("/duplicates/view", h.ViewDuplicates)
	g.POST("/close", h.CloseApp)
	g.GET("/regions/:region", h.Region)
}

// Index renders the whole page. It loads the dashboard when the request opens
// the app or nothing has loaded yet; renders that follow the app's own
// redirects reuse the state. The optional theme query parameter is the host
// palette as a JSON object.
func (h *MiniAppHandler) Index(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}
	ctx := c.Request().Context()

	palette := parseTheme(c.QueryParam("theme"))
	colorScheme := c.QueryParam("color_scheme")

	loaded := false
	err := h.store.Update(ctx, user, func(state *models.ViewState) error {
		if palette != nil || colorScheme != "" {
			state.Bridge.ApplyTheme(colorScheme, palette)
		}
		loaded = state.Loaded
		return nil
	})
	if err != nil {
		return h.systemError(c, err)
	}

	if !loaded || appOpened(c) {
		h.dashboard.Load(ctx, user)
	}

	var view *render.PageView
	err = h.store.Update(ctx, user, func(state *models.ViewState) error {
		view = render.NewPageView(state, h.formatter)
		state.TakeNotifications()
		state.Bridge.TakeEvents()
		return nil
	})
	if err != nil {
		return h.systemError(c, err)
	}

	return c.Render(http.StatusOK, render.PageTemplate, view)
}

// Region renders one region of the page. The notifications and bridge
// regions consume what they show.
func (h *MiniAppHandler) Region(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}

	region := render.Region(c.Param("region"))
	if !region.Valid() {
		return SendError(c, errors.ValidationUnknownRegion, errors.WithDetails(string(region)))
	}

	var view *render.PageView
	err := h.store.Update(c.Request().Context(), user, func(state *models.ViewState) error {
		view = render.NewPageView(state, h.formatter)
		switch region {
		case render.RegionNotifications:
			state.TakeNotifications()
		case render.RegionBridge:
			state.Bridge.TakeEvents()
		}
		return nil
	})
	if err != nil {
		return h.systemError(c, err)
	}

	return c.Render(http.StatusOK, string(region), view)
}

func (h *MiniAppHandler) Reload(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}
	h.countAction(actionReload)

	h.dashboard.Load(c.Request().Context(), user)
	return h.redirect(c, user)
}

// SwitchTab only changes which panel is visible; it never refetches.
func (h *MiniAppHandler) SwitchTab(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}

	tab := models.Tab(c.Param("tab"))
	if !tab.Valid() {
		return SendError(c, errors.ValidationUnknownTab, errors.WithDetails(string(tab)))
	}
	h.countAction(actionTabSwitch)

	if err := h.update(c, user, func(state *models.ViewState) { state.SwitchTab(tab) }); err != nil {
		return h.systemError(c, err)
	}

	h.record(c, user, models.ActionTabSwitched, models.ResourceDashboard, "", models.JSONBMap{"tab": string(tab)})
	return h.redirect(c, user)
}

func (h *MiniAppHandler) OpenAddForm(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}
	h.countAction(actionOpenAddForm)

	if err := h.update(c, user, func(state *models.ViewState) { state.OpenAddForm() }); err != nil {
		return h.systemError(c, err)
	}
	return h.redirect(c, user)
}

func (h *MiniAppHandler) CloseModals(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}
	h.countAction(actionCloseModals)

	if err := h.update(c, user, func(state *models.ViewState) { state.CloseModals() }); err != nil {
		return h.systemError(c, err)
	}
	return h.redirect(c, user)
}

// QuickAdd creates a catalog service for the user
func (h *MiniAppHandler) QuickAdd(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}

	key := c.Param("service")
	if _, known := models.LookupCatalogService(key); !known {
		return SendError(c, errors.SubscriptionUnknownService, errors.WithDetails(key))
	}
	h.countAction(actionQuickAdd)

	if err := h.dashboard.QuickAdd(c.Request().Context(), user, key); err != nil {
		h.logFailure(c, user, "quick_add", err)
	}
	return h.redirect(c, user)
}

// CreateSubscription validates the add form. Invalid submissions keep the
// form open with the typed values and per-field messages.
func (h *MiniAppHandler) CreateSubscription(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}
	h.countAction(actionSubmitForm)

	var form dto.AddSubscriptionForm
	if err := c.Bind(&form); err != nil {
		return SendError(c, errors.ValidationInvalidFormat)
	}
	form.Normalize()

	if err := c.Validate(&form); err != nil {
		fieldErrors := validation.FieldErrors(err)
		if fieldErrors == nil {
			return h.systemError(c, err)
		}
		if err := h.update(c, user, func(state *models.ViewState) {
			state.KeepAddForm(form.ToDraft(fieldErrors))
			state.Bridge.Haptic = models.HapticError
		}); err != nil {
			return h.systemError(c, err)
		}
		return h.redirect(c, user)
	}

	if err := h.dashboard.AddSubscription(c.Request().Context(), user, &form); err != nil {
		h.logFailure(c, user, "add_subscription", err)
	}
	return h.redirect(c, user)
}

// ShowSubscription opens the detail panel. Ids the user cannot see are ignored.
func (h *MiniAppHandler) ShowSubscription(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}

	id, ok := getIDParam(c, "id")
	if !ok {
		return SendError(c, errors.SubscriptionInvalidID)
	}
	h.countAction(actionSelect)

	selected := false
	if err := h.update(c, user, func(state *models.ViewState) { selected = state.Select(id) }); err != nil {
		return h.systemError(c, err)
	}

	if selected {
		h.record(c, user, models.ActionDetailOpened, models.ResourceSubscription, strconv.FormatInt(id, 10), nil)
	}
	return h.redirect(c, user)
}

// DeleteSubscription asks for confirmation first; confirm=yes deletes.
func (h *MiniAppHandler) DeleteSubscription(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}

	id, ok := getIDParam(c, "id")
	if !ok {
		return SendError(c, errors.SubscriptionInvalidID)
	}

	if c.FormValue("confirm") != "yes" {
		h.countAction(actionDeleteRequest)
		if err := h.update(c, user, func(state *models.ViewState) { state.RequestDelete(id) }); err != nil {
			return h.systemError(c, err)
		}
		return h.redirect(c, user)
	}

	h.countAction(actionDeleteConfirm)
	err := h.dashboard.DeleteSubscription(c.Request().Context(), user, id)
	if err != nil && !stderrors.Is(err, services.ErrSubscriptionNotFound) {
		h.logFailure(c, user, "delete_subscription", err)
	}
	return h.redirect(c, user)
}

func (h *MiniAppHandler) EditSubscription(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}
	if _, ok := getIDParam(c, "id"); !ok {
		return SendError(c, errors.SubscriptionInvalidID)
	}
	h.countAction(actionEdit)

	if err := h.update(c, user, func(state *models.ViewState) {
		state.Notify(models.NotificationWarning, services.MsgEditComingSoon)
	}); err != nil {
		return h.systemError(c, err)
	}
	return h.redirect(c, user)
}

// ViewDuplicates hands the user over to the bot, where duplicates are managed.
func (h *MiniAppHandler) ViewDuplicates(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}
	h.countAction(actionViewDuplicates)

	if err := h.update(c, user, func(state *models.ViewState) {
		state.Notify(models.NotificationInfo, services.MsgDuplicatesInBot)
		state.Bridge.CloseRequested = true
	}); err != nil {
		return h.systemError(c, err)
	}
	return h.redirect(c, user)
}

func (h *MiniAppHandler) CloseApp(c echo.Context) error {
	user, ok := HostUserFromContext(c)
	if !ok {
		return SendError(c, errors.AuthMissingIdentity)
	}
	h.countAction(actionClose)

	if err := h.update(c, user, func(state *models.ViewState) { state.Bridge.CloseRequested = true }); err != nil {
		return h.systemError(c, err)
	}
	return h.redirect(c, user)
}

func (h *MiniAppHandler) update(c echo.Context, user models.HostUser, fn func(state *models.ViewState)) error {
	return h.store.Update(c.Request().Context(), user, func(state *models.ViewState) error {
		fn(state)
		return nil
	})
}

func (h *MiniAppHandler) redirect(c echo.Context, user models.HostUser) error {
	return c.Redirect(http.StatusSeeOther, "/app"+render.UserQuery(user))
}

func (h *MiniAppHandler) systemError(c echo.Context, err error) error {
	h.logger.Error("Mini app request failed",
		"trace_id", getTraceID(c),
		"path", c.Request().URL.Path,
		"error", err.Error(),
	)
	return SendSystemError(c, err)
}

// logFailure notes a backend failure the user already sees as a notification
func (h *MiniAppHandler) logFailure(c echo.Context, user models.HostUser, op string, err error) {
	level := slog.LevelWarn
	if stderrors.Is(err, context.Canceled) {
		level = slog.LevelInfo
	}
	h.logger.Log(c.Request().Context(), level, "Mini app action failed",
		"trace_id", getTraceID(c),
		"user_id", user.ID,
		"op", op,
		"error", err.Error(),
	)
}

func (h *MiniAppHandler) record(c echo.Context, user models.HostUser, action, resource, resourceID string, metadata models.JSONBMap) {
	h.journal.Record(c.Request().Context(), &models.ActionLog{
		UserID:     user.ID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		TraceID:    getTraceID(c),
		IPAddress:  getClientIP(c),
		Metadata:   metadata,
	})
}

func (h *MiniAppHandler) countAction(action string) {
	h.metrics.IncrementCounter(services.MetricUIAction, map[string]string{"action": action})
}

// parseTheme decodes the host palette. Non-string values and malformed JSON
// are ignored.
func parseTheme(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil
	}
	palette := make(map[string]string, len(decoded))
	for key, value := range decoded {
		if s, ok := value.(string); ok {
			palette[key] = s
		}
	}
	return palette
}
