package models

import (
	"regexp"
	"slices"

	"github.com/shopspring/decimal"
)

type Tab string

const (
	TabSubscriptions Tab = "subscriptions"
	TabAnalytics     Tab = "analytics"
	TabTips          Tab = "tips"
)

// Tabs lists the tab identifiers in display order.
var Tabs = []Tab{TabSubscriptions, TabAnalytics, TabTips}

func (t Tab) Valid() bool {
	return slices.Contains(Tabs, t)
}

type IdentitySource string

const (
	IdentitySourceHost  IdentitySource = "host"
	IdentitySourceQuery IdentitySource = "query"
)

// HostUser is the identity the host platform (or the query fallback) vouches for.
type HostUser struct {
	ID        int64          `json:"id"`
	FirstName string         `json:"first_name,omitempty"`
	Source    IdentitySource `json:"source"`
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationWarning NotificationKind = "warning"
	NotificationInfo    NotificationKind = "info"
)

// Notification is a transient banner shown once on the next render.
type Notification struct {
	Kind    NotificationKind
	Message string
}

func (n Notification) Icon() string {
	switch n.Kind {
	case NotificationSuccess:
		return "✅"
	case NotificationError:
		return "❌"
	case NotificationWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

type HapticEvent string

const (
	HapticNone             HapticEvent = ""
	HapticSuccess          HapticEvent = "notification:success"
	HapticError            HapticEvent = "notification:error"
	HapticSelectionChanged HapticEvent = "selection_changed"
)

// MainButton configures the host's primary action button.
type MainButton struct {
	Text      string
	Color     string
	TextColor string
	Target    string
	Visible   bool
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// themeVariables maps host palette keys to the CSS variables the page uses.
var themeVariables = map[string]string{
	"bg_color":           "--bg-primary",
	"secondary_bg_color": "--bg-secondary",
	"text_color":         "--text-primary",
	"hint_color":         "--text-secondary",
	"button_color":       "--accent-primary",
}

// HostBridge carries instructions for the host bridge shim on the page.
// Haptic and CloseRequested fire once and are cleared by TakeEvents.
type HostBridge struct {
	ColorScheme    string
	Palette        map[string]string
	Haptic         HapticEvent
	MainButton     MainButton
	CloseRequested bool
}

// ApplyTheme keeps the known palette keys whose values are plain hex colors.
func (b *HostBridge) ApplyTheme(colorScheme string, params map[string]string) {
	if colorScheme == "light" || colorScheme == "dark" {
		b.ColorScheme = colorScheme
	}
	for key, value := range params {
		variable, ok := themeVariables[key]
		if !ok || !hexColor.MatchString(value) {
			continue
		}
		if b.Palette == nil {
			b.Palette = make(map[string]string)
		}
		b.Palette[variable] = value
	}
}

// TakeEvents returns the one-shot events and resets them.
func (b *HostBridge) TakeEvents() (HapticEvent, bool) {
	haptic, closeRequested := b.Haptic, b.CloseRequested
	b.Haptic = HapticNone
	b.CloseRequested = false
	return haptic, closeRequested
}

// SubscriptionDraft holds add-form values as typed, so a failed submit can re-render them.
type SubscriptionDraft struct {
	Name         string
	Price        string
	BillingCycle string
	Category     string
	IsTrial      bool
	TrialEndDate string
	Errors       map[string]string
}

func NewSubscriptionDraft() *SubscriptionDraft {
	return &SubscriptionDraft{
		BillingCycle: string(BillingCycleMonthly),
		Category:     CategoryOther,
	}
}

// ViewState is everything one user's page renders from.
//
// SelectedID, when set, always names a subscription present in Subscriptions;
// every operation that replaces or shrinks the set re-checks it.
type ViewState struct {
	User          HostUser
	Subscriptions []Subscription
	Analytics     *Analytics
	Tips          []Tip
	Duplicates    []Duplicate
	CurrentTab    Tab
	SelectedID    *int64
	AddFormOpen   bool
	AddForm       *SubscriptionDraft
	PendingDelete *int64
	Notifications []Notification
	Bridge        HostBridge
	Loaded        bool
}

func NewViewState(user HostUser) *ViewState {
	return &ViewState{
		User:          user,
		Subscriptions: []Subscription{},
		Tips:          []Tip{},
		Duplicates:    []Duplicate{},
		CurrentTab:    TabSubscriptions,
		Bridge: HostBridge{
			MainButton: MainButton{
				Text:      "Добавить подписку",
				Color:     "#6366f1",
				TextColor: "#ffffff",
				Target:    "/app/subscriptions/new",
			},
		},
	}
}

// ApplySubscriptions replaces the subscription set and drops a selection
// whose referent is gone.
func (v *ViewState) ApplySubscriptions(subs []Subscription) {
	if subs == nil {
		subs = []Subscription{}
	}
	v.Subscriptions = subs
	v.ReconcileSelection()
}

// ApplyAnalytics replaces the analytics report and the tips derived from it.
func (v *ViewState) ApplyAnalytics(a *Analytics) {
	v.Analytics = a
	v.Tips = []Tip{}
	if a != nil && a.Tips != nil {
		v.Tips = a.Tips
	}
}

func (v *ViewState) ApplyDuplicates(d []Duplicate) {
	if d == nil {
		d = []Duplicate{}
	}
	v.Duplicates = d
}

// SubscriptionByID looks a subscription up in the current set.
func (v *ViewState) SubscriptionByID(id int64) (*Subscription, bool) {
	for i := range v.Subscriptions {
		if v.Subscriptions[i].ID == id {
			return &v.Subscriptions[i], true
		}
	}
	return nil, false
}

// SelectedSubscription is the subscription the detail panel shows, or nil.
func (v *ViewState) SelectedSubscription() *Subscription {
	if v.SelectedID == nil {
		return nil
	}
	sub, ok := v.SubscriptionByID(*v.SelectedID)
	if !ok {
		return nil
	}
	return sub
}

// Select opens the detail panel for id. Unknown ids leave the state as is.
func (v *ViewState) Select(id int64) bool {
	if _, ok := v.SubscriptionByID(id); !ok {
		return false
	}
	v.SelectedID = &id
	v.PendingDelete = nil
	return true
}

func (v *ViewState) CloseDetail() {
	v.SelectedID = nil
	v.PendingDelete = nil
}

// RequestDelete asks for confirmation before id is deleted.
func (v *ViewState) RequestDelete(id int64) bool {
	if _, ok := v.SubscriptionByID(id); !ok {
		return false
	}
	v.PendingDelete = &id
	return true
}

func (v *ViewState) DeleteConfirmationFor(id int64) bool {
	return v.PendingDelete != nil && *v.PendingDelete == id
}

// RemoveSubscription drops id from the set, clearing the selection and the
// detail panel when they point at it.
func (v *ViewState) RemoveSubscription(id int64) {
	v.Subscriptions = slices.DeleteFunc(v.Subscriptions, func(s Subscription) bool {
		return s.ID == id
	})
	if v.SelectedID != nil && *v.SelectedID == id {
		v.SelectedID = nil
	}
	v.PendingDelete = nil
	v.ReconcileSelection()
}

// SwitchTab only changes which panel is visible.
func (v *ViewState) SwitchTab(tab Tab) bool {
	if !tab.Valid() {
		return false
	}
	v.CurrentTab = tab
	v.Bridge.Haptic = HapticSelectionChanged
	return true
}

// OpenAddForm shows an empty add form.
func (v *ViewState) OpenAddForm() {
	v.AddFormOpen = true
	v.AddForm = NewSubscriptionDraft()
}

// KeepAddForm re-opens the form with the submitted values and their errors.
func (v *ViewState) KeepAddForm(draft *SubscriptionDraft) {
	v.AddFormOpen = true
	v.AddForm = draft
}

func (v *ViewState) CloseAddForm() {
	v.AddFormOpen = false
	v.AddForm = nil
}

// CloseModals closes both the add form and the detail panel.
func (v *ViewState) CloseModals() {
	v.CloseAddForm()
	v.CloseDetail()
}

func (v *ViewState) Notify(kind NotificationKind, message string) {
	v.Notifications = append(v.Notifications, Notification{Kind: kind, Message: message})
}

// TakeNotifications returns the queued notifications and empties the queue.
func (v *ViewState) TakeNotifications() []Notification {
	queued := v.Notifications
	v.Notifications = nil
	return queued
}

// PotentialSavings sums the positive savings over all tips.
func (v *ViewState) PotentialSavings() decimal.Decimal {
	total := decimal.Zero
	for _, tip := range v.Tips {
		if tip.PotentialSaving.IsPositive() {
			total = total.Add(tip.PotentialSaving)
		}
	}
	return total
}

func (v *ViewState) HasSavings() bool {
	return v.PotentialSavings().IsPositive()
}

func (v *ViewState) HasSubscriptions() bool {
	return len(v.Subscriptions) > 0
}

// ReconcileSelection drops a selection or pending delete whose subscription is
// not in the current set.
func (v *ViewState) ReconcileSelection() {
	if v.SelectedID != nil {
		if _, ok := v.SubscriptionByID(*v.SelectedID); !ok {
			v.SelectedID = nil
		}
	}
	if v.PendingDelete != nil {
		if _, ok := v.SubscriptionByID(*v.PendingDelete); !ok {
			v.PendingDelete = nil
		}
	}
}
