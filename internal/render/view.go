package render

import (
	"encoding/json"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"subsmanager-miniapp/internal/format"
	"subsmanager-miniapp/internal/models"

	"github.com/shopspring/decimal"
)

var (
	subscriptionForms = []string{"подписка", "подписки", "подписок"}
	overlapForms      = []string{"пересечение", "пересечения", "пересечений"}
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var categoryLabels = map[string]string{
	models.CategoryStreaming:     "Стриминг",
	models.CategoryMusic:         "Музыка",
	models.CategoryGaming:        "Игры",
	models.CategoryBooks:         "Книги",
	models.CategoryProductivity:  "Продуктивность",
	models.CategoryCloud:         "Облако",
	models.CategoryEducation:     "Образование",
	models.CategoryFitness:       "Фитнес",
	models.CategoryFood:          "Еда",
	models.CategoryTransport:     "Транспорт",
	models.CategoryCommunication: "Связь",
	models.CategoryVPN:           "VPN",
	models.CategoryOther:         "Другое",
}

var cycleOptionLabels = map[models.BillingCycle]string{
	models.BillingCycleWeekly:    "Еженедельно",
	models.BillingCycleMonthly:   "Ежемесячно",
	models.BillingCycleQuarterly: "Ежеквартально",
	models.BillingCycleYearly:    "Ежегодно",
}

var tabLabels = map[models.Tab]string{
	models.TabSubscriptions: "Подписки",
	models.TabAnalytics:     "Аналитика",
	models.TabTips:          "Советы",
}

// PageView is everything the templates read. It holds display-ready values
// only, so it can be rendered after the state lock is released.
type PageView struct {
	UserQuery     string
	Tabs          []TabView
	Header        HeaderView
	Stats         StatsView
	Subscriptions SubscriptionsView
	Detail        *DetailView
	Analytics     AnalyticsView
	Tips          TipsView
	AddForm       *FormView
	Notifications []NotificationView
	Bridge        BridgeView
}

type TabView struct {
	ID     string
	Label  string
	Active bool
}

type HeaderView struct {
	Name     string
	Initial  string
	Subtitle string
}

type StatsView struct {
	Monthly        string
	Yearly         string
	Count          int
	ShowSavings    bool
	Savings        string
	Quarterly      string
	YearlyForecast string
	FiveYear       string
}

type SubscriptionsView struct {
	Empty bool
	Cards []CardView
}

type CardView struct {
	ID          int64
	Name        string
	Icon        string
	IconStyle   template.CSS
	Trial       bool
	StatusClass string
	StatusLabel string
	NextBilling string
	Price       string
	Cycle       string
	Selected    bool
}

type DetailView struct {
	ID            int64
	Name          string
	Icon          string
	IconStyle     template.CSS
	Price         string
	Cycle         string
	Monthly       string
	StatusLabel   string
	NextBilling   string
	TrialEnd      string
	Notes         string
	ConfirmDelete bool
}

type AnalyticsView struct {
	Empty      bool
	Categories []CategoryView
	ChartJSON  string
}

type CategoryView struct {
	Emoji    string
	Name     string
	Amount   string
	Percent  string
	BarWidth string
	Color    string
}

type TipsView struct {
	Empty           bool
	Items           []TipView
	ShowDuplicates  bool
	DuplicatesLabel string
	Duplicates      []DuplicateView
}

type TipView struct {
	PriorityClass string
	PriorityEmoji string
	Title         string
	Description   string
	HasSaving     bool
	Saving        string
}

type DuplicateView struct {
	Main           string
	Duplicate      string
	Recommendation string
	Saving         string
}

type FormView struct {
	Name         string
	Price        string
	BillingCycle string
	Category     string
	IsTrial      bool
	TrialEndDate string
	Errors       map[string]string
	Cycles       []OptionView
	Categories   []OptionView
	QuickAdd     []QuickAddView
}

type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

type QuickAddView struct {
	Key   string
	Name  string
	Price string
	Icon  string
}

type NotificationView struct {
	Kind    string
	Icon    string
	Message string
}

type BridgeView struct {
	ColorScheme         string
	PaletteJSON         string
	Haptic              string
	MainButtonText      string
	MainButtonColor     string
	MainButtonTextColor string
	MainButtonTarget    string
	MainButtonVisible   bool
	Close               bool
}

type chartData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors"`
}

// NewPageView projects a view state into display values. It does not take
// the queued notifications or bridge events; callers that show them do that.
func NewPageView(state *models.ViewState, f *format.Formatter) *PageView {
	view := &PageView{
		Tabs:          buildTabs(state.CurrentTab),
		Header:        buildHeader(state, f),
		Stats:         buildStats(state, f),
		Subscriptions: buildSubscriptions(state, f),
		Detail:        buildDetail(state, f),
		Analytics:     buildAnalytics(state.Analytics, f),
		Tips:          buildTips(state, f),
		Bridge:        buildBridge(state.Bridge),
	}
	view.UserQuery = UserQuery(state.User)
	if state.AddFormOpen {
		view.AddForm = buildForm(state.AddForm, f)
	}
	for _, n := range state.Notifications {
		view.Notifications = append(view.Notifications, NotificationView{
			Kind:    string(n.Kind),
			Icon:    n.Icon(),
			Message: n.Message,
		})
	}
	return view
}

// UserQuery is the query string app links carry for query-identified users.
func UserQuery(user models.HostUser) string {
	if user.Source != models.IdentitySourceQuery {
		return ""
	}
	return "?user_id=" + strconv.FormatInt(user.ID, 10)
}

// Path prefixes an app route so links keep working for query-identified users.
func (v *PageView) Path(route string) string {
	return route + v.UserQuery
}

func buildTabs(current models.Tab) []TabView {
	tabs := make([]TabView, 0, len(models.Tabs))
	for _, tab := range models.Tabs {
		tabs = append(tabs, TabView{ID: string(tab), Label: tabLabels[tab], Active: tab == current})
	}
	return tabs
}

func buildHeader(state *models.ViewState, f *format.Formatter) HeaderView {
	name := strings.TrimSpace(state.User.FirstName)
	if name == "" {
		name = "друг"
	}
	first, _ := utf8.DecodeRuneInString(name)

	subtitle := "Управляй подписками"
	if n := len(state.Subscriptions); n > 0 {
		subtitle = f.CountNoun(n, subscriptionForms)
	}

	return HeaderView{
		Name:     name,
		Initial:  string(unicode.ToUpper(first)),
		Subtitle: subtitle,
	}
}

func buildStats(state *models.ViewState, f *format.Formatter) StatsView {
	a := state.Analytics
	monthly, yearly := decimal.Zero, decimal.Zero
	count := 0
	if a != nil {
		monthly, yearly, count = a.TotalMonthly, a.TotalYearly, a.SubscriptionsCount
	}
	savings := state.PotentialSavings()

	return StatsView{
		Monthly:        f.FormatCurrency(monthly),
		Yearly:         f.FormatCurrency(yearly),
		Count:          count,
		ShowSavings:    savings.IsPositive(),
		Savings:        f.FormatCurrency(savings),
		Quarterly:      f.FormatCurrency(a.QuarterlyForecast()),
		YearlyForecast: f.FormatCurrency(yearly),
		FiveYear:       f.FormatCurrency(a.FiveYearForecast()),
	}
}

func buildSubscriptions(state *models.ViewState, f *format.Formatter) SubscriptionsView {
	view := SubscriptionsView{Empty: !state.HasSubscriptions()}
	for _, sub := range state.Subscriptions {
		card := CardView{
			ID:          sub.ID,
			Name:        sub.Name,
			Icon:        sub.DisplayIcon(),
			IconStyle:   iconStyle(sub),
			Trial:       sub.IsTrial,
			StatusClass: sub.StatusClass(),
			StatusLabel: sub.StatusLabel(),
			Price:       f.FormatCurrency(sub.Price),
			Cycle:       sub.BillingCycle.Label(),
			Selected:    state.SelectedID != nil && *state.SelectedID == sub.ID,
		}
		if next := sub.NextBilling(); next != "" {
			card.NextBilling = f.FormatDate(next)
		}
		view.Cards = append(view.Cards, card)
	}
	return view
}

func buildDetail(state *models.ViewState, f *format.Formatter) *DetailView {
	sub := state.SelectedSubscription()
	if sub == nil {
		return nil
	}

	detail := &DetailView{
		ID:            sub.ID,
		Name:          sub.Name,
		Icon:          sub.DisplayIcon(),
		IconStyle:     iconStyle(*sub),
		Price:         f.FormatCurrency(sub.Price),
		Cycle:         sub.BillingCycle.Label(),
		Monthly:       f.FormatCurrency(sub.MonthlyPrice()),
		StatusLabel:   sub.StatusLabel(),
		Notes:         sub.NotesText(),
		ConfirmDelete: state.DeleteConfirmationFor(sub.ID),
	}
	if next := sub.NextBilling(); next != "" {
		detail.NextBilling = f.FormatDate(next)
	}
	if sub.HasTrialEnd() {
		detail.TrialEnd = f.FormatDate(*sub.TrialEndDate)
	}
	return detail
}

func buildAnalytics(a *models.Analytics, f *format.Formatter) AnalyticsView {
	if a == nil || len(a.ByCategory) == 0 {
		return AnalyticsView{Empty: true}
	}

	view := AnalyticsView{}
	chart := chartData{}
	for i, c := range a.ByCategory {
		color := models.ChartColor(i)
		view.Categories = append(view.Categories, CategoryView{
			Emoji:    c.Emoji,
			Name:     c.CategoryName,
			Amount:   f.FormatCurrency(c.Amount),
			Percent:  strconv.FormatFloat(c.Percent, 'f', 0, 64) + "%",
			BarWidth: strconv.FormatFloat(a.BarWidth(c), 'f', 1, 64),
			Color:    color,
		})
		chart.Labels = append(chart.Labels, c.CategoryName)
		chart.Data = append(chart.Data, c.Amount.InexactFloat64())
		chart.Colors = append(chart.Colors, color)
	}

	if raw, err := json.Marshal(chart); err == nil {
		view.ChartJSON = string(raw)
	}
	return view
}

func buildTips(state *models.ViewState, f *format.Formatter) TipsView {
	view := TipsView{Empty: len(state.Tips) == 0}
	for _, tip := range state.Tips {
		view.Items = append(view.Items, TipView{
			PriorityClass: tip.PriorityClass(),
			PriorityEmoji: tip.PriorityEmoji(),
			Title:         tip.Title,
			Description:   tip.Description,
			HasSaving:     tip.HasSaving(),
			Saving:        f.FormatCurrency(tip.PotentialSaving),
		})
	}

	if n := len(state.Duplicates); n > 0 {
		view.ShowDuplicates = true
		view.DuplicatesLabel = f.CountNoun(n, overlapForms)
		for _, d := range state.Duplicates {
			view.Duplicates = append(view.Duplicates, DuplicateView{
				Main:           d.Main.Name,
				Duplicate:      d.Duplicate.Name,
				Recommendation: d.Recommendation,
				Saving:         f.FormatCurrency(d.PotentialSaving),
			})
		}
	}
	return view
}

func buildForm(draft *models.SubscriptionDraft, f *format.Formatter) *FormView {
	if draft == nil {
		draft = models.NewSubscriptionDraft()
	}

	form := &FormView{
		Name:         draft.Name,
		Price:        draft.Price,
		BillingCycle: draft.BillingCycle,
		Category:     draft.Category,
		IsTrial:      draft.IsTrial,
		TrialEndDate: draft.TrialEndDate,
		Errors:       draft.Errors,
	}
	if form.Errors == nil {
		form.Errors = map[string]string{}
	}
	for _, cycle := range models.BillingCycles {
		form.Cycles = append(form.Cycles, OptionView{
			Value:    string(cycle),
			Label:    cycleOptionLabels[cycle],
			Selected: string(cycle) == draft.BillingCycle,
		})
	}
	for _, category := range models.Categories {
		form.Categories = append(form.Categories, OptionView{
			Value:    category,
			Label:    models.CategoryIcon(category) + " " + categoryLabels[category],
			Selected: category == draft.Category,
		})
	}
	for _, service := range models.QuickAddCatalog() {
		form.QuickAdd = append(form.QuickAdd, QuickAddView{
			Key:   service.Key,
			Name:  service.Name,
			Price: f.FormatCurrency(service.Price),
			Icon:  models.CategoryIcon(service.Category),
		})
	}
	return form
}

func buildBridge(b models.HostBridge) BridgeView {
	view := BridgeView{
		ColorScheme:         b.ColorScheme,
		Haptic:              string(b.Haptic),
		MainButtonText:      b.MainButton.Text,
		MainButtonColor:     b.MainButton.Color,
		MainButtonTextColor: b.MainButton.TextColor,
		MainButtonTarget:    b.MainButton.Target,
		MainButtonVisible:   b.MainButton.Visible,
		Close:               b.CloseRequested,
	}
	if len(b.Palette) > 0 {
		if raw, err := json.Marshal(b.Palette); err == nil {
			view.PaletteJSON = string(raw)
		}
	}
	return view
}

// iconStyle tints the icon background with the subscription's color. Only
// plain six-digit hex colors are used; anything else falls back to the stylesheet.
func iconStyle(sub models.Subscription) template.CSS {
	color := sub.DisplayColor()
	if !hexColor.MatchString(color) {
		return ""
	}
	return template.CSS("background: " + color + "20")
}
