package models

import "github.com/shopspring/decimal"

type TipPriority string

const (
	TipPriorityHigh   TipPriority = "high"
	TipPriorityMedium TipPriority = "medium"
	TipPriorityLow    TipPriority = "low"
)

// ChartPalette colors the category doughnut, one entry per slice in order.
var ChartPalette = []string{
	"#6366f1", "#8b5cf6", "#a855f7", "#d946ef",
	"#ec4899", "#f43f5e", "#f97316", "#eab308",
}

// Analytics is the spend report the backend recomputes on every load.
type Analytics struct {
	TotalMonthly         decimal.Decimal `json:"total_monthly"`
	TotalYearly          decimal.Decimal `json:"total_yearly"`
	SubscriptionsCount   int             `json:"subscriptions_count"`
	ActiveCount          int             `json:"active_count"`
	PausedCount          int             `json:"paused_count"`
	TrialsCount          int             `json:"trials_count"`
	AvgSubscriptionPrice decimal.Decimal `json:"avg_subscription_price"`
	ByCategory           []CategorySpend `json:"by_category"`
	Tips                 []Tip           `json:"tips"`
}

type CategorySpend struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Emoji        string          `json:"emoji"`
	Amount       decimal.Decimal `json:"amount"`
	Percent      float64         `json:"percent"`
	Count        int             `json:"count"`
}

// Tip is a server-generated saving suggestion.
type Tip struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Priority        TipPriority     `json:"priority"`
	PotentialSaving decimal.Decimal `json:"potential_saving"`
	Category        string          `json:"category,omitempty"`
}

// SubscriptionRef names one side of a detected overlap.
type SubscriptionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Duplicate is an overlap between two of the user's subscriptions.
type Duplicate struct {
	Main            SubscriptionRef `json:"main"`
	Duplicate       SubscriptionRef `json:"duplicate"`
	OverlapType     string          `json:"overlap_type"`
	PotentialSaving decimal.Decimal `json:"potential_saving"`
	Recommendation  string          `json:"recommendation"`
}

// PriorityClass falls back to "medium" for tips without a known priority.
func (t Tip) PriorityClass() string {
	switch t.Priority {
	case TipPriorityHigh, TipPriorityMedium, TipPriorityLow:
		return string(t.Priority)
	default:
		return string(TipPriorityMedium)
	}
}

func (t Tip) PriorityEmoji() string {
	switch t.PriorityClass() {
	case string(TipPriorityHigh):
		return "🔴"
	case string(TipPriorityLow):
		return "🟢"
	default:
		return "🟡"
	}
}

func (t Tip) HasSaving() bool {
	return t.PotentialSaving.IsPositive()
}

// MaxCategoryAmount is the largest category spend, zero when there are no categories.
func (a *Analytics) MaxCategoryAmount() decimal.Decimal {
	maxAmount := decimal.Zero
	if a == nil {
		return maxAmount
	}
	for _, c := range a.ByCategory {
		if c.Amount.GreaterThan(maxAmount) {
			maxAmount = c.Amount
		}
	}
	return maxAmount
}

// BarWidth is the category's share of the largest category, in percent.
func (a *Analytics) BarWidth(c CategorySpend) float64 {
	maxAmount := a.MaxCategoryAmount()
	if !maxAmount.IsPositive() {
		return 0
	}
	return c.Amount.Div(maxAmount).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// QuarterlyForecast is three months of the current monthly spend.
func (a *Analytics) QuarterlyForecast() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.TotalMonthly.Mul(decimal.NewFromInt(3))
}

func (a *Analytics) FiveYearForecast() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.TotalYearly.Mul(decimal.NewFromInt(5))
}

// ChartColor is the palette entry of the i-th category slice.
func ChartColor(i int) string {
	return ChartPalette[i%len(ChartPalette)]
}
