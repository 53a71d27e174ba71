package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

type BillingCycle string

const (
	BillingCycleWeekly    BillingCycle = "weekly"
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

const (
	CategoryStreaming     = "streaming"
	CategoryMusic         = "music"
	CategoryGaming        = "gaming"
	CategoryBooks         = "books"
	CategoryProductivity  = "productivity"
	CategoryCloud         = "cloud"
	CategoryEducation     = "education"
	CategoryFitness       = "fitness"
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryCommunication = "communication"
	CategoryVPN           = "vpn"
	CategoryOther         = "other"
)

var ErrInvalidBillingCycle = errors.New("invalid billing cycle")

// cycleRatio is the monthly multiplier of a billing cycle as num/den, so that
// a yearly 1200 comes out as exactly 100.
type cycleRatio struct {
	num int64
	den int64
}

var monthlyRatios = map[BillingCycle]cycleRatio{
	BillingCycleWeekly:    {num: 433, den: 100},
	BillingCycleMonthly:   {num: 1, den: 1},
	BillingCycleQuarterly: {num: 1, den: 3},
	BillingCycleYearly:    {num: 1, den: 12},
}

var cycleLabels = map[BillingCycle]string{
	BillingCycleWeekly:    "нед",
	BillingCycleMonthly:   "мес",
	BillingCycleQuarterly: "квартал",
	BillingCycleYearly:    "год",
}

var statusLabels = map[SubscriptionStatus]string{
	SubscriptionStatusActive:    "Активна",
	SubscriptionStatusPaused:    "Пауза",
	SubscriptionStatusCancelled: "Отменена",
}

var categoryIcons = map[string]string{
	CategoryStreaming:     "🎬",
	CategoryMusic:         "🎵",
	CategoryGaming:        "🎮",
	CategoryBooks:         "📚",
	CategoryProductivity:  "💼",
	CategoryCloud:         "☁️",
	CategoryEducation:     "🎓",
	CategoryFitness:       "💪",
	CategoryFood:          "🍔",
	CategoryTransport:     "🚕",
	CategoryCommunication: "💬",
	CategoryVPN:           "🔒",
	CategoryOther:         "📦",
}

// Categories lists every category tag the add form offers, in display order.
var Categories = []string{
	CategoryStreaming, CategoryMusic, CategoryGaming, CategoryBooks,
	CategoryProductivity, CategoryCloud, CategoryEducation, CategoryFitness,
	CategoryFood, CategoryTransport, CategoryCommunication, CategoryVPN, CategoryOther,
}

// BillingCycles lists the cycles the add form offers, in display order.
var BillingCycles = []BillingCycle{
	BillingCycleWeekly, BillingCycleMonthly, BillingCycleQuarterly, BillingCycleYearly,
}

func (c BillingCycle) Valid() bool {
	_, ok := monthlyRatios[c]
	return ok
}

// Label is the short localized cycle name; unknown cycles render as-is.
func (c BillingCycle) Label() string {
	if label, ok := cycleLabels[c]; ok {
		return label
	}
	return string(c)
}

// ToMonthly scales an amount charged once per cycle to its monthly equivalent.
// Unknown cycles count as monthly.
func (c BillingCycle) ToMonthly(amount decimal.Decimal) decimal.Decimal {
	r, ok := monthlyRatios[c]
	if !ok {
		return amount
	}
	return amount.Mul(decimal.NewFromInt(r.num)).Div(decimal.NewFromInt(r.den))
}

func IsKnownCategory(category string) bool {
	_, ok := categoryIcons[category]
	return ok
}

// CategoryIcon returns the default emoji for a category tag.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}

// Subscription is a recurring charge as reported by the backend.
type Subscription struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Price           decimal.Decimal    `json:"price"`
	Currency        string             `json:"currency,omitempty"`
	BillingCycle    BillingCycle       `json:"billing_cycle"`
	Category        string             `json:"category"`
	Status          SubscriptionStatus `json:"status"`
	IsTrial         bool               `json:"is_trial"`
	TrialEndDate    *string            `json:"trial_end_date,omitempty"`
	NextBillingDate *string            `json:"next_billing_date,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	Color           *string            `json:"color,omitempty"`
	Icon            *string            `json:"icon,omitempty"`
}

// MonthlyPrice is the price scaled to one month by the billing cycle.
func (s Subscription) MonthlyPrice() decimal.Decimal {
	return s.BillingCycle.ToMonthly(s.Price)
}

// StatusLabel is "Триал" for trials, otherwise the localized status.
func (s Subscription) StatusLabel() string {
	if s.IsTrial {
		return "Триал"
	}
	if label, ok := statusLabels[s.Status]; ok {
		return label
	}
	return string(s.Status)
}

// StatusClass is the CSS modifier of the status badge.
func (s Subscription) StatusClass() string {
	if s.IsTrial {
		return "trial"
	}
	return string(s.Status)
}

func (s Subscription) DisplayIcon() string {
	if s.Icon != nil && *s.Icon != "" {
		return *s.Icon
	}
	return CategoryIcon(s.Category)
}

func (s Subscription) DisplayColor() string {
	if s.Color != nil && *s.Color != "" {
		return *s.Color
	}
	return ""
}

func (s Subscription) HasTrialEnd() bool {
	return s.IsTrial && s.TrialEndDate != nil && *s.TrialEndDate != ""
}

func (s Subscription) NextBilling() string {
	if s.NextBillingDate == nil {
		return ""
	}
	return *s.NextBillingDate
}

func (s Subscription) NotesText() string {
	if s.Notes == nil {
		return ""
	}
	return *s.Notes
}
