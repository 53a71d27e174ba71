package dto

import (
	"fmt"
	"strings"

	"subsmanager-miniapp/internal/models"

	"github.com/shopspring/decimal"
)

// AddSubscriptionForm is the add-subscription form as submitted by the page
type AddSubscriptionForm struct {
	Name         string `form:"name" json:"name" validate:"required,max=100"`
	Price        string `form:"price" json:"price" validate:"required,price"`
	BillingCycle string `form:"billing_cycle" json:"billing_cycle" validate:"required,billing_cycle"`
	Category     string `form:"category" json:"category" validate:"required,subscription_category"`
	IsTrial      bool   `form:"is_trial" json:"is_trial"`
	TrialEndDate string `form:"trial_end_date" json:"trial_end_date" validate:"required_if=IsTrial true,iso_date"`
}

// Normalize trims the free-text fields and fills in form defaults
func (f *AddSubscriptionForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Price = strings.ReplaceAll(strings.TrimSpace(f.Price), ",", ".")
	f.TrialEndDate = strings.TrimSpace(f.TrialEndDate)
	if f.BillingCycle == "" {
		f.BillingCycle = string(models.BillingCycleMonthly)
	}
	if f.Category == "" {
		f.Category = models.CategoryOther
	}
	if !f.IsTrial {
		f.TrialEndDate = ""
	}
}

// ToDraft keeps the submitted values for re-rendering the form
func (f *AddSubscriptionForm) ToDraft(errs map[string]string) *models.SubscriptionDraft {
	return &models.SubscriptionDraft{
		Name:         f.Name,
		Price:        f.Price,
		BillingCycle: f.BillingCycle,
		Category:     f.Category,
		IsTrial:      f.IsTrial,
		TrialEndDate: f.TrialEndDate,
		Errors:       errs,
	}
}

// ToRequest converts a validated form into the backend create payload
func (f *AddSubscriptionForm) ToRequest() (CreateSubscriptionRequest, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return CreateSubscriptionRequest{}, fmt.Errorf("parse price: %w", err)
	}

	cycle := models.BillingCycle(f.BillingCycle)
	if !cycle.Valid() {
		return CreateSubscriptionRequest{}, models.ErrInvalidBillingCycle
	}

	req := CreateSubscriptionRequest{
		Name:         f.Name,
		Price:        price.InexactFloat64(),
		BillingCycle: string(cycle),
		Category:     f.Category,
		IsTrial:      f.IsTrial,
	}
	if f.IsTrial && f.TrialEndDate != "" {
		trialEnd := f.TrialEndDate
		req.TrialEndDate = &trialEnd
	}
	return req, nil
}

// QuickAddRequest builds the create payload for a catalog service. Quick-add
// always bills monthly.
func QuickAddRequest(service models.CatalogService) CreateSubscriptionRequest {
	return CreateSubscriptionRequest{
		Name:         service.Name,
		Price:        service.Price.InexactFloat64(),
		BillingCycle: string(models.BillingCycleMonthly),
		Category:     service.Category,
	}
}
