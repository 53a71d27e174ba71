package dto

import (
	"errors"

	"subsmanager-miniapp/internal/models"

	"github.com/shopspring/decimal"
)

// Backend response DTOs

// SubscriptionsResponse is the body of GET /user/{id}/subscriptions
type SubscriptionsResponse struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
	Count         int                   `json:"count"`
}

// Check rejects a body without the subscriptions field
func (r *SubscriptionsResponse) Check() error {
	if r.Subscriptions == nil {
		return errors.New("missing subscriptions field")
	}
	return nil
}

// DuplicatesResponse is the body of GET /user/{id}/duplicates
type DuplicatesResponse struct {
	Duplicates  []models.Duplicate `json:"duplicates"`
	TotalSaving decimal.Decimal    `json:"total_saving"`
}

// Backend request DTOs

// CreateSubscriptionRequest is the body of POST /user/{id}/subscriptions
type CreateSubscriptionRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	BillingCycle string  `json:"billing_cycle"`
	Category     string  `json:"category,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	IsTrial      bool    `json:"is_trial"`
	TrialEndDate *string `json:"trial_end_date"`
}

// CreateSubscriptionResponse is what the backend returns after creating a subscription
type CreateSubscriptionResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// MessageResponse is a plain acknowledgement from the backend
type MessageResponse struct {
	Message string `json:"message"`
}
