package services

import (
	"context"
	"time"

	"subsmanager-miniapp/internal/dto"
	"subsmanager-miniapp/internal/models"
)

// GatewayInterface is the only way the app talks to the subscription backend
type GatewayInterface interface {
	FetchSubscriptions(ctx context.Context, userID int64) ([]models.Subscription, error)
	FetchAnalytics(ctx context.Context, userID int64) (*models.Analytics, error)
	FetchDuplicates(ctx context.Context, userID int64) ([]models.Duplicate, error)
	CreateSubscription(ctx context.Context, userID int64, req dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error)
	DeleteSubscription(ctx context.Context, subscriptionID int64) error
}

// DashboardServiceInterface runs the data-changing transitions of the view
type DashboardServiceInterface interface {
	Load(ctx context.Context, user models.HostUser) models.LoadResult
	DeleteSubscription(ctx context.Context, user models.HostUser, subscriptionID int64) error
	AddSubscription(ctx context.Context, user models.HostUser, form *dto.AddSubscriptionForm) error
	QuickAdd(ctx context.Context, user models.HostUser, serviceKey string) error
}

// StateStoreInterface owns the per-user view states
type StateStoreInterface interface {
	Update(ctx context.Context, user models.HostUser, fn func(state *models.ViewState) error) error
	BeginLoad(ctx context.Context, user models.HostUser) (context.Context, uint64, context.CancelFunc)
	ApplyLoad(ctx context.Context, user models.HostUser, generation uint64, fn func(state *models.ViewState)) bool
	Sweep(idle time.Duration) int
}

// InitDataServiceInterface verifies the launch parameters signed by the host platform
type InitDataServiceInterface interface {
	Validate(initData string) (*models.HostUser, error)
}

// TokenServiceInterface issues and checks session cookie tokens
type TokenServiceInterface interface {
	Issue(user models.HostUser) (string, time.Time, error)
	Validate(token string) (*models.SessionClaims, error)
}

// ActionJournalInterface records what users did
type ActionJournalInterface interface {
	Record(ctx context.Context, entry *models.ActionLog)
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordDuration(name string, duration time.Duration, tags map[string]string)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}
