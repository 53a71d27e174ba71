package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"subsmanager-miniapp/internal/dto"
	"subsmanager-miniapp/internal/models"

	"golang.org/x/sync/errgroup"
)

const (
	MsgLoadFailed      = "Ошибка загрузки данных"
	MsgDeleted         = "Подписка удалена"
	MsgDeleteFailed    = "Ошибка удаления"
	MsgAdded           = "Подписка добавлена!"
	MsgAddFailed       = "Ошибка добавления"
	MsgEditComingSoon  = "Редактирование скоро будет доступно"
	MsgDuplicatesInBot = "Посмотри дубликаты в боте"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrUnknownService       = errors.New("unknown quick-add service")
)

// DashboardService runs the transitions that talk to the backend: loading
// the dashboard, deleting and adding subscriptions.
type DashboardService struct {
	gateway GatewayInterface
	store   StateStoreInterface
	journal ActionJournalInterface
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

func NewDashboardService(gateway GatewayInterface, store StateStoreInterface, journal ActionJournalInterface, metrics MetricsRecorderInterface, logger *slog.Logger) DashboardServiceInterface {
	return &DashboardService{
		gateway: gateway,
		store:   store,
		journal: journal,
		metrics: metrics,
		logger:  logger,
	}
}

// Load fetches subscriptions and analytics concurrently, then duplicates, and
// applies whatever succeeded. The state only counts as loaded once the
// subscriptions read succeeds. A newer Load for the same user cancels this
// one and its result is dropped.
func (s *DashboardService) Load(ctx context.Context, user models.HostUser) models.LoadResult {
	loadCtx, generation, cancel := s.store.BeginLoad(ctx, user)
	defer cancel()
	s.countLoad("started")

	var (
		subscriptions    []models.Subscription
		analytics        *models.Analytics
		duplicates       []models.Duplicate
		subscriptionsErr error
		analyticsErr     error
		duplicatesErr    error
	)

	// both reads are awaited before either touches the state
	var g errgroup.Group
	g.Go(func() error {
		subscriptions, subscriptionsErr = s.gateway.FetchSubscriptions(loadCtx, user.ID)
		return nil
	})
	g.Go(func() error {
		analytics, analyticsErr = s.gateway.FetchAnalytics(loadCtx, user.ID)
		return nil
	})
	_ = g.Wait()

	if err := loadCtx.Err(); err != nil {
		duplicatesErr = err
	} else {
		duplicates, duplicatesErr = s.gateway.FetchDuplicates(loadCtx, user.ID)
	}

	result := models.LoadResult{Generation: generation}
	for _, read := range []struct {
		op  string
		err error
	}{
		{OpFetchSubscriptions, subscriptionsErr},
		{OpFetchAnalytics, analyticsErr},
		{OpFetchDuplicates, duplicatesErr},
	} {
		if read.err != nil {
			result.Failed = append(result.Failed, read.op)
		}
	}

	result.Applied = s.store.ApplyLoad(ctx, user, generation, func(state *models.ViewState) {
		if subscriptionsErr == nil {
			state.ApplySubscriptions(subscriptions)
			state.Loaded = true
		}
		if analyticsErr == nil {
			state.ApplyAnalytics(analytics)
		}
		if duplicatesErr == nil {
			state.ApplyDuplicates(duplicates)
		}
		if len(result.Failed) > 0 && ctx.Err() == nil {
			state.Notify(models.NotificationError, MsgLoadFailed)
		}
	})

	if !result.Applied {
		s.countLoad("superseded")
		s.logger.DebugContext(ctx, "dashboard load superseded",
			slog.Int64("user_id", user.ID),
			slog.Uint64("generation", generation),
			slog.String("trace_id", TraceIDFromContext(ctx)),
		)
		return result
	}

	s.countLoad("applied")
	s.journal.Record(ctx, &models.ActionLog{
		UserID:   user.ID,
		Action:   models.ActionDashboardLoaded,
		Resource: models.ResourceDashboard,
		Metadata: models.JSONBMap{
			"subscriptions": len(subscriptions),
			"failed":        len(result.Failed),
		},
	})
	return result
}

// DeleteSubscription removes a subscription the user currently sees. Ids not
// in the view are refused without calling the backend.
func (s *DashboardService) DeleteSubscription(ctx context.Context, user models.HostUser, subscriptionID int64) error {
	var name string
	known := false
	_ = s.store.Update(ctx, user, func(state *models.ViewState) error {
		if sub, ok := state.SubscriptionByID(subscriptionID); ok {
			known = true
			name = sub.Name
		}
		return nil
	})
	if !known {
		return ErrSubscriptionNotFound
	}

	if err := s.gateway.DeleteSubscription(ctx, subscriptionID); err != nil {
		_ = s.store.Update(ctx, user, func(state *models.ViewState) error {
			state.Notify(models.NotificationError, MsgDeleteFailed)
			state.Bridge.Haptic = models.HapticError
			return nil
		})
		return err
	}

	_ = s.store.Update(ctx, user, func(state *models.ViewState) error {
		state.RemoveSubscription(subscriptionID)
		state.CloseDetail()
		state.Notify(models.NotificationSuccess, MsgDeleted)
		state.Bridge.Haptic = models.HapticSuccess
		return nil
	})

	s.journal.Record(ctx, &models.ActionLog{
		UserID:     user.ID,
		Action:     models.ActionSubscriptionDrop,
		Resource:   models.ResourceSubscription,
		ResourceID: strconv.FormatInt(subscriptionID, 10),
		Metadata:   models.JSONBMap{"name": name},
	})

	s.Load(ctx, user)
	return nil
}

// AddSubscription creates a subscription from a validated form. On failure
// the form stays open with the submitted values.
func (s *DashboardService) AddSubscription(ctx context.Context, user models.HostUser, form *dto.AddSubscriptionForm) error {
	draft := form.ToDraft(nil)

	req, err := form.ToRequest()
	if err != nil {
		_ = s.store.Update(ctx, user, func(state *models.ViewState) error {
			state.KeepAddForm(draft)
			state.Notify(models.NotificationError, MsgAddFailed)
			return nil
		})
		return err
	}

	return s.create(ctx, user, req, MsgAdded, models.ActionSubscriptionAdd, draft)
}

// QuickAdd creates one of the catalog services, always billed monthly.
func (s *DashboardService) QuickAdd(ctx context.Context, user models.HostUser, serviceKey string) error {
	service, ok := models.LookupCatalogService(serviceKey)
	if !ok {
		return ErrUnknownService
	}

	return s.create(ctx, user, dto.QuickAddRequest(service), service.Name+" добавлен!", models.ActionQuickAdd, nil)
}

func (s *DashboardService) create(ctx context.Context, user models.HostUser, req dto.CreateSubscriptionRequest, successMessage, action string, draft *models.SubscriptionDraft) error {
	resp, err := s.gateway.CreateSubscription(ctx, user.ID, req)
	if err != nil {
		_ = s.store.Update(ctx, user, func(state *models.ViewState) error {
			if draft != nil {
				state.KeepAddForm(draft)
			}
			state.Notify(models.NotificationError, MsgAddFailed)
			state.Bridge.Haptic = models.HapticError
			return nil
		})
		return err
	}

	_ = s.store.Update(ctx, user, func(state *models.ViewState) error {
		state.CloseAddForm()
		state.Notify(models.NotificationSuccess, successMessage)
		state.Bridge.Haptic = models.HapticSuccess
		return nil
	})

	s.journal.Record(ctx, &models.ActionLog{
		UserID:     user.ID,
		Action:     action,
		Resource:   models.ResourceSubscription,
		ResourceID: strconv.FormatInt(resp.ID, 10),
		Metadata: models.JSONBMap{
			"name":          req.Name,
			"billing_cycle": req.BillingCycle,
		},
	})

	s.Load(ctx, user)
	return nil
}

func (s *DashboardService) countLoad(result string) {
	s.metrics.IncrementCounter(MetricDashboardLoad, map[string]string{"result": result})
}
