package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"subsmanager-miniapp/internal/models"
	"subsmanager-miniapp/internal/repositories"
)

type userState struct {
	mu         sync.Mutex
	state      *models.ViewState
	persisted  models.ViewSession
	generation uint64
	cancel     context.CancelFunc
	lastSeen   time.Time // guarded by StateStore.mu
	evicted    bool
}

// StateStore keeps one ViewState per user. Each state is guarded by its own
// mutex; callers never hold it across backend calls. Idle states are swept
// and rebuilt from the persisted ViewSession on the next request.
type StateStore struct {
	mu       sync.Mutex
	users    map[int64]*userState
	sessions repositories.ViewSessionRepositoryInterface
	logger   *slog.Logger
	now      func() time.Time
}

func NewStateStore(sessions repositories.ViewSessionRepositoryInterface, logger *slog.Logger) StateStoreInterface {
	return &StateStore{
		users:    make(map[int64]*userState),
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Sweep drops states idle for longer than idle. States that are locked or
// have a load in flight are kept. It returns how many states were dropped.
func (s *StateStore) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.users {
		if now.Sub(entry.lastSeen) <= idle || !entry.mu.TryLock() {
			continue
		}
		if entry.cancel == nil {
			entry.evicted = true
			delete(s.users, id)
			removed++
		}
		entry.mu.Unlock()
	}
	return removed
}

// Len reports how many user states are held in memory.
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Update runs fn with the user's state locked, then persists changed preferences.
func (s *StateStore) Update(ctx context.Context, user models.HostUser, fn func(state *models.ViewState) error) error {
	entry := s.lock(ctx, user)
	defer entry.mu.Unlock()

	err := fn(entry.state)
	s.persist(ctx, entry)
	return err
}

// BeginLoad starts a new load generation for the user and cancels the
// context of any load still in flight.
func (s *StateStore) BeginLoad(ctx context.Context, user models.HostUser) (context.Context, uint64, context.CancelFunc) {
	entry := s.lock(ctx, user)
	defer entry.mu.Unlock()

	if entry.cancel != nil {
		entry.cancel()
	}
	entry.generation++
	loadCtx, cancel := context.WithCancel(ctx)
	entry.cancel = cancel

	return loadCtx, entry.generation, cancel
}

// ApplyLoad applies a load result only if generation is still the latest.
// fn decides whether the state counts as loaded.
func (s *StateStore) ApplyLoad(ctx context.Context, user models.HostUser, generation uint64, fn func(state *models.ViewState)) bool {
	entry := s.lock(ctx, user)
	defer entry.mu.Unlock()

	if entry.generation != generation {
		return false
	}

	fn(entry.state)
	entry.state.ReconcileSelection()
	entry.cancel = nil
	s.persist(ctx, entry)
	return true
}

func (s *StateStore) lock(ctx context.Context, user models.HostUser) *userState {
	var entry *userState
	for {
		s.mu.Lock()
		existing, ok := s.users[user.ID]
		if !ok {
			existing = &userState{}
			s.users[user.ID] = existing
		}
		existing.lastSeen = s.now()
		s.mu.Unlock()

		existing.mu.Lock()
		if !existing.evicted {
			entry = existing
			break
		}
		// swept between lookup and lock
		existing.mu.Unlock()
	}

	if entry.state == nil {
		entry.state = models.NewViewState(user)
		s.restore(ctx, entry)
	}
	if user.FirstName != "" {
		entry.state.User.FirstName = user.FirstName
	}
	entry.state.User.Source = user.Source
	return entry
}

func (s *StateStore) restore(ctx context.Context, entry *userState) {
	entry.persisted = *models.SnapshotViewSession(entry.state)
	if s.sessions == nil {
		return
	}

	session, err := s.sessions.Get(entry.state.User.ID)
	if err != nil {
		if !errors.Is(err, repositories.ErrViewSessionNotFound) {
			s.logger.WarnContext(ctx, "failed to restore view session",
				slog.Int64("user_id", entry.state.User.ID),
				slog.String("error", err.Error()),
				slog.String("trace_id", TraceIDFromContext(ctx)),
			)
		}
		return
	}

	session.Restore(entry.state)
	entry.persisted = *session
}

func (s *StateStore) persist(ctx context.Context, entry *userState) {
	if s.sessions == nil {
		return
	}

	snapshot := models.SnapshotViewSession(entry.state)
	if sameSession(&entry.persisted, snapshot) {
		return
	}

	if err := s.sessions.Save(snapshot); err != nil {
		s.logger.WarnContext(ctx, "failed to persist view session",
			slog.Int64("user_id", snapshot.UserID),
			slog.String("error", err.Error()),
			slog.String("trace_id", TraceIDFromContext(ctx)),
		)
		return
	}
	entry.persisted = *snapshot
}

func sameSession(a, b *models.ViewSession) bool {
	if a.CurrentTab != b.CurrentTab || a.FirstName != b.FirstName {
		return false
	}
	switch {
	case a.SelectedSubscriptionID == nil && b.SelectedSubscriptionID == nil:
		return true
	case a.SelectedSubscriptionID == nil || b.SelectedSubscriptionID == nil:
		return false
	default:
		return *a.SelectedSubscriptionID == *b.SelectedSubscriptionID
	}
}
