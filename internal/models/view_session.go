package models

import "time"

// ViewSession persists a user's UI preferences so the tab and the open detail
// panel survive server restarts.
type ViewSession struct {
	UserID                 int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FirstName              string    `gorm:"type:varchar(255)" json:"first_name"`
	CurrentTab             string    `gorm:"type:varchar(32);not null;default:'subscriptions'" json:"current_tab"`
	SelectedSubscriptionID *int64    `json:"selected_subscription_id,omitempty"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null" json:"updated_at"`
}

func (ViewSession) TableName() string {
	return "view_sessions"
}

// SnapshotViewSession captures the persistable part of a view state.
func SnapshotViewSession(state *ViewState) *ViewSession {
	session := &ViewSession{
		UserID:     state.User.ID,
		FirstName:  state.User.FirstName,
		CurrentTab: string(state.CurrentTab),
	}
	if state.SelectedID != nil {
		id := *state.SelectedID
		session.SelectedSubscriptionID = &id
	}
	return session
}

// Restore copies the stored preferences onto a fresh view state. The selection
// only sticks once a load confirms the subscription still exists.
func (s *ViewSession) Restore(state *ViewState) {
	if tab := Tab(s.CurrentTab); tab.Valid() {
		state.CurrentTab = tab
	}
	if s.SelectedSubscriptionID != nil {
		id := *s.SelectedSubscriptionID
		state.SelectedID = &id
	}
	if state.User.FirstName == "" {
		state.User.FirstName = s.FirstName
	}
}
