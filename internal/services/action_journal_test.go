package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"subsmanager-miniapp/internal/models"
	"subsmanager-miniapp/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type ActionJournalTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	repo    *repository_mocks.MockActionLogRepositoryInterface
	logs    *bytes.Buffer
	journal ActionJournalInterface
}

func TestActionJournalSuite(t *testing.T) {
	suite.Run(t, new(ActionJournalTestSuite))
}

func (s *ActionJournalTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = repository_mocks.NewMockActionLogRepositoryInterface(s.ctrl)
	s.logs = &bytes.Buffer{}
	s.journal = NewActionJournal(s.repo, slog.New(slog.NewJSONHandler(s.logs, nil)))
}

func (s *ActionJournalTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ActionJournalTestSuite) TestRecord_FillsTraceID() {
	ctx := WithTraceID(context.Background(), "trace-1")
	entry := &models.ActionLog{UserID: 9, Action: models.ActionTabSwitched, Resource: models.ResourceDashboard}

	s.repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(got *models.ActionLog) error {
		s.Equal("trace-1", got.TraceID)
		return nil
	})

	s.journal.Record(ctx, entry)
	s.Contains(s.logs.String(), `"event_type":"tab_switched"`)
}

func (s *ActionJournalTestSuite) TestRecord_RepoErrorIsLogged() {
	s.repo.EXPECT().Create(gomock.Any()).Return(errors.New("disk full"))

	s.journal.Record(context.Background(), &models.ActionLog{UserID: 1, Action: models.ActionSubscriptionDrop})
	s.Contains(s.logs.String(), "failed to write action log")
}

func (s *ActionJournalTestSuite) TestRecord_Nil() {
	s.journal.Record(context.Background(), nil)
	s.Empty(s.logs.String())
}

func (s *ActionJournalTestSuite) TestPrune() {
	s.repo.EXPECT().DeleteOlderThan(24*time.Hour).Return(int64(3), nil)

	removed, err := s.journal.Prune(context.Background(), 24*time.Hour)
	s.Require().NoError(err)
	s.Equal(int64(3), removed)
	s.Contains(s.logs.String(), "pruned action logs")
}

func (s *ActionJournalTestSuite) TestPrune_DisabledRetention() {
	removed, err := s.journal.Prune(context.Background(), 0)
	s.Require().NoError(err)
	s.Zero(removed)
}

func (s *ActionJournalTestSuite) TestPrune_RepoError() {
	s.repo.EXPECT().DeleteOlderThan(time.Hour).Return(int64(0), errors.New("locked"))

	_, err := s.journal.Prune(context.Background(), time.Hour)
	s.Error(err)
}
