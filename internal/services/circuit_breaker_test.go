package services

import (
	"testing"
	"time"

	"subsmanager-miniapp/internal/models"

	"github.com/stretchr/testify/suite"
)

type CircuitBreakerTestSuite struct {
	suite.Suite
	breaker     *CircuitBreaker
	now         time.Time
	transitions [][2]models.CircuitBreakerState
}

func TestCircuitBreakerSuite(t *testing.T) {
	suite.Run(t, new(CircuitBreakerTestSuite))
}

func (s *CircuitBreakerTestSuite) SetupTest() {
	s.now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.transitions = nil
	s.breaker = NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:     3,
		ResetTimeout:    10 * time.Second,
		HalfOpenMaxSucc: 1,
	}, func(from, to models.CircuitBreakerState) {
		s.transitions = append(s.transitions, [2]models.CircuitBreakerState{from, to})
	}).(*CircuitBreaker)
	s.breaker.now = func() time.Time { return s.now }
}

func (s *CircuitBreakerTestSuite) trip() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}
}

func (s *CircuitBreakerTestSuite) TestOpensAfterMaxFailures() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())
	s.Equal(2, s.breaker.GetFailureCount())

	s.breaker.RecordFailure()
	s.True(s.breaker.IsOpen())
	s.Equal(StateOpen, s.breaker.GetState())
	s.Equal([][2]models.CircuitBreakerState{{StateClosed, StateOpen}}, s.transitions)
}

func (s *CircuitBreakerTestSuite) TestSuccessResetsFailures() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.breaker.RecordSuccess()
	s.breaker.RecordFailure()

	s.False(s.breaker.IsOpen())
	s.Equal(1, s.breaker.GetFailureCount())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenAfterTimeout() {
	s.trip()
	s.now = s.now.Add(11 * time.Second)

	s.False(s.breaker.IsOpen())
	s.Equal(StateHalfOpen, s.breaker.GetState())

	s.breaker.RecordSuccess()
	s.Equal(StateClosed, s.breaker.GetState())
	s.Equal(0, s.breaker.GetFailureCount())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenFailureReopens() {
	s.trip()
	s.now = s.now.Add(11 * time.Second)
	s.False(s.breaker.IsOpen())

	s.breaker.RecordFailure()
	s.True(s.breaker.IsOpen())
	s.Len(s.transitions, 3)
}

func (s *CircuitBreakerTestSuite) TestReset() {
	s.trip()
	s.breaker.Reset()

	s.False(s.breaker.IsOpen())
	s.Equal(0, s.breaker.GetFailureCount())
}

func (s *CircuitBreakerTestSuite) TestDefaultConfig() {
	config := DefaultCircuitBreakerConfig()
	s.Equal(5, config.MaxFailures)
	s.Equal(30*time.Second, config.ResetTimeout)
}
