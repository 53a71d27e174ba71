package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"subsmanager-miniapp/internal/config"
	"subsmanager-miniapp/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
)

const testBotToken = "123456:TEST-TOKEN"

type InitDataServiceTestSuite struct {
	suite.Suite
	service *InitDataService
	now     time.Time
}

func TestInitDataServiceSuite(t *testing.T) {
	suite.Run(t, new(InitDataServiceTestSuite))
}

func (s *InitDataServiceTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.service = NewInitDataService(&config.TelegramConfig{
		BotToken:       testBotToken,
		InitDataMaxAge: time.Hour,
	}).(*InitDataService)
	s.service.now = func() time.Time { return s.now }
}

// signInitData signs values the way the host platform does: HMAC-SHA256 of
// the sorted key=value lines, keyed by HMAC("WebAppData", bot token).
func signInitData(botToken string, values url.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if key != "hash" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *InitDataServiceTestSuite) signed(values url.Values) string {
	values.Set("hash", signInitData(testBotToken, values))
	return values.Encode()
}

func (s *InitDataServiceTestSuite) freshValues(userJSON string) url.Values {
	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(s.now.Add(-time.Minute).Unix(), 10))
	values.Set("query_id", gofakeit.UUID())
	values.Set("user", userJSON)
	return values
}

func (s *InitDataServiceTestSuite) TestValidate_Success() {
	initData := s.signed(s.freshValues(`{"id":777,"first_name":"Мария","language_code":"ru"}`))

	user, err := s.service.Validate(initData)
	s.Require().NoError(err)
	s.Equal(int64(777), user.ID)
	s.Equal("Мария", user.FirstName)
	s.Equal(models.IdentitySourceHost, user.Source)
}

func (s *InitDataServiceTestSuite) TestValidate_Empty() {
	_, err := s.service.Validate("")
	s.ErrorIs(err, ErrInitDataEmpty)
}

func (s *InitDataServiceTestSuite) TestValidate_NoHash() {
	_, err := s.service.Validate(s.freshValues(`{"id":1}`).Encode())
	s.ErrorIs(err, ErrInitDataNoHash)
}

func (s *InitDataServiceTestSuite) TestValidate_TamperedUser() {
	values := s.freshValues(`{"id":1,"first_name":"A"}`)
	values.Set("hash", signInitData(testBotToken, values))
	values.Set("user", `{"id":2,"first_name":"A"}`)

	_, err := s.service.Validate(values.Encode())
	s.ErrorIs(err, ErrInitDataSignature)
}

func (s *InitDataServiceTestSuite) TestValidate_WrongBotToken() {
	values := s.freshValues(`{"id":1}`)
	values.Set("hash", signInitData("other:token", values))

	_, err := s.service.Validate(values.Encode())
	s.ErrorIs(err, ErrInitDataSignature)
}

func (s *InitDataServiceTestSuite) TestValidate_Expired() {
	values := s.freshValues(`{"id":1}`)
	values.Set("auth_date", strconv.FormatInt(s.now.Add(-2*time.Hour).Unix(), 10))

	_, err := s.service.Validate(s.signed(values))
	s.ErrorIs(err, ErrInitDataExpired)
}

func (s *InitDataServiceTestSuite) TestValidate_NoMaxAgeSkipsFreshness() {
	s.service.maxAge = 0
	values := s.freshValues(`{"id":5}`)
	values.Set("auth_date", "0")

	user, err := s.service.Validate(s.signed(values))
	s.Require().NoError(err)
	s.Equal(int64(5), user.ID)
}

func (s *InitDataServiceTestSuite) TestValidate_MissingUser() {
	values := s.freshValues("")
	values.Del("user")

	_, err := s.service.Validate(s.signed(values))
	s.ErrorIs(err, ErrInitDataNoUser)
}

func (s *InitDataServiceTestSuite) TestValidate_MalformedUser() {
	_, err := s.service.Validate(s.signed(s.freshValues(`{not json`)))
	s.ErrorIs(err, ErrInitDataMalformed)
}

func (s *InitDataServiceTestSuite) TestValidate_BadAuthDate() {
	values := s.freshValues(`{"id":1}`)
	values.Set("auth_date", "yesterday")

	_, err := s.service.Validate(s.signed(values))
	s.ErrorIs(err, ErrInitDataMalformed)
}

func (s *InitDataServiceTestSuite) TestValidate_ExpiryUsesServiceClock() {
	values := s.freshValues(`{"id":3}`)
	values.Set("auth_date", strconv.FormatInt(s.now.Add(-59*time.Minute).Unix(), 10))
	initData := s.signed(values)

	_, err := s.service.Validate(initData)
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Minute)
	_, err = s.service.Validate(initData)
	s.ErrorIs(err, ErrInitDataExpired)
}
