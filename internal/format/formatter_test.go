package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var subscriptionForms = []string{"подписка", "подписки", "подписок"}

// normalizeSpaces folds the locale's non-breaking group separators into plain spaces.
func normalizeSpaces(s string) string {
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
}

type FormatterTestSuite struct {
	suite.Suite
	ru *Formatter
	en *Formatter
}

func TestFormatterSuite(t *testing.T) {
	suite.Run(t, new(FormatterTestSuite))
}

func (s *FormatterTestSuite) SetupTest() {
	s.ru = MustNew("ru-RU", "₽")
	s.en = MustNew("en-US", "$")
}

func (s *FormatterTestSuite) TestNew_InvalidLocale() {
	_, err := New("not a locale!!", "₽")
	s.Error(err)
}

func (s *FormatterTestSuite) TestFormatCurrency_RoundsAndGroups() {
	s.Equal("1 235₽", normalizeSpaces(s.ru.FormatCurrency(decimal.NewFromFloat(1234.6))))
	s.Equal("299₽", s.ru.FormatCurrency(decimal.NewFromInt(299)))
	s.Equal("0₽", s.ru.FormatCurrency(decimal.Zero))
	s.Equal("1 000 000₽", normalizeSpaces(s.ru.FormatCurrency(decimal.NewFromInt(1000000))))
}

func (s *FormatterTestSuite) TestFormatCurrency_HalfAwayFromZero() {
	s.Equal("3₽", s.ru.FormatCurrency(decimal.RequireFromString("2.5")))
	s.Equal("2₽", s.ru.FormatCurrency(decimal.RequireFromString("2.49")))
}

func (s *FormatterTestSuite) TestFormatCurrency_LocaleConfigurable() {
	s.Equal("1,235$", s.en.FormatCurrency(decimal.NewFromFloat(1234.6)))
}

func (s *FormatterTestSuite) TestFormatCurrency_Monotonic() {
	prev := int64(-1 << 62)
	for cents := int64(0); cents <= 500000; cents += 1337 {
		amount := decimal.New(cents, -2)
		got, err := strconv.ParseInt(digitsOnly(s.ru.FormatCurrency(amount)), 10, 64)
		s.Require().NoError(err)
		s.GreaterOrEqual(got, prev)
		prev = got
	}
}

func (s *FormatterTestSuite) TestFormatCurrency_BeyondInt64() {
	maxInt64 := decimal.NewFromInt(math.MaxInt64)
	above := maxInt64.Add(decimal.NewFromInt(1))

	s.Equal("9 223 372 036 854 775 807₽", normalizeSpaces(s.ru.FormatCurrency(maxInt64)))
	s.Equal("9 223 372 036 854 775 808₽", normalizeSpaces(s.ru.FormatCurrency(above)))
	s.Equal("-9 223 372 036 854 775 809₽", normalizeSpaces(s.ru.FormatCurrency(decimal.NewFromInt(math.MinInt64).Sub(decimal.NewFromInt(1)))))
	s.Equal("100,000,000,000,000,000,000,000$", s.en.FormatCurrency(decimal.RequireFromString("99999999999999999999999.5")))
}

func (s *FormatterTestSuite) TestFormatCurrency_MonotonicAcrossInt64Boundary() {
	start := decimal.NewFromInt(math.MaxInt64 - 5)
	prev := new(big.Int).SetInt64(math.MaxInt64 - 6)
	for i := 0; i < 12; i++ {
		got, ok := new(big.Int).SetString(digitsOnly(s.ru.FormatCurrency(start.Add(decimal.NewFromInt(int64(i))))), 10)
		s.Require().True(ok)
		s.Equal(1, got.Cmp(prev))
		prev = got
	}
}

func (s *FormatterTestSuite) TestFormatDate() {
	s.Equal("5 янв.", s.ru.FormatDate("2025-01-05"))
	s.Equal("31 мая", s.ru.FormatDate("2025-05-31"))
	s.Equal("12 дек.", s.ru.FormatDate("2024-12-12T10:30:00"))
	s.Equal("Jan 5", s.en.FormatDate("2025-01-05T00:00:00Z"))
	s.Equal("tomorrow", s.ru.FormatDate("tomorrow"))
}

func (s *FormatterTestSuite) TestPluralize_Examples() {
	s.Equal("подписка", s.ru.Pluralize(1, subscriptionForms))
	s.Equal("подписка", s.ru.Pluralize(21, subscriptionForms))
	s.Equal("подписок", s.ru.Pluralize(11, subscriptionForms))
	s.Equal("подписки", s.ru.Pluralize(3, subscriptionForms))
	s.Equal("подписок", s.ru.Pluralize(12, subscriptionForms))
	s.Equal("подписки", s.ru.Pluralize(24, subscriptionForms))
	s.Equal("подписок", s.ru.Pluralize(0, subscriptionForms))
	s.Equal("подписок", s.ru.Pluralize(111, subscriptionForms))
}

func (s *FormatterTestSuite) TestPluralize_SlavicRuleHoldsForAllN() {
	for n := 0; n <= 1000; n++ {
		got := s.ru.Pluralize(n, subscriptionForms)
		isOne := n%10 == 1 && n%100 != 11
		isFew := n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20)

		switch {
		case isOne:
			s.Equal(subscriptionForms[0], got, "n=%d", n)
		case isFew:
			s.Equal(subscriptionForms[1], got, "n=%d", n)
		default:
			s.Equal(subscriptionForms[2], got, "n=%d", n)
		}
	}
}

func (s *FormatterTestSuite) TestPluralize_OtherLocales() {
	forms := []string{"subscription", "subscriptions"}

	s.Equal("subscription", s.en.Pluralize(1, forms))
	s.Equal("subscriptions", s.en.Pluralize(0, forms))
	s.Equal("subscriptions", s.en.Pluralize(21, forms))
}

func (s *FormatterTestSuite) TestPluralize_EmptyForms() {
	s.Equal("", s.ru.Pluralize(5, nil))
}

func (s *FormatterTestSuite) TestCountNoun() {
	s.Equal("3 подписки", s.ru.CountNoun(3, subscriptionForms))
}

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<script>alert(1)</script>`)

	require.NotContains(t, got, "<script>")
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", got)
	assert.Equal(t, "Tom &amp; &#34;Jerry&#34;", EscapeHTML(`Tom & "Jerry"`))
}
