// Package format turns raw amounts, dates and counts into display strings
// for the configured locale.
package format

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
}

// Abbreviated month names in the genitive case, as browsers render "5 янв.".
var ruMonths = [12]string{
	"янв.", "февр.", "мар.", "апр.", "мая", "июн.",
	"июл.", "авг.", "сент.", "окт.", "нояб.", "дек.",
}

var enMonths = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Formatter renders values for a single locale. It is safe for concurrent use.
type Formatter struct {
	tag            language.Tag
	printer        *message.Printer
	currencySymbol string
	groupSep       string
	slavic         bool
}

// New builds a Formatter for a BCP 47 locale such as "ru-RU" or "en-US".
func New(locale, currencySymbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	base, _ := tag.Base()
	slavic := false
	switch base.String() {
	case "ru", "uk", "be":
		slavic = true
	}

	printer := message.NewPrinter(tag)
	groupSep := strings.TrimSuffix(strings.TrimPrefix(printer.Sprintf("%d", 1000), "1"), "000")

	return &Formatter{
		tag:            tag,
		printer:        printer,
		currencySymbol: currencySymbol,
		groupSep:       groupSep,
		slavic:         slavic,
	}, nil
}

// MustNew is New for static locales known to parse.
func MustNew(locale, currencySymbol string) *Formatter {
	f, err := New(locale, currencySymbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the locale tag the formatter was built for.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// FormatCurrency rounds half away from zero to whole units, groups thousands
// the way the locale does and appends the currency symbol.
func (f *Formatter) FormatCurrency(amount decimal.Decimal) string {
	return f.FormatNumber(amount) + f.currencySymbol
}

// FormatNumber is FormatCurrency without the symbol.
func (f *Formatter) FormatNumber(amount decimal.Decimal) string {
	whole := amount.Round(0).BigInt()
	if whole.IsInt64() {
		return f.printer.Sprintf("%d", whole.Int64())
	}
	return f.groupDigits(whole.String())
}

// groupDigits splits a base-10 integer into thousands with the locale separator.
func (f *Formatter) groupDigits(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(f.groupSep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders an ISO date as day plus abbreviated month.
// Input that does not parse is returned unchanged.
func (f *Formatter) FormatDate(iso string) string {
	t, ok := parseISO(iso)
	if !ok {
		return iso
	}

	if f.slavic {
		return fmt.Sprintf("%d %s", t.Day(), ruMonths[t.Month()-1])
	}
	return fmt.Sprintf("%s %d", enMonths[t.Month()-1], t.Day())
}

// Pluralize picks the grammatical form of a noun for n.
//
// Slavic locales use forms [one, few, many]: forms[0] when n%10 == 1 and
// n%100 != 11, forms[1] when n%10 is 2..4 and n%100 is outside 10..19,
// otherwise forms[2]. Other locales follow their CLDR cardinal rules, with
// "one" mapped to forms[0], "few" to forms[1] and everything else to the
// last form.
func (f *Formatter) Pluralize(n int, forms []string) string {
	if len(forms) == 0 {
		return ""
	}

	if f.slavic {
		return pick(forms, slavicForm(n))
	}

	i := n
	if i < 0 {
		i = -i
	}
	switch plural.Cardinal.MatchPlural(f.tag, i, 0, 0, 0, 0) {
	case plural.One:
		return pick(forms, 0)
	case plural.Few:
		return pick(forms, 1)
	default:
		return forms[len(forms)-1]
	}
}

// CountNoun is "N <noun>" with the noun pluralized for N.
func (f *Formatter) CountNoun(n int, forms []string) string {
	return fmt.Sprintf("%d %s", n, f.Pluralize(n, forms))
}

// EscapeHTML neutralises markup-significant characters for plain-text sinks.
// Templates escape on their own.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

func slavicForm(n int) int {
	n10 := n % 10
	n100 := n % 100

	if n10 == 1 && n100 != 11 {
		return 0
	}
	if n10 >= 2 && n10 <= 4 && (n100 < 10 || n100 >= 20) {
		return 1
	}
	return 2
}

func pick(forms []string, idx int) string {
	if idx >= len(forms) {
		return forms[len(forms)-1]
	}
	return forms[idx]
}

func parseISO(value string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
