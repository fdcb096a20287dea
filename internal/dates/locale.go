package dates

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale carries the month and weekday names used for display.
type Locale struct {
	tag       language.Tag
	months    [12]string
	genitive  [12]string
	short     [12]string
	weekdays  [7]string
	today     string
	yesterday string
	longFmt   string
}

var catalog = []Locale{
	{
		tag: language.English,
		months: [12]string{"january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december"},
		short:     [12]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"},
		weekdays:  [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"},
		today:     "Today",
		yesterday: "Yesterday",
		longFmt:   "%d %s %d",
	},
	{
		tag: language.Russian,
		months: [12]string{"январь", "февраль", "март", "апрель", "май", "июнь",
			"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь"},
		genitive: [12]string{"января", "февраля", "марта", "апреля", "мая", "июня",
			"июля", "августа", "сентября", "октября", "ноября", "декабря"},
		short:     [12]string{"янв", "фев", "мар", "апр", "май", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"},
		weekdays:  [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"},
		today:     "Сегодня",
		yesterday: "Вчера",
		longFmt:   "%d %s %d г.",
	},
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Russian})

// NewLocale resolves a BCP-47 tag such as "en", "ru" or "ru-RU" to one of the
// supported locales. Unknown or malformed tags fall back to English.
func NewLocale(name string) Locale {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog[0]
	}
	tag, err := language.Parse(name)
	if err != nil {
		return catalog[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(catalog) {
		return catalog[0]
	}
	return catalog[idx]
}

// English is the default locale.
func English() Locale { return catalog[0] }

// Tag returns the base language of the locale ("en", "ru").
func (l Locale) Tag() string {
	base, _ := l.tag.Base()
	return base.String()
}

func (l Locale) title(s string) string {
	return cases.Title(l.tag).String(s)
}

// MonthName returns the capitalised full name of the zero-based month.
func (l Locale) MonthName(month int) (string, error) {
	if err := ValidateMonth(month); err != nil {
		return "", err
	}
	return l.title(l.months[month]), nil
}

// ShortMonthName returns the capitalised abbreviated name of the zero-based month.
func (l Locale) ShortMonthName(month int) (string, error) {
	if err := ValidateMonth(month); err != nil {
		return "", err
	}
	return l.title(l.short[month]), nil
}

// WeekdayLabels returns short weekday labels starting with Monday.
func (l Locale) WeekdayLabels() [7]string {
	return l.weekdays
}

// MonthTitle formats a header such as "March 2024".
func (l Locale) MonthTitle(year, month int) (string, error) {
	name, err := l.MonthName(month)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d", name, year), nil
}

// FormatRelative renders a date key relative to now: the localized words for
// today and yesterday, otherwise day and abbreviated month ("10 Mar").
// Malformed keys are returned unchanged.
func (l Locale) FormatRelative(key string, now time.Time) string {
	t, err := ParseKey(key)
	if err != nil {
		return key
	}
	today := StartOfDay(now)
	switch Key(t) {
	case Key(today):
		return l.today
	case Key(today.AddDate(0, 0, -1)):
		return l.yesterday
	}
	short := l.short[int(t.Month())-1]
	if l.tag == language.English {
		short = l.title(short)
	}
	return fmt.Sprintf("%d %s", t.Day(), short)
}

// FormatLong renders a full date for headers ("16 October 2026").
func (l Locale) FormatLong(t time.Time) string {
	m := int(t.Month()) - 1
	name := l.title(l.months[m])
	if l.genitive[m] != "" {
		name = l.genitive[m]
	}
	return fmt.Sprintf(l.longFmt, t.Day(), name, t.Year())
}
