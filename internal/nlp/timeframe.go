package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/veggievision/lokatani/internal/dataset"
)

// TimeFrame is the calendar period a question refers to. Start and End are
// inclusive day bounds. A weekday frame has no bounds; it matches every
// record taken on Weekday.
type TimeFrame struct {
	Rule            string
	Description     string
	FullDescription string
	Start           time.Time
	End             time.Time
	Weekday         *time.Weekday
	// Relative frames ("hari ini", "bulan lalu") read without "pada" in
	// answers.
	Relative bool
}

// Query builds the dataset filter for this frame, reading weekdays in loc.
func (tf TimeFrame) Query(loc *time.Location) dataset.Query {
	return dataset.Query{
		Since:    tf.Start,
		Until:    tf.End,
		Weekday:  tf.Weekday,
		Location: loc,
	}
}

// phrase is the frame as it follows a subject in an answer.
func (tf TimeFrame) phrase() string {
	if tf.Relative {
		return tf.FullDescription
	}
	return "pada " + tf.FullDescription
}

// rule is one temporal pattern family. match returns the submatches of the
// first acceptable occurrence, or nil.
type rule struct {
	name    string
	match   func(q string) []string
	resolve func(m []string, now time.Time) (TimeFrame, *Rejection)
}

// Resolver turns temporal expressions into time frames. Rules are tried in
// order and the first match wins, most specific first.
type Resolver struct {
	cal   Calendar
	lex   Lexicon
	rules []rule
}

const (
	yearWord = `(?:tahun|thn\.?|th)`
	pastWord = `(?:lalu|kemarin|kemaren|kmrn|sebelumnya|yg lalu|yang lalu|yg lewat|yang lewat)`
	nowWord  = `(?:ini|yg ini|yang ini|skrg|skrang|sekarang)`
	weekWord = `(?:minggu|mingu|pekan)`
	mthWord  = `(?:bulan|bln)`
)

// blockedPrefixes are words that turn "kemarin"/"sekarang" into part of a
// longer period expression handled by another rule.
var blockedPrefixes = map[string]bool{
	"tahun": true, "thn": true, "thn.": true, "th": true,
	"bulan": true, "bln": true,
	"minggu": true, "mingu": true, "pekan": true,
}

// NewResolver builds the rule table for lex, reading dates with cal.
func NewResolver(cal Calendar, lex Lexicon) *Resolver {
	r := &Resolver{cal: cal, lex: lex}
	month := `(` + lex.monthAlternation() + `)`

	monthLastYear := regexp.MustCompile(`\b` + month + `\s+` + yearWord + `\s*` + pastWord + `\b`)
	explicitYear := regexp.MustCompile(`\b` + yearWord + `\s*(\d{4})\b`)
	explicitDate := regexp.MustCompile(`\b(?:(?:tanggal|tgl)\.?\s*)?(\d{1,2})\s*` + month + `(?:\s*(\d{4}))?\b`)
	monthName := regexp.MustCompile(`\b` + month + `(?:\s*(\d{4}))?\b`)
	lastMonth := regexp.MustCompile(`\b` + mthWord + `\s*` + pastWord + `\b`)
	lastWeek := regexp.MustCompile(`\b` + weekWord + `\s*` + pastWord + `\b`)
	thisWeek := regexp.MustCompile(`\b` + weekWord + `\s*` + nowWord + `\b`)
	thisMonth := regexp.MustCompile(`\b` + mthWord + `\s*` + nowWord + `\b`)
	weekday := regexp.MustCompile(`\b(?:hari\s+)?(` + lex.weekdayAlternation() + `)\b`)
	yesterday := regexp.MustCompile(`(?:(\S+)\s+)?\b(?:kemarin|kemaren|kmrn|kmaren)\b`)
	today := regexp.MustCompile(`(?:(\S+)\s+)?\b(?:hari ini|hri ini|hr ini|sekarang|skrg)\b`)
	lastYear := regexp.MustCompile(`\b` + yearWord + `\s*` + pastWord + `\b`)
	thisYear := regexp.MustCompile(`\b` + yearWord + `\s*` + nowWord + `\b`)

	r.rules = []rule{
		{"bulan tahun lalu", submatch(monthLastYear), r.monthLastYear},
		{"tahun", submatch(explicitYear), r.explicitYear},
		{"tanggal", submatch(explicitDate), r.explicitDate},
		{"bulan", submatch(monthName), r.monthName},
		{"bulan lalu", submatch(lastMonth), r.lastMonth},
		{"minggu lalu", submatch(lastWeek), r.lastWeek},
		{"minggu ini", submatch(thisWeek), r.thisWeek},
		{"bulan ini", submatch(thisMonth), r.thisMonth},
		{"hari", submatch(weekday), r.weekday},
		{"kemarin", standalone(yesterday), r.yesterday},
		{"hari ini", standalone(today), r.today},
		{"tahun lalu", submatch(lastYear), r.lastYear},
		{"tahun ini", submatch(thisYear), r.thisYear},
	}
	return r
}

// Rules lists the rule names in precedence order.
func (r *Resolver) Rules() []string {
	out := make([]string, len(r.rules))
	for i, rl := range r.rules {
		out[i] = rl.name
	}
	return out
}

// Resolve finds the period q refers to. When no rule matches, the returned
// Rejection has kind KindUnresolvedTimeFrame and no message; the caller
// words the clarification.
func (r *Resolver) Resolve(q string) (TimeFrame, *Rejection) {
	now := r.cal.Today()
	for _, rl := range r.rules {
		m := rl.match(q)
		if m == nil {
			continue
		}
		tf, rej := rl.resolve(m, now)
		if rej != nil {
			return TimeFrame{}, rej
		}
		tf.Rule = rl.name
		return tf, nil
	}
	return TimeFrame{}, &Rejection{Kind: KindUnresolvedTimeFrame}
}

func submatch(re *regexp.Regexp) func(string) []string {
	return re.FindStringSubmatch
}

// standalone accepts an occurrence only when the word before it does not
// make it part of a longer period ("tahun kemarin", "minggu sekarang").
func standalone(re *regexp.Regexp) func(string) []string {
	return func(q string) []string {
		for _, m := range re.FindAllStringSubmatch(q, -1) {
			if !blockedPrefixes[m[1]] {
				return m
			}
		}
		return nil
	}
}

func (r *Resolver) futureYear(year int, now time.Time) *Rejection {
	if year > now.Year() {
		return &Rejection{Kind: KindFutureYear, Message: futureYearMessage(year, now.Year())}
	}
	return nil
}

func (r *Resolver) monthOf(alias string, now time.Time) time.Month {
	if m, ok := r.lex.month(alias); ok {
		return m
	}
	return now.Month()
}

func yearOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return y
}

func (r *Resolver) monthLastYear(m []string, now time.Time) (TimeFrame, *Rejection) {
	month := r.monthOf(m[1], now)
	year := now.Year() - 1
	start, end := r.cal.MonthRange(year, month)
	desc := "bulan " + MonthName(month) + " tahun lalu"
	return TimeFrame{
		Description:     desc,
		FullDescription: fmt.Sprintf("%s (%d)", desc, year),
		Start:           start,
		End:             end,
	}, nil
}

func (r *Resolver) explicitYear(m []string, now time.Time) (TimeFrame, *Rejection) {
	year := yearOr(m[1], now.Year())
	if rej := r.futureYear(year, now); rej != nil {
		return TimeFrame{}, rej
	}
	start, end := r.cal.YearRange(year)
	desc := fmt.Sprintf("tahun %d", year)
	return TimeFrame{Description: desc, FullDescription: desc, Start: start, End: end}, nil
}

func (r *Resolver) explicitDate(m []string, now time.Time) (TimeFrame, *Rejection) {
	day, _ := strconv.Atoi(m[1])
	month := r.monthOf(m[2], now)
	year := yearOr(m[3], now.Year())
	if rej := r.futureYear(year, now); rej != nil {
		return TimeFrame{}, rej
	}
	if day < 1 || day > DaysIn(year, month) {
		return TimeFrame{}, &Rejection{
			Kind:    KindInvalidDate,
			Message: invalidDateMessage(day, MonthName(month), year),
		}
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, r.cal.location())
	start, end := r.cal.DayRange(date)
	desc := "tanggal " + r.cal.FormatDate(date)
	return TimeFrame{Description: desc, FullDescription: desc, Start: start, End: end}, nil
}

func (r *Resolver) monthName(m []string, now time.Time) (TimeFrame, *Rejection) {
	month := r.monthOf(m[1], now)
	year := yearOr(m[2], now.Year())
	if rej := r.futureYear(year, now); rej != nil {
		return TimeFrame{}, rej
	}
	start, end := r.cal.MonthRange(year, month)
	desc := fmt.Sprintf("bulan %s %d", MonthName(month), year)
	return TimeFrame{Description: desc, FullDescription: desc, Start: start, End: end}, nil
}

func (r *Resolver) lastMonth(_ []string, now time.Time) (TimeFrame, *Rejection) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, r.cal.location()).AddDate(0, -1, 0)
	start, end := r.cal.MonthRange(first.Year(), first.Month())
	return TimeFrame{
		Description:     "bulan lalu",
		FullDescription: fmt.Sprintf("bulan lalu (%s %d)", MonthName(first.Month()), first.Year()),
		Start:           start,
		End:             end,
		Relative:        true,
	}, nil
}

func (r *Resolver) lastWeek(_ []string, now time.Time) (TimeFrame, *Rejection) {
	start, end := r.cal.WeekRange(now.AddDate(0, 0, -7))
	return r.week("minggu lalu", start, end), nil
}

func (r *Resolver) thisWeek(_ []string, now time.Time) (TimeFrame, *Rejection) {
	start, end := r.cal.WeekRange(now)
	return r.week("minggu ini", start, end), nil
}

func (r *Resolver) week(desc string, start, end time.Time) TimeFrame {
	return TimeFrame{
		Description:     desc,
		FullDescription: fmt.Sprintf("%s (%s - %s)", desc, r.cal.FormatDate(start), r.cal.FormatDate(end)),
		Start:           start,
		End:             end,
		Relative:        true,
	}
}

func (r *Resolver) thisMonth(_ []string, now time.Time) (TimeFrame, *Rejection) {
	start, end := r.cal.MonthRange(now.Year(), now.Month())
	return TimeFrame{
		Description:     "bulan ini",
		FullDescription: fmt.Sprintf("bulan ini (%s %d)", MonthName(now.Month()), now.Year()),
		Start:           start,
		End:             end,
		Relative:        true,
	}, nil
}

func (r *Resolver) weekday(m []string, _ time.Time) (TimeFrame, *Rejection) {
	day := r.lex.Weekdays[m[1]]
	desc := "hari " + DayName(day)
	return TimeFrame{Description: desc, FullDescription: desc, Weekday: &day}, nil
}

func (r *Resolver) yesterday(_ []string, now time.Time) (TimeFrame, *Rejection) {
	return r.day("kemarin", now.AddDate(0, 0, -1)), nil
}

func (r *Resolver) today(_ []string, now time.Time) (TimeFrame, *Rejection) {
	return r.day("hari ini", now), nil
}

func (r *Resolver) day(desc string, t time.Time) TimeFrame {
	start, end := r.cal.DayRange(t)
	return TimeFrame{
		Description:     desc,
		FullDescription: fmt.Sprintf("%s (%s)", desc, r.cal.FormatDate(t)),
		Start:           start,
		End:             end,
		Relative:        true,
	}
}

func (r *Resolver) lastYear(_ []string, now time.Time) (TimeFrame, *Rejection) {
	return r.year("tahun lalu", now.Year()-1), nil
}

func (r *Resolver) thisYear(_ []string, now time.Time) (TimeFrame, *Rejection) {
	return r.year("tahun ini", now.Year()), nil
}

func (r *Resolver) year(desc string, year int) TimeFrame {
	start, end := r.cal.YearRange(year)
	return TimeFrame{
		Description:     desc,
		FullDescription: fmt.Sprintf("%s (%d)", desc, year),
		Start:           start,
		End:             end,
		Relative:        true,
	}
}
