package extractors

import (
	"strconv"
	"strings"
	"time"

	"golang-sms-analyzer/internal/models"
	"golang-sms-analyzer/internal/patterns"
	"golang-sms-analyzer/pkg/logger"
)

const (
	dateAcceptThreshold = 0.75

	// dateKeywordWindow is how far before the match a date keyword may sit
	dateKeywordWindow = 12

	dateKeywordBonus    = 0.05
	unambiguousBonus    = 0.05
	veryRecentBonus     = 0.1
	recentBonus         = 0.05
	stalePenalty        = 0.1
	recencyConfidence   = 0.4
	timeTokenConfidence = 0.35
)

// DateExtractor extracts the transaction date from message text. The clock
// is injectable so that the validity window and recency scoring are
// deterministic under test.
type DateExtractor struct {
	now func() time.Time
	log logger.Logger
}

// NewDateExtractor creates a date extractor using the wall clock
func NewDateExtractor() *DateExtractor {
	return NewDateExtractorAt(time.Now)
}

// NewDateExtractorAt creates a date extractor with an injected clock
func NewDateExtractorAt(now func() time.Time) *DateExtractor {
	return &DateExtractor{
		now: now,
		log: logger.WithComponent("date_extractor"),
	}
}

// Extract returns the best date candidate found in the text. A parsed date
// is only valid inside the window from one year in the past to one week in
// the future; anything outside is discarded.
func (e *DateExtractor) Extract(text string) models.ExtractionResult[time.Time] {
	if strings.TrimSpace(text) == "" {
		return models.NoMatch[time.Time]()
	}

	now := e.now()

	strategies := make([]Strategy[time.Time], 0, len(patterns.DatePatterns)+2)
	for _, pattern := range patterns.DatePatterns {
		strategies = append(strategies, e.patternStrategy(pattern, now))
	}
	strategies = append(strategies,
		e.recencyFallback(now),
		e.timeTokenFallback(now),
	)

	return Cascade(text, dateAcceptThreshold, strategies...)
}

// patternStrategy builds the extraction strategy for one date pattern
func (e *DateExtractor) patternStrategy(pattern patterns.DatePattern, now time.Time) Strategy[time.Time] {
	return func(text string) models.ExtractionResult[time.Time] {
		loc := pattern.Regex.FindStringSubmatchIndex(text)
		if loc == nil {
			return models.NoMatch[time.Time]()
		}

		groups := submatches(text, loc)
		parsed, ok := parseDateComponents(pattern.Shape, groups)
		if !ok {
			return models.NoMatch[time.Time]()
		}

		if !withinValidityWindow(parsed, now) {
			return models.NoMatch[time.Time]()
		}

		confidence := pattern.BaseConfidence

		if hasDateKeywordBefore(text, loc[0]) {
			confidence += dateKeywordBonus
		}

		if pattern.Unambiguous {
			confidence += unambiguousBonus
		}

		confidence += recencyAdjustment(parsed, now)

		return models.Extracted(parsed, confidence, text[loc[0]:loc[1]], pattern.Name)
	}
}

// recencyFallback yields "now" when the message says the transaction just
// happened but carries no explicit date.
func (e *DateExtractor) recencyFallback(now time.Time) Strategy[time.Time] {
	return func(text string) models.ExtractionResult[time.Time] {
		lower := strings.ToLower(text)
		for _, keyword := range patterns.RecencyKeywords {
			if containsWord(lower, keyword) {
				return models.Extracted(now, recencyConfidence, keyword, "recency_keyword")
			}
		}
		return models.NoMatch[time.Time]()
	}
}

// timeTokenFallback yields "today at HH:MM" when the message carries an
// explicit time but no date.
func (e *DateExtractor) timeTokenFallback(now time.Time) Strategy[time.Time] {
	return func(text string) models.ExtractionResult[time.Time] {
		match := patterns.TimeRegex.FindStringSubmatch(text)
		if match == nil {
			return models.NoMatch[time.Time]()
		}

		hour, _ := strconv.Atoi(match[1])
		minute, _ := strconv.Atoi(match[2])
		if hour > 23 {
			return models.NoMatch[time.Time]()
		}

		parsed := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		return models.Extracted(parsed, timeTokenConfidence, match[0], "time_token")
	}
}

// parseDateComponents assembles a time.Time from the capture groups of a
// date pattern, according to the pattern's component shape. Two-digit years
// expand on a 50/50 pivot: 00-49 becomes 2000s, 50-99 becomes 1900s.
func parseDateComponents(shape patterns.DateShape, groups []string) (time.Time, bool) {
	var day, month, year int
	var ok bool

	switch shape {
	case patterns.ShapeDMY:
		day, month, year, ok = atoiAll(groups[0], groups[1], groups[2])
	case patterns.ShapeDMY2:
		day, month, year, ok = atoiAll(groups[0], groups[1], groups[2])
		if ok {
			if year <= 49 {
				year += 2000
			} else {
				year += 1900
			}
		}
	case patterns.ShapeYMD:
		year, month, day, ok = atoiAll(groups[0], groups[1], groups[2])
	case patterns.ShapeDayMonthName:
		var dayOK, yearOK bool
		day, dayOK = atoi(groups[0])
		month = patterns.MonthNumbers[strings.ToLower(groups[1])]
		year, yearOK = atoi(groups[2])
		ok = dayOK && yearOK && month > 0
	case patterns.ShapeMonthNameDay:
		var dayOK, yearOK bool
		month = patterns.MonthNumbers[strings.ToLower(groups[0])]
		day, dayOK = atoi(groups[1])
		year, yearOK = atoi(groups[2])
		ok = dayOK && yearOK && month > 0
	default:
		return time.Time{}, false
	}

	if !ok || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out-of-range days (Feb 30 -> Mar 2); treat any
	// normalization as an invalid calendar date
	if parsed.Day() != day || parsed.Month() != time.Month(month) || parsed.Year() != year {
		return time.Time{}, false
	}

	return parsed, true
}

// withinValidityWindow accepts dates from one year in the past through one
// week in the future of now.
func withinValidityWindow(date, now time.Time) bool {
	oneYearAgo := now.AddDate(-1, 0, 0)
	oneWeekAhead := now.AddDate(0, 0, 7)
	return !date.Before(oneYearAgo) && !date.After(oneWeekAhead)
}

// recencyAdjustment scores dates closer to now higher and penalizes stale
// ones.
func recencyAdjustment(date, now time.Time) float64 {
	age := now.Sub(date)
	if age < 0 {
		age = -age
	}

	switch {
	case age <= 7*24*time.Hour:
		return veryRecentBonus
	case age <= 30*24*time.Hour:
		return recentBonus
	case age > 180*24*time.Hour:
		return -stalePenalty
	}
	return 0
}

// hasDateKeywordBefore checks for a date keyword ("on", "dated", "dt")
// immediately preceding the match.
func hasDateKeywordBefore(text string, start int) bool {
	from := start - dateKeywordWindow
	if from < 0 {
		from = 0
	}

	window := strings.ToLower(text[from:start])
	for _, keyword := range patterns.DateKeywords {
		if containsWord(window, keyword) {
			return true
		}
	}
	return false
}

// submatches returns the text of every capture group in order
func submatches(text string, loc []int) []string {
	groups := make([]string, 0, len(loc)/2-1)
	for i := 2; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[loc[i]:loc[i+1]])
	}
	return groups
}

// containsWord reports whether word occurs in lower delimited by
// non-letter boundaries.
func containsWord(lower, word string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)

		beforeOK := start == 0 || !isLetter(lower[start-1])
		afterOK := end == len(lower) || !isLetter(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func atoiAll(a, b, c string) (int, int, int, bool) {
	x, okA := atoi(a)
	y, okB := atoi(b)
	z, okC := atoi(c)
	return x, y, z, okA && okB && okC
}
