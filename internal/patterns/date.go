package patterns

import "regexp"

// DateShape identifies how the capture groups of a date pattern map onto
// day, month, and year components.
type DateShape int

const (
	// ShapeDMY captures day, month, four-digit year
	ShapeDMY DateShape = iota
	// ShapeDMY2 captures day, month, two-digit year
	ShapeDMY2
	// ShapeDayMonthName captures day, month name, four-digit year
	ShapeDayMonthName
	// ShapeMonthNameDay captures month name, day, four-digit year
	ShapeMonthNameDay
	// ShapeYMD captures four-digit year, month, day (ISO)
	ShapeYMD
)

// DatePattern pairs a compiled date regex with its component shape and the
// base confidence a date extracted by it starts from. Unambiguous marks
// formats that cannot be misread (named months, ISO order).
type DatePattern struct {
	Name           string
	Regex          *regexp.Regexp
	Shape          DateShape
	BaseConfidence float64
	Unambiguous    bool
}

// monthNameGroup matches an English month name or its three-letter prefix
const monthNameGroup = `(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?`

// DatePatterns is the ordered list of date shapes, most reliable first.
var DatePatterns = []DatePattern{
	{
		Name:           "numeric_dmy",
		Regex:          regexp.MustCompile(`\b([0-3]?[0-9])[/-]([0-1]?[0-9])[/-]([0-9]{4})\b`),
		Shape:          ShapeDMY,
		BaseConfidence: 0.8,
	},
	{
		Name:           "iso_ymd",
		Regex:          regexp.MustCompile(`\b([0-9]{4})-([0-1][0-9])-([0-3][0-9])\b`),
		Shape:          ShapeYMD,
		BaseConfidence: 0.85,
		Unambiguous:    true,
	},
	{
		Name:           "day_month_name",
		Regex:          regexp.MustCompile(`(?i)\b([0-3]?[0-9])(?:st|nd|rd|th)?[\s-]+` + monthNameGroup + `[\s,-]+([0-9]{4})\b`),
		Shape:          ShapeDayMonthName,
		BaseConfidence: 0.85,
		Unambiguous:    true,
	},
	{
		Name:           "month_name_day",
		Regex:          regexp.MustCompile(`(?i)\b` + monthNameGroup + `\s+([0-3]?[0-9])(?:st|nd|rd|th)?,?\s+([0-9]{4})\b`),
		Shape:          ShapeMonthNameDay,
		BaseConfidence: 0.85,
		Unambiguous:    true,
	},
	{
		Name:           "dotted_dmy",
		Regex:          regexp.MustCompile(`\b([0-3]?[0-9])\.([0-1]?[0-9])\.([0-9]{4})\b`),
		Shape:          ShapeDMY,
		BaseConfidence: 0.75,
	},
	{
		Name:           "numeric_dmy_short",
		Regex:          regexp.MustCompile(`\b([0-3]?[0-9])[/-]([0-1]?[0-9])[/-]([0-9]{2})\b`),
		Shape:          ShapeDMY2,
		BaseConfidence: 0.65,
	},
}

// MonthNumbers maps lowercase three-letter month prefixes to month numbers
var MonthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// DateKeywords are words whose proximity to a date match raises the
// confidence that the token is the transaction date.
var DateKeywords = []string{"on", "dated", "dt"}

// RecencyKeywords trigger the "transaction happened just now" fallback when
// no explicit date appears in the message.
var RecencyKeywords = []string{"today", "now", "just"}

// TimeRegex matches an explicit HH:MM time token, used by the second date
// fallback ("today at that time").
var TimeRegex = regexp.MustCompile(`\b([0-2]?[0-9]):([0-5][0-9])\b`)
