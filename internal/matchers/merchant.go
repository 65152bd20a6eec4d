package matchers

import (
	"regexp"
	"strings"

	"golang-sms-analyzer/internal/extractors"
	"golang-sms-analyzer/internal/models"
	"golang-sms-analyzer/internal/patterns"
	"golang-sms-analyzer/pkg/logger"

	"github.com/agnivade/levenshtein"
)

const (
	// merchantMatchThreshold is the cascade acceptance bar: the first
	// strategy whose result exceeds it wins
	merchantMatchThreshold = 0.5

	exactNameConfidence = 0.95
	regexScale          = 0.9
	aliasScale          = 0.85

	knownDomainConfidence   = 0.8
	unknownDomainConfidence = 0.6

	fuzzyNameScale  = 0.7
	fuzzyAliasScale = 0.6

	// curatedBaseConfidence is the base assigned to built-in dataset
	// entries, which carry no host-supplied base
	curatedBaseConfidence = 0.9

	fallbackMerchantConfidence = 0.3

	// minAliasLength guards substring containment against trivially short
	// aliases
	minAliasLength = 3
)

// MerchantMatch is the normalization of a raw merchant string to a
// canonical merchant, with optional category hints for the categorizer.
type MerchantMatch struct {
	CanonicalName string  `json:"canonical_name"`
	Confidence    float64 `json:"confidence"`
	Method        string  `json:"method"`

	// Category hints: IDs resolve against host reference data, Vertical is
	// a built-in dataset tag
	CategoryID    string `json:"category_id,omitempty"`
	SubcategoryID string `json:"subcategory_id,omitempty"`
	Vertical      string `json:"vertical,omitempty"`
}

// Matched reports whether the normalization produced anything
func (m MerchantMatch) Matched() bool {
	return m.CanonicalName != ""
}

// merchantEntry is one known merchant in the matcher's indexes, whether it
// came from host reference data or the curated dataset.
type merchantEntry struct {
	canonical     string
	base          float64
	categoryID    string
	subcategoryID string
	vertical      string
	aliases       []string
}

// compiledPattern pairs a host-supplied merchant regex with its entry
type compiledPattern struct {
	re    *regexp.Regexp
	entry *merchantEntry
}

// domainShapeRegex recognizes inputs that look like a bare domain token
var domainShapeRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(\.[a-z]{2,})+$`)

// MerchantMatcher normalizes raw merchant strings against host merchant
// patterns and the curated built-in dataset. All lookup maps are built at
// construction; reference updates construct a new matcher.
type MerchantMatcher struct {
	byName   map[string]*merchantEntry
	byAlias  map[string]*merchantEntry
	byDomain map[string]*merchantEntry
	regexes  []compiledPattern
	entries  []*merchantEntry
	log      logger.Logger
}

// NewMerchantMatcher builds a merchant matcher from a reference snapshot.
// Host merchant patterns win over the curated dataset on collision: they
// are indexed after it in the lookup maps and before it in the ordered
// scan list.
func NewMerchantMatcher(ref *models.ReferenceContext) *MerchantMatcher {
	m := &MerchantMatcher{
		byName:   make(map[string]*merchantEntry),
		byAlias:  make(map[string]*merchantEntry),
		byDomain: make(map[string]*merchantEntry),
		log:      logger.WithComponent("merchant_matcher"),
	}

	var curated []*merchantEntry
	for _, c := range patterns.CuratedMerchants {
		entry := &merchantEntry{
			canonical: c.Canonical,
			base:      curatedBaseConfidence,
			vertical:  c.Vertical,
			aliases:   c.Aliases,
		}
		curated = append(curated, entry)
		m.index(entry, c.Domains)
	}

	for _, pattern := range ref.MerchantPatterns {
		entry := &merchantEntry{
			canonical:     pattern.CanonicalName,
			base:          pattern.BaseConfidence,
			categoryID:    pattern.CategoryID,
			subcategoryID: pattern.SubcategoryID,
			aliases:       pattern.Aliases,
		}
		m.entries = append(m.entries, entry)
		m.index(entry, nil)

		for _, raw := range pattern.Patterns {
			re, err := regexp.Compile("(?i)" + raw)
			if err != nil {
				m.log.WithError(err).WithField("pattern", raw).
					Warn("skipping invalid merchant pattern regex")
				continue
			}
			m.regexes = append(m.regexes, compiledPattern{re: re, entry: entry})
		}
	}

	m.entries = append(m.entries, curated...)

	return m
}

// index registers an entry under its canonical name, aliases, and domains.
// Later registrations win on key collision.
func (m *MerchantMatcher) index(entry *merchantEntry, domains []string) {
	m.byName[strings.ToLower(entry.canonical)] = entry

	for _, alias := range entry.aliases {
		m.byAlias[strings.ToLower(alias)] = entry
	}

	for _, domain := range domains {
		m.byDomain[strings.ToLower(domain)] = entry
	}
}

// Normalize resolves a raw merchant string to a canonical merchant.
// Strategies run in fixed order and the first result above the acceptance
// threshold wins; otherwise the best score is kept. For non-empty input the
// title-cased fallback guarantees a non-empty result. Normalization is
// idempotent: normalizing a canonical name returns that same name.
func (m *MerchantMatcher) Normalize(raw string) MerchantMatch {
	cleaned := extractors.CleanMerchant(raw)
	if cleaned == "" {
		return MerchantMatch{}
	}

	strategies := []func(raw, cleaned string) MerchantMatch{
		m.matchExact,
		m.matchAlias,
		m.matchDomain,
		m.matchFuzzy,
		m.matchFallback,
	}

	var best MerchantMatch
	for _, strategy := range strategies {
		result := strategy(raw, cleaned)
		if result.Confidence > merchantMatchThreshold {
			return result
		}
		if result.Confidence > best.Confidence {
			best = result
		}
	}

	return best
}

// matchExact tries the canonical-name index, then the host regex patterns
func (m *MerchantMatcher) matchExact(raw, cleaned string) MerchantMatch {
	if entry, ok := m.byName[strings.ToLower(cleaned)]; ok {
		return entryMatch(entry, exactNameConfidence, "exact_name")
	}

	for _, pattern := range m.regexes {
		if pattern.re.MatchString(raw) {
			return entryMatch(pattern.entry, pattern.entry.base*regexScale, "pattern")
		}
	}

	return MerchantMatch{}
}

// matchAlias tries the alias index exactly, then substring containment in
// either direction.
func (m *MerchantMatcher) matchAlias(raw, cleaned string) MerchantMatch {
	lower := strings.ToLower(cleaned)

	if entry, ok := m.byAlias[lower]; ok {
		return entryMatch(entry, entry.base*aliasScale, "alias")
	}

	if len(lower) < minAliasLength {
		return MerchantMatch{}
	}

	// Scan entries in registration order so containment hits resolve the
	// same way on every call
	for _, entry := range m.entries {
		for _, alias := range entry.aliases {
			alias = strings.ToLower(alias)
			if len(alias) < minAliasLength {
				continue
			}
			if strings.Contains(lower, alias) || strings.Contains(alias, lower) {
				return entryMatch(entry, entry.base*aliasScale, "alias_contains")
			}
		}
	}

	return MerchantMatch{}
}

// matchDomain resolves domain-shaped input against the curated domain map,
// falling back to a title-cased domain stem for unknown domains.
func (m *MerchantMatcher) matchDomain(raw, cleaned string) MerchantMatch {
	lower := strings.ToLower(strings.TrimSpace(raw))
	lower = patterns.ProtocolPrefixRegex.ReplaceAllString(lower, "")

	if entry, ok := m.byDomain[lower]; ok {
		return entryMatch(entry, knownDomainConfidence, "domain")
	}

	if !domainShapeRegex.MatchString(lower) {
		return MerchantMatch{}
	}

	stem := lower[:strings.Index(lower, ".")]
	return MerchantMatch{
		CanonicalName: titleCase(stem),
		Confidence:    unknownDomainConfidence,
		Method:        "domain_unknown",
	}
}

// matchFuzzy compares the input against every canonical name and alias
// using normalized edit distance, scaled down to stay below the exact
// strategies. A length prefilter skips pairs that cannot reach a useful
// similarity, keeping the scan cheap on large tables.
func (m *MerchantMatcher) matchFuzzy(raw, cleaned string) MerchantMatch {
	lower := strings.ToLower(cleaned)

	var best MerchantMatch
	consider := func(entry *merchantEntry, candidate string, scale float64, method string) {
		similarity, ok := similarityScore(lower, candidate)
		if !ok {
			return
		}
		confidence := similarity * scale
		if confidence > best.Confidence {
			best = entryMatch(entry, confidence, method)
		}
	}

	for _, entry := range m.entries {
		consider(entry, strings.ToLower(entry.canonical), fuzzyNameScale, "fuzzy_name")
		for _, alias := range entry.aliases {
			consider(entry, strings.ToLower(alias), fuzzyAliasScale, "fuzzy_alias")
		}
	}

	return best
}

// matchFallback returns the cleaned, title-cased input at fixed low
// confidence so non-empty input never normalizes to nothing.
func (m *MerchantMatcher) matchFallback(raw, cleaned string) MerchantMatch {
	return MerchantMatch{
		CanonicalName: titleCase(cleaned),
		Confidence:    fallbackMerchantConfidence,
		Method:        "fallback",
	}
}

// similarityScore computes 1 - dist/maxLen, with a length prefilter: when
// the length difference alone caps similarity below one half, the distance
// is not worth computing.
func similarityScore(a, b string) (float64, bool) {
	if a == "" || b == "" {
		return 0, false
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}

	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	if diff*2 > maxLen {
		return 0, false
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen), true
}

// entryMatch builds a MerchantMatch from an index entry
func entryMatch(entry *merchantEntry, confidence float64, method string) MerchantMatch {
	if confidence > 1 {
		confidence = 1
	}
	return MerchantMatch{
		CanonicalName: entry.canonical,
		Confidence:    confidence,
		Method:        method,
		CategoryID:    entry.categoryID,
		SubcategoryID: entry.subcategoryID,
		Vertical:      entry.vertical,
	}
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest; applying it twice yields the same result.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
