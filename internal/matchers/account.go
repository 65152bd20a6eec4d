// Package matchers resolves text fragments against the host-supplied
// reference data: accounts and cards by last-four digits or institution
// name, and merchants by canonical name, alias, domain, or fuzzy
// similarity. Matchers are built from a ReferenceContext snapshot with all
// derived indexes precomputed; swapping reference data means constructing a
// new matcher, never mutating one in place.
package matchers

import (
	"sort"
	"strings"

	"golang-sms-analyzer/internal/models"
	"golang-sms-analyzer/internal/patterns"
	"golang-sms-analyzer/pkg/logger"
)

const (
	cardLastFourConfidence    = 0.95
	accountLastFourConfidence = 0.90

	// The looser "account ... digits" phrasing reuses the digit scores at
	// a reduced factor
	phraseReduction = 0.9

	cardPhraseConfidence = 0.9

	bankNameBase     = 0.55
	bankNameLenStep  = 0.02
	bankNameLenCap   = 0.75
	bankContextBonus = 0.1
	bankNameFloor    = 0.5
	bankNameCeiling  = 0.85
)

// AccountMatch is one candidate resolution of message text to a known
// account or card.
type AccountMatch struct {
	EntityID    string             `json:"entity_id"`
	Kind        models.AccountKind `json:"kind"`
	DisplayName string             `json:"display_name"`
	BankName    string             `json:"bank_name"`
	Confidence  float64            `json:"confidence"`
	Method      string             `json:"method"`
	MatchedText string             `json:"matched_text"`
}

// digitBased reports whether the match came from a digit strategy; digit
// matches win ties against name matches.
func (m *AccountMatch) digitBased() bool {
	switch m.Method {
	case "card_last_four", "account_last_four", "account_phrase", "card_phrase":
		return true
	}
	return false
}

// AccountMatcher resolves last-four digits and institution names to known
// accounts and cards. Inactive entities are excluded at construction.
type AccountMatcher struct {
	cardsByLastFour    map[string][]*models.Card
	accountsByLastFour map[string][]*models.Account
	cards              []*models.Card
	accounts           []*models.Account
	log                logger.Logger
}

// NewAccountMatcher builds an account matcher from a reference snapshot,
// precomputing the last-four lookup indexes.
func NewAccountMatcher(ref *models.ReferenceContext) *AccountMatcher {
	m := &AccountMatcher{
		cardsByLastFour:    make(map[string][]*models.Card),
		accountsByLastFour: make(map[string][]*models.Account),
		log:                logger.WithComponent("account_matcher"),
	}

	for _, card := range ref.Cards {
		if !card.Active {
			continue
		}
		m.cards = append(m.cards, card)
		if card.LastFour != "" {
			m.cardsByLastFour[card.LastFour] = append(m.cardsByLastFour[card.LastFour], card)
		}
	}

	for _, account := range ref.Accounts {
		if !account.Active {
			continue
		}
		m.accounts = append(m.accounts, account)
		if account.LastFour != "" {
			m.accountsByLastFour[account.LastFour] = append(m.accountsByLastFour[account.LastFour], account)
		}
	}

	return m
}

// Match returns the single best account or card candidate for the text, or
// nil when nothing matches. Ties are broken in favor of digit-based matches
// over name-based ones.
func (m *AccountMatcher) Match(text string) *AccountMatch {
	candidates := m.MatchAll(text)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

// MatchAll returns every plausible candidate sorted by confidence
// descending, deduplicated by entity. Callers use this for disambiguation
// when a message contains multiple digit groups.
func (m *AccountMatcher) MatchAll(text string) []*AccountMatch {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var candidates []*AccountMatch
	candidates = append(candidates, m.matchLastFour(text)...)
	candidates = append(candidates, m.matchBankName(text)...)
	candidates = append(candidates, m.matchAccountPhrase(text)...)
	candidates = append(candidates, m.matchCardPhrase(text)...)

	// Keep the best candidate per entity
	bestByID := make(map[string]*AccountMatch)
	var order []string
	for _, candidate := range candidates {
		existing, seen := bestByID[candidate.EntityID]
		if !seen {
			bestByID[candidate.EntityID] = candidate
			order = append(order, candidate.EntityID)
			continue
		}
		if betterMatch(candidate, existing) {
			bestByID[candidate.EntityID] = candidate
		}
	}

	deduped := make([]*AccountMatch, 0, len(order))
	for _, id := range order {
		deduped = append(deduped, bestByID[id])
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return betterMatch(deduped[i], deduped[j])
	})

	return deduped
}

// betterMatch orders candidates by confidence, then digit-based first
func betterMatch(a, b *AccountMatch) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.digitBased() && !b.digitBased()
}

// matchLastFour resolves standalone 4-digit groups, cards before accounts
// since SMS text is usually more specific about cards.
func (m *AccountMatcher) matchLastFour(text string) []*AccountMatch {
	var results []*AccountMatch

	for _, match := range patterns.LastFourRegex.FindAllStringSubmatch(text, -1) {
		digits := match[1]

		for _, card := range m.cardsByLastFour[digits] {
			results = append(results, &AccountMatch{
				EntityID:    card.ID,
				Kind:        card.Kind,
				DisplayName: card.Name,
				BankName:    card.BankName,
				Confidence:  cardLastFourConfidence,
				Method:      "card_last_four",
				MatchedText: digits,
			})
		}

		for _, account := range m.accountsByLastFour[digits] {
			results = append(results, &AccountMatch{
				EntityID:    account.ID,
				Kind:        account.Kind,
				DisplayName: account.Name,
				BankName:    account.BankName,
				Confidence:  accountLastFourConfidence,
				Method:      "account_last_four",
				MatchedText: digits,
			})
		}
	}

	return results
}

// matchBankName resolves institution names, directly or via the alias
// table. Confidence scales with name length and transactional context,
// clamped between floor and ceiling.
func (m *AccountMatcher) matchBankName(text string) []*AccountMatch {
	lower := strings.ToLower(text)
	hasContext := false
	for _, keyword := range patterns.AccountContextKeywords {
		if strings.Contains(lower, keyword) {
			hasContext = true
			break
		}
	}

	// Resolve alias mentions to canonical institution names
	mentioned := make(map[string]string) // lowercase canonical -> matched text
	for alias, canonical := range patterns.BankAliases {
		if strings.Contains(lower, alias) {
			mentioned[strings.ToLower(canonical)] = alias
		}
	}

	score := func(bankName string) float64 {
		confidence := bankNameBase + bankNameLenStep*float64(len(bankName))
		if confidence > bankNameLenCap {
			confidence = bankNameLenCap
		}
		if hasContext {
			confidence += bankContextBonus
		}
		if confidence < bankNameFloor {
			confidence = bankNameFloor
		}
		if confidence > bankNameCeiling {
			confidence = bankNameCeiling
		}
		return confidence
	}

	var results []*AccountMatch

	addIfMentioned := func(entityID, name, bankName string, kind models.AccountKind) {
		bankLower := strings.ToLower(bankName)
		if bankLower == "" {
			return
		}

		matched := ""
		if strings.Contains(lower, bankLower) {
			matched = bankName
		} else if alias, ok := mentioned[bankLower]; ok {
			matched = alias
		} else {
			return
		}

		results = append(results, &AccountMatch{
			EntityID:    entityID,
			Kind:        kind,
			DisplayName: name,
			BankName:    bankName,
			Confidence:  score(bankName),
			Method:      "bank_name",
			MatchedText: matched,
		})
	}

	for _, card := range m.cards {
		addIfMentioned(card.ID, card.Name, card.BankName, card.Kind)
	}
	for _, account := range m.accounts {
		addIfMentioned(account.ID, account.Name, account.BankName, account.Kind)
	}

	return results
}

// matchAccountPhrase resolves the looser "account/savings/current ... 1234"
// phrasing with the digit scores reduced.
func (m *AccountMatcher) matchAccountPhrase(text string) []*AccountMatch {
	var results []*AccountMatch

	for _, match := range patterns.AccountPhraseRegex.FindAllStringSubmatch(text, -1) {
		digits := match[1]

		for _, card := range m.cardsByLastFour[digits] {
			results = append(results, &AccountMatch{
				EntityID:    card.ID,
				Kind:        card.Kind,
				DisplayName: card.Name,
				BankName:    card.BankName,
				Confidence:  cardLastFourConfidence * phraseReduction,
				Method:      "account_phrase",
				MatchedText: match[0],
			})
		}

		for _, account := range m.accountsByLastFour[digits] {
			results = append(results, &AccountMatch{
				EntityID:    account.ID,
				Kind:        account.Kind,
				DisplayName: account.Name,
				BankName:    account.BankName,
				Confidence:  accountLastFourConfidence * phraseReduction,
				Method:      "account_phrase",
				MatchedText: match[0],
			})
		}
	}

	return results
}

// matchCardPhrase resolves card-specific phrasing ("credit card xx1234",
// "visa 1234") against cards only.
func (m *AccountMatcher) matchCardPhrase(text string) []*AccountMatch {
	var results []*AccountMatch

	for _, match := range patterns.CardPhraseRegex.FindAllStringSubmatch(text, -1) {
		digits := match[1]

		for _, card := range m.cardsByLastFour[digits] {
			results = append(results, &AccountMatch{
				EntityID:    card.ID,
				Kind:        card.Kind,
				DisplayName: card.Name,
				BankName:    card.BankName,
				Confidence:  cardPhraseConfidence,
				Method:      "card_phrase",
				MatchedText: match[0],
			})
		}
	}

	return results
}
