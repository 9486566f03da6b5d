package candidate

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// haystackExpr is the lowercased title and body stored on insert.
const haystackExpr = "i.search_text"

// ContentFilter excludes items by their text. It is applied when exclude_war is set.
type ContentFilter interface {
	Predicate() sq.Sqlizer
}

// KeywordExclusion rejects items whose title or body contains any of the terms as a substring.
type KeywordExclusion struct {
	Terms []string
}

// NewKeywordExclusion builds a filter over lowercased, non-empty terms.
func NewKeywordExclusion(terms []string) *KeywordExclusion {
	clean := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			clean = append(clean, t)
		}
	}
	return &KeywordExclusion{Terms: clean}
}

// Predicate returns one NOT LIKE conjunct per term.
func (f *KeywordExclusion) Predicate() sq.Sqlizer {
	and := sq.And{}
	for _, t := range f.Terms {
		and = append(and, sq.NotLike{haystackExpr: "%" + t + "%"})
	}
	return and
}

// WarTerms are the war and combat report stems excluded from digests.
var WarTerms = []string{
	"всу",
	"сво",
	"украин",
	"обстрел",
	"удар",
	"дрон",
	"бпла",
	"fpv",
	"ракет",
	"пво",
	"фронт",
	"боев",
	"военн",
	"миномет",
	"артиллер",
	"снайпер",
	"пехот",
	"противник",
	"тыл",
	"диверс",
	"мобилиз",
	"оккупац",
}

// DefaultContentFilter returns the war-report filter.
func DefaultContentFilter() ContentFilter {
	return NewKeywordExclusion(WarTerms)
}
