package aggregate

import (
	"strings"

	"github.com/biguard-dev/biguard/internal/model"
)

// Predicate selects transactions for display. Predicates compose and
// never mutate the underlying set.
type Predicate func(model.Transaction) bool

// MatchQuery is a case-insensitive substring match on name, merchant,
// and category. An empty query matches everything.
func MatchQuery(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(tx model.Transaction) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(tx.Name), q) ||
			strings.Contains(strings.ToLower(tx.MerchantName), q) ||
			strings.Contains(strings.ToLower(tx.Category), q)
	}
}

// MatchCategory is an exact-match category filter. An empty category
// matches everything.
func MatchCategory(category string) Predicate {
	return func(tx model.Transaction) bool {
		return category == "" || tx.Category == category
	}
}

// Filter returns the transactions satisfying every predicate. The
// input slice is left untouched.
func Filter(txs []model.Transaction, preds ...Predicate) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		keep := true
		for _, p := range preds {
			if !p(tx) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, tx)
		}
	}
	return out
}
