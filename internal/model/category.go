package model

// CategoryOthers is the catch-all bucket for spend that fits no
// canonical category.
const CategoryOthers = "Others"

// Categories is the canonical category set shared between transaction
// categorization and budgets. Budgets may only reference these.
var Categories = []string{
	"Food & Drinks",
	"Shopping",
	"Travel",
	"Bills & Utilities",
	"Subscriptions",
	"Business Services",
	"Insurance & Financial",
	"Banking & Fees",
	"Fitness & Sports",
	"Income",
	CategoryOthers,
}

var categorySet = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// ValidCategory reports whether name belongs to the canonical set.
func ValidCategory(name string) bool {
	return categorySet[name]
}
