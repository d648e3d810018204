package categorizer

// KeywordRule maps a lowercase substring of description+merchant to a category.
type KeywordRule struct {
	Keyword  string
	Category string
}

// FallbackCategory is assigned when both tiers fail.
const FallbackCategory = "General"

// Categories is the closed vocabulary the model is asked to choose from.
// Labels returned outside this list are rejected.
var Categories = []string{
	"Food & Dining",
	"Transport",
	"Shopping",
	"Groceries",
	"Utilities",
	"Health",
	"Entertainment",
	"Education",
	"Travel",
	"Investments",
	"Income",
	"Housing",
}

// DefaultKeywords returns the ordered keyword table. Order is part of the
// contract: the first matching keyword wins, so keep this a slice.
func DefaultKeywords() []KeywordRule {
	return []KeywordRule{
		{"swiggy", "Food & Dining"},
		{"zomato", "Food & Dining"},
		{"dominos", "Food & Dining"},
		{"kfc", "Food & Dining"},
		{"uber", "Transport"},
		{"ola", "Transport"},
		{"rapido", "Transport"},
		{"fuel", "Transport"},
		{"petrol", "Transport"},
		{"netflix", "Entertainment"},
		{"spotify", "Entertainment"},
		{"pvr", "Entertainment"},
		{"amazon", "Shopping"},
		{"flipkart", "Shopping"},
		{"myntra", "Shopping"},
		{"zudio", "Shopping"},
		{"jio", "Utilities"},
		{"bescom", "Utilities"},
		{"wifi", "Utilities"},
		{"airtel", "Utilities"},
		{"pharmacy", "Health"},
		{"apollo", "Health"},
		{"salary", "Income"},
		{"rent", "Housing"},
		{"sip", "Investments"},
	}
}
