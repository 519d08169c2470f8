package domain

// Category classifies a place. Values are the wire values used by clients.
type Category string

const (
	CategoryMountain    Category = "montagna"
	CategoryLake        Category = "lago"
	CategoryCulture     Category = "cultura"
	CategoryScience     Category = "scienza"
	CategoryVillage     Category = "borgo"
	CategoryCity        Category = "città"
	CategoryFood        Category = "gusto"
	CategoryIndoor      Category = "indoor"
	CategoryOutdoor     Category = "outdoor"
	CategoryChallenging Category = "impegnativo"
	CategoryRelaxing    Category = "rilassante"
	CategoryFamily      Category = "per famiglie"
)

var knownCategories = map[Category]struct{}{
	CategoryMountain:    {},
	CategoryLake:        {},
	CategoryCulture:     {},
	CategoryScience:     {},
	CategoryVillage:     {},
	CategoryCity:        {},
	CategoryFood:        {},
	CategoryIndoor:      {},
	CategoryOutdoor:     {},
	CategoryChallenging: {},
	CategoryRelaxing:    {},
	CategoryFamily:      {},
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := knownCategories[c]
	return ok
}

// Intersects reports whether a and b share at least one category.
func Intersects(a, b []Category) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[Category]struct{}, len(a))
	for _, c := range a {
		set[c] = struct{}{}
	}
	for _, c := range b {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}

// CategoriesFromStrings converts raw values without validating them.
func CategoriesFromStrings(values []string) []Category {
	if values == nil {
		return nil
	}
	out := make([]Category, len(values))
	for i, v := range values {
		out[i] = Category(v)
	}
	return out
}

// CategoryStrings is the inverse of CategoriesFromStrings.
func CategoryStrings(categories []Category) []string {
	if categories == nil {
		return nil
	}
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}
