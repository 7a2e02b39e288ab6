package content

type Category string

const (
	CategoryAdvertising Category = "advertising"
	CategoryWebsite     Category = "website"
	CategoryLongform    Category = "longform"
	CategoryBrand       Category = "brand"
	CategoryEmail       Category = "email"
	CategorySocial      Category = "social"
)

var categoryLabels = map[Category]string{
	CategoryAdvertising: "Advertising",
	CategoryWebsite:     "Website Copy",
	CategoryLongform:    "Longform",
	CategoryBrand:       "Brand Voice",
	CategoryEmail:       "Email",
	CategorySocial:      "Social",
}

var categoryOrder = []Category{
	CategoryAdvertising,
	CategoryWebsite,
	CategoryLongform,
	CategoryBrand,
	CategoryEmail,
	CategorySocial,
}

// Categories returns the known categories in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

func IsValidCategory(c Category) bool {
	_, ok := categoryLabels[c]
	return ok
}

// CategoryLabel is total: unknown categories display as their raw value.
func CategoryLabel(c Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
