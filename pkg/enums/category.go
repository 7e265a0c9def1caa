package enums

import "fmt"

// Category is the fixed product category set. The catalog only ever carries
// these two values; rows are seeded by migration and never created on demand.
type Category string

const (
	CategoryLuxury     Category = "Luxury"
	CategoryAffordable Category = "Affordable"
)

var validCategories = []Category{
	CategoryLuxury,
	CategoryAffordable,
}

// Categories returns the canonical category set in seed order.
func Categories() []Category {
	out := make([]Category, len(validCategories))
	copy(out, validCategories)
	return out
}

// IsValid reports whether the value matches the canonical category enum.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts raw input into Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
