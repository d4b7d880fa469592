package domain

import "strings"

// A Section is one of the visible storefront pages.
type Section string

const (
	SectionShop     Section = "shop"
	SectionCart     Section = "cart"
	SectionCheckout Section = "checkout"
	SectionSuccess  Section = "success"
)

// ParseSection maps a location fragment such as "#cart" to a [Section].
//
// Empty and unknown fragments map to [SectionShop].
func ParseSection(fragment string) Section {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(fragment)), "#")
	switch s := Section(name); s {
	case SectionShop, SectionCart, SectionCheckout, SectionSuccess:
		return s
	}
	return SectionShop
}
