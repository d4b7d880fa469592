package domain

import (
	"slices"
	"strings"
)

// SizeSentinel replaces an absent size in a [CartKey].
const SizeSentinel = "F"

// A CartKey identifies a cart line by product and size.
type CartKey string

func NewCartKey(productID, size string) CartKey {
	if size == "" {
		size = SizeSentinel
	}
	return CartKey(productID + "-" + size)
}

// A CartLine is one (product, size) entry of the cart.
//
// Name, Price and Image are captured when the line is created
// and never re-synced with the catalog.
type CartLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
	Size  string `json:"size"`
	Qty   int    `json:"qty"`
}

// NewCartLine returns a line with quantity 1 for the product and size.
func NewCartLine(p Product, size string) CartLine {
	return CartLine{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
		Size:  size,
		Qty:   1,
	}
}

func (l CartLine) Key() CartKey {
	return NewCartKey(l.ID, l.Size)
}

// LineTotal returns price multiplied by quantity.
func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Qty)
}

// A Cart maps composite keys to lines.
//
// Every present line has Qty >= 1.
type Cart map[CartKey]CartLine

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Lines returns the lines ordered by key.
func (c Cart) Lines() []CartLine {
	keys := make([]CartKey, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b CartKey) int {
		return strings.Compare(string(a), string(b))
	})

	lines := make([]CartLine, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, c[k])
	}
	return lines
}

// ItemCount returns the sum of all quantities.
func (c Cart) ItemCount() int {
	var n int
	for _, l := range c {
		n += l.Qty
	}
	return n
}

// Summary is the priced view of the cart.
type Summary struct {
	Items     []CartLine
	ItemCount int
	Subtotal  int64
	Shipping  int64
	Tax       int64
	Total     int64
}
