package entities

import "strings"

const cartKeySeparator = "_"

// CartKey identifies a purchasable unit: a product, optionally narrowed
// to one of its weight variants. Product ids are hex object ids and
// never contain the separator, so the serialization is injective.
type CartKey struct {
	ProductId string
	Weight    string
}

func NewCartKey(productId string, weight string) CartKey {
	return CartKey{ProductId: productId, Weight: weight}
}

func (k CartKey) String() string {
	if k.Weight == "" {
		return k.ProductId
	}
	return k.ProductId + cartKeySeparator + k.Weight
}

func ParseCartKey(raw string) CartKey {
	parts := strings.SplitN(raw, cartKeySeparator, 2)
	if len(parts) == 2 {
		return CartKey{ProductId: parts[0], Weight: parts[1]}
	}
	return CartKey{ProductId: raw}
}

// Cart maps cart keys to positive quantities. Entries with quantity <= 0
// must not exist; every mutation below maintains that invariant.
type Cart struct {
	Items map[string]int `json:"items"`
}

func NewCart() Cart {
	return Cart{Items: make(map[string]int)}
}

func (c *Cart) ensure() {
	if c.Items == nil {
		c.Items = make(map[string]int)
	}
}

// SetQuantity is total over its inputs: a non-positive quantity removes
// the entry instead of storing a zero.
func (c *Cart) SetQuantity(key CartKey, quantity int) {
	c.ensure()
	if quantity <= 0 {
		delete(c.Items, key.String())
		return
	}
	c.Items[key.String()] = quantity
}

func (c *Cart) Increment(key CartKey) {
	c.ensure()
	c.Items[key.String()]++
}

// Decrement removes the entry when the quantity would drop below 1.
func (c *Cart) Decrement(key CartKey) {
	c.ensure()
	if c.Items[key.String()] > 1 {
		c.Items[key.String()]--
		return
	}
	delete(c.Items, key.String())
}

func (c Cart) Quantity(key CartKey) int {
	return c.Items[key.String()]
}

func (c Cart) TotalCount() (count int) {
	for _, quantity := range c.Items {
		count += quantity
	}
	return
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Normalize drops entries that violate the positive-quantity invariant.
// Client-submitted carts pass through here before being persisted.
func (c *Cart) Normalize() {
	c.ensure()
	for key, quantity := range c.Items {
		if quantity <= 0 {
			delete(c.Items, key)
		}
	}
}

// MergeCarts reconciles a guest cart with the server-held cart at login.
// Local entries win per key, entries unique to either side carry
// through. Neither input is mutated.
func MergeCarts(local Cart, remote Cart) Cart {
	merged := NewCart()
	for key, quantity := range remote.Items {
		if quantity > 0 {
			merged.Items[key] = quantity
		}
	}
	for key, quantity := range local.Items {
		if quantity > 0 {
			merged.Items[key] = quantity
		} else {
			delete(merged.Items, key)
		}
	}
	return merged
}
