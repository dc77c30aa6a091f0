package services

import (
	"math"

	"grocerStore/entities"
	"grocerStore/repository"
)

type CartService struct {
	pr repository.ProductRepository
	cr repository.CartRepository
}

func NewCartService(productRepo repository.ProductRepository, cartRepo repository.CartRepository) CartService {
	return CartService{
		pr: productRepo,
		cr: cartRepo,
	}
}

func (cs *CartService) GetCart(userId string) (cart entities.Cart, err error) {
	cart, err = cs.cr.GetCart(userId)
	return
}

// UpdateCart persists the authenticated user's cart after dropping any
// non-positive entries a client may have submitted.
func (cs *CartService) UpdateCart(userId string, cart entities.Cart) (err error) {
	cart.Normalize()
	err = cs.cr.SetCart(userId, cart)
	return
}

// MergeGuestCart runs once at the login transition: guest entries win
// per key and the result is persisted. An empty guest cart makes this a
// no-op, which is what keeps re-runs on an already-merged session safe.
func (cs *CartService) MergeGuestCart(userId string, local entities.Cart) (merged entities.Cart, err error) {
	remote, e := cs.cr.GetCart(userId)
	if e != nil {
		err = e
		return
	}
	if local.IsEmpty() {
		merged = remote
		return
	}
	merged = entities.MergeCarts(local, remote)
	err = cs.cr.SetCart(userId, merged)
	return
}

// GetCartAmount computes the display total for a cart snapshot. Entries
// whose product has left the catalog are skipped, not failed: carts
// outlive products. The sum is floored at cent granularity; the original
// storefront rounds this way and order history depends on matching it.
func (cs *CartService) GetCartAmount(cart entities.Cart) (total float64, err error) {
	for key, quantity := range cart.Items {
		if quantity <= 0 {
			continue
		}
		ck := entities.ParseCartKey(key)
		p, ex, e := cs.pr.GetProductById(ck.ProductId)
		if e != nil {
			err = e
			return
		}
		if !ex {
			continue
		}
		total += ResolveUnitPrice(p, ck.Weight) * float64(quantity)
	}
	total = math.Floor(total*100) / 100
	return
}

// GetCartItems resolves a cart into display lines plus the totals.
func (cs *CartService) GetCartItems(cart entities.Cart) (resp entities.CartResponse, err error) {
	items := []entities.CartItem{}
	for key, quantity := range cart.Items {
		if quantity <= 0 {
			continue
		}
		ck := entities.ParseCartKey(key)
		p, ex, e := cs.pr.GetProductById(ck.ProductId)
		if e != nil {
			err = e
			return
		}
		if !ex {
			continue
		}
		unit := ResolveUnitPrice(p, ck.Weight)
		items = append(items, entities.CartItem{
			ProductId: ck.ProductId,
			Name:      p.Name,
			Weight:    ck.Weight,
			Quantity:  quantity,
			Price:     unit,
			SumPrice:  unit * float64(quantity),
			InStock:   p.InStock,
		})
	}
	total, e := cs.GetCartAmount(cart)
	if e != nil {
		err = e
		return
	}
	resp = entities.CartResponse{
		Products:    items,
		TotalCount:  cart.TotalCount(),
		TotalAmount: total,
	}
	return
}
