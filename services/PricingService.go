package services

import (
	"grocerStore/models"
	"grocerStore/repository"
)

// ResolveUnitPrice returns the authoritative unit price for a product,
// optionally narrowed to a weight variant. A named variant sells at its
// offer price, falling back to its regular price when the offer is
// absent. An unknown label falls back to the base offer price; callers
// that need strict matching check HasWeight first.
func ResolveUnitPrice(p models.Product_db, weight string) float64 {
	if weight != "" {
		for _, v := range p.Weights {
			if v.Weight == weight {
				if v.OfferPrice > 0 {
					return v.OfferPrice
				}
				return v.Price
			}
		}
	}
	return p.OfferPrice
}

func HasWeight(p models.Product_db, weight string) bool {
	for _, v := range p.Weights {
		if v.Weight == weight {
			return true
		}
	}
	return false
}

type PricingService struct {
	pr repository.ProductRepository
}

func NewPricingService(productRepo repository.ProductRepository) PricingService {
	return PricingService{
		pr: productRepo,
	}
}

// ResolvePrice resolves the catalog product and prices it. Prices are
// always recomputed here from catalog state, never taken from a client.
func (ps *PricingService) ResolvePrice(productId string, weight string) (price float64, err error) {
	p, ex, e := ps.pr.GetProductById(productId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrProductNotFound
		return
	}
	price = ResolveUnitPrice(p, weight)
	return
}
