package services

import (
	"grocerStore/models"
	"grocerStore/repository"

	log "github.com/sirupsen/logrus"
)

type ProductService struct {
	pr repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return ProductService{
		pr: productRepo,
	}
}

func (ps *ProductService) GetProductById(id string) (prod models.Product_db, err error) {
	prod, ex, e := ps.pr.GetProductById(id)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrProductNotFound
	}
	return
}

func (ps *ProductService) ListProducts() (prods []models.Product_db, err error) {
	prods, err = ps.pr.ListProducts()
	return
}

func (ps *ProductService) GetProductsByCategory(category string) (prods []models.Product_db, err error) {
	prods, err = ps.pr.GetProductsByCategory(category)
	return
}

// validatePricing enforces the catalog invariant: usable base pricing
// (price and offer price both non-zero) or at least one weight variant.
func validatePricing(price float64, offerPrice float64, weights []models.WeightVariant) bool {
	if price > 0 && offerPrice > 0 {
		return true
	}
	return len(weights) > 0
}

func validateWeights(weights []models.WeightVariant) bool {
	seen := map[string]bool{}
	for _, w := range weights {
		if w.Weight == "" || w.Price <= 0 {
			return false
		}
		if seen[w.Weight] {
			return false
		}
		seen[w.Weight] = true
	}
	return true
}

func (ps *ProductService) CreateProduct(prod models.Product_db) (id string, err error) {
	if prod.Name == "" || prod.Category == "" {
		log.Printf("CreateProduct: name and category are required")
		err = models.ErrNotAllowed
		return
	}
	if !validatePricing(prod.Price, prod.OfferPrice, prod.Weights) || !validateWeights(prod.Weights) {
		log.Printf("CreateProduct: product %v has no usable pricing", prod.Name)
		err = models.ErrNotAllowed
		return
	}
	id, err = ps.pr.CreateProduct(prod)
	return
}

func (ps *ProductService) UpdateProduct(id string, upd models.ProductUpdate) (prod models.Product_db, err error) {
	if upd.Weights != nil && !validateWeights(upd.Weights) {
		log.Printf("UpdateProduct: invalid weight variants")
		err = models.ErrNotAllowed
		return
	}
	prod, err = ps.pr.UpdateProductById(id, upd)
	if err != nil {
		return
	}
	if !validatePricing(prod.Price, prod.OfferPrice, prod.Weights) {
		// the update itself went through; surface the broken invariant
		log.Printf("UpdateProduct: product %v left without usable pricing", id)
	}
	return
}
