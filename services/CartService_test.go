package services

import (
	"testing"

	"grocerStore/entities"
	"grocerStore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCartAmountWeightVariants(t *testing.T) {
	pr := newMockProductRepo()
	id := pr.add(weightedProduct())
	cs := NewCartService(pr, newMockCartRepo())

	cart := entities.NewCart()
	cart.SetQuantity(entities.NewCartKey(id, "50g"), 2)

	total, err := cs.GetCartAmount(cart)
	require.NoError(t, err)
	assert.Equal(t, 160.0, total)
}

func TestGetCartAmountSkipsDeletedProducts(t *testing.T) {
	pr := newMockProductRepo()
	id := pr.add(weightedProduct())
	cs := NewCartService(pr, newMockCartRepo())

	cart := entities.NewCart()
	cart.SetQuantity(entities.NewCartKey(id, ""), 1)
	cart.SetQuantity(entities.NewCartKey("665f1c2ab8d3e24f90a11bff", ""), 3)

	total, err := cs.GetCartAmount(cart)
	require.NoError(t, err, "a stale cart entry must never fail the total")
	assert.Equal(t, 100.0, total)
}

func TestGetCartAmountFloorsAtCents(t *testing.T) {
	pr := newMockProductRepo()
	id := pr.add(models.Product_db{
		Name: "Loose Saffron", Category: "spices",
		Price: 11.5, OfferPrice: 10.999, InStock: true,
	})
	cs := NewCartService(pr, newMockCartRepo())

	cart := entities.NewCart()
	cart.SetQuantity(entities.NewCartKey(id, ""), 1)

	total, err := cs.GetCartAmount(cart)
	require.NoError(t, err)
	// floored at cent granularity, never rounded up
	assert.Equal(t, 10.99, total)
}

func TestGetCartAmountStorageFailure(t *testing.T) {
	pr := newMockProductRepo()
	pr.failing = true
	cs := NewCartService(pr, newMockCartRepo())

	cart := entities.NewCart()
	cart.SetQuantity(entities.NewCartKey("665f1c2ab8d3e24f90a11b01", ""), 1)

	_, err := cs.GetCartAmount(cart)
	require.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestGetCartItems(t *testing.T) {
	pr := newMockProductRepo()
	id := pr.add(weightedProduct())
	cs := NewCartService(pr, newMockCartRepo())

	cart := entities.NewCart()
	cart.SetQuantity(entities.NewCartKey(id, "100g"), 2)
	cart.SetQuantity(entities.NewCartKey("665f1c2ab8d3e24f90a11bff", ""), 1)

	resp, err := cs.GetCartItems(cart)
	require.NoError(t, err)
	require.Len(t, resp.Products, 1, "stale entries are excluded from the view")
	assert.Equal(t, "100g", resp.Products[0].Weight)
	assert.Equal(t, 150.0, resp.Products[0].Price)
	assert.Equal(t, 300.0, resp.Products[0].SumPrice)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 300.0, resp.TotalAmount)
}

func TestMergeGuestCartLocalWins(t *testing.T) {
	pr := newMockProductRepo()
	cr := newMockCartRepo()
	cs := NewCartService(pr, cr)

	remote := entities.NewCart()
	remote.SetQuantity(entities.NewCartKey("665f1c2ab8d3e24f90a11b01", ""), 5)
	remote.SetQuantity(entities.NewCartKey("665f1c2ab8d3e24f90a11b02", ""), 1)
	require.NoError(t, cr.SetCart("u1", remote))

	local := entities.NewCart()
	local.SetQuantity(entities.NewCartKey("665f1c2ab8d3e24f90a11b01", ""), 2)

	merged, err := cs.MergeGuestCart("u1", local)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Quantity(entities.NewCartKey("665f1c2ab8d3e24f90a11b01", "")))
	assert.Equal(t, 1, merged.Quantity(entities.NewCartKey("665f1c2ab8d3e24f90a11b02", "")))

	persisted, err := cr.GetCart("u1")
	require.NoError(t, err)
	assert.Equal(t, merged.Items, persisted.Items)
}

func TestMergeGuestCartEmptyLocalIsNoOp(t *testing.T) {
	pr := newMockProductRepo()
	cr := newMockCartRepo()
	cs := NewCartService(pr, cr)

	remote := entities.NewCart()
	remote.SetQuantity(entities.NewCartKey("665f1c2ab8d3e24f90a11b01", ""), 4)
	require.NoError(t, cr.SetCart("u1", remote))
	setCallsBefore := cr.setCalls

	merged, err := cs.MergeGuestCart("u1", entities.Cart{})
	require.NoError(t, err)
	assert.Equal(t, remote.Items, merged.Items)
	assert.Equal(t, setCallsBefore, cr.setCalls, "an already-merged session must not rewrite the cart")
}

func TestUpdateCartNormalizes(t *testing.T) {
	pr := newMockProductRepo()
	cr := newMockCartRepo()
	cs := NewCartService(pr, cr)

	err := cs.UpdateCart("u1", entities.Cart{Items: map[string]int{
		"665f1c2ab8d3e24f90a11b01": 2,
		"665f1c2ab8d3e24f90a11b02": 0,
	}})
	require.NoError(t, err)

	persisted, err := cr.GetCart("u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"665f1c2ab8d3e24f90a11b01": 2}, persisted.Items)
}
