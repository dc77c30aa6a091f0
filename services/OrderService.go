package services

import (
	"time"

	"grocerStore/models"
	"grocerStore/repository"

	log "github.com/sirupsen/logrus"
)

const paymentTypeCOD = "COD"
const statusPlaced = "Order Placed"

type OrderService struct {
	pr repository.ProductRepository
	cr repository.CartRepository
	or repository.OrderRepository
	cs CustomerService
}

func NewOrderService(productRepo repository.ProductRepository, cartRepo repository.CartRepository, orderRepo repository.OrderRepository, customerService CustomerService) OrderService {
	return OrderService{
		pr: productRepo,
		cr: cartRepo,
		or: orderRepo,
		cs: customerService,
	}
}

// buildOrderItems prices every line against the current catalog. Unlike
// the cart total, checkout is strict: any unresolvable product or weight
// label fails the whole order so a partial order is never written.
func (ors *OrderService) buildOrderItems(items []models.OrderItemRequest) (prods []models.OrderItem_db, total float64, err error) {
	for _, item := range items {
		if item.Quantity <= 0 {
			log.Printf("buildOrderItems: non-positive quantity for %v", item.ProductId)
			err = models.ErrBadRequest
			return
		}
		p, ex, e := ors.pr.GetProductById(item.ProductId)
		if e != nil {
			err = e
			return
		}
		if !ex {
			log.Printf("buildOrderItems: product %v not found", item.ProductId)
			err = models.ErrProductNotFound
			return
		}
		if item.Weight != "" && !HasWeight(p, item.Weight) {
			log.Printf("buildOrderItems: product %v has no weight %v", item.ProductId, item.Weight)
			err = models.ErrVariantNotFound
			return
		}
		unit := ResolveUnitPrice(p, item.Weight)
		total += unit * float64(item.Quantity)
		prods = append(prods, models.OrderItem_db{
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
			Weight:    item.Weight,
			Price:     unit,
		})
	}
	return
}

// PlaceOrder is the checkout path. Guests submit a contact that gets
// resolved against the customer directory; authenticated users carry a
// linked address id and skip resolution. On success the user's
// server-side cart is cleared, checkout being all-or-nothing.
func (ors *OrderService) PlaceOrder(req models.PlaceOrderRequest) (orderId string, err error) {
	if len(req.Items) == 0 {
		err = models.ErrEmptyOrder
		return
	}

	var addressId string
	if req.UserId != "" && req.AddressId != "" {
		addressId = req.AddressId
	} else {
		if req.Contact == nil || req.Contact.FirstName == "" || req.Contact.Phone == "" {
			err = models.ErrMissingContact
			return
		}
		addressId, err = ors.cs.ResolveCustomer(*req.Contact)
		if err != nil {
			return
		}
	}

	prods, total, e := ors.buildOrderItems(req.Items)
	if e != nil {
		err = e
		return
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = paymentTypeCOD
	}
	orderId, err = ors.or.CreateOrder(models.Order_db{
		UserId:      req.UserId,
		Items:       prods,
		Amount:      total,
		AddressId:   addressId,
		PaymentType: paymentType,
		IsPaid:      false,
		Status:      statusPlaced,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if req.UserId != "" {
		err = ors.cr.ClearCart(req.UserId)
	}
	return
}

// CreateBill is the seller-facing manual sale: same assembly pipeline,
// plus an explicit paid flag and an embedded contact snapshot so the
// order stays matchable even if the directory record changes later.
func (ors *OrderService) CreateBill(req models.CreateBillRequest) (orderId string, err error) {
	if len(req.Items) == 0 {
		err = models.ErrEmptyOrder
		return
	}
	if req.Contact.FirstName == "" || req.Contact.Phone == "" {
		err = models.ErrMissingContact
		return
	}

	addressId, e := ors.cs.ResolveCustomer(req.Contact)
	if e != nil {
		err = e
		return
	}

	prods, total, e := ors.buildOrderItems(req.Items)
	if e != nil {
		err = e
		return
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = "Cash on Delivery"
	}
	snapshot := contactToAddress(req.Contact)
	orderId, err = ors.or.CreateOrder(models.Order_db{
		Items:        prods,
		Amount:       total,
		AddressId:    addressId,
		GuestAddress: &snapshot,
		PaymentType:  paymentType,
		IsPaid:       req.IsPaid,
		Status:       statusPlaced,
		CreatedAt:    time.Now().UTC(),
	})
	return
}

func (ors *OrderService) GetOrderById(orderId string) (order models.Order_db, err error) {
	order, ex, e := ors.or.GetOrderById(orderId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrNotFound
	}
	return
}

// GetUserOrders lists a buyer's history: COD orders plus paid ones.
func (ors *OrderService) GetUserOrders(userId string) (orders []models.Order_db, err error) {
	orders, err = ors.or.SearchOrders(models.OrderSearchData{
		UserId:      &userId,
		SettledOnly: true,
	})
	return
}

func (ors *OrderService) GetAllOrders() (orders []models.Order_db, err error) {
	orders, err = ors.or.SearchOrders(models.OrderSearchData{SettledOnly: true})
	return
}

// TogglePaymentStatus flips the paid flag, the one mutation an order
// permits after creation.
func (ors *OrderService) TogglePaymentStatus(orderId string) (isPaid bool, err error) {
	order, ex, e := ors.or.GetOrderById(orderId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrNotFound
		return
	}
	isPaid = !order.IsPaid
	err = ors.or.SetPaymentStatus(orderId, isPaid)
	return
}
