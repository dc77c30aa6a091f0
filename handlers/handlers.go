package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"grocerStore/entities"
	"grocerStore/models"
	"grocerStore/services"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	us  services.UserService
	ps  services.ProductService
	cs  services.CartService
	cus services.CustomerService
	ors services.OrderService
	prs services.PricingService
}

type HandlerParams struct {
	UsrService services.UserService
	PrdService services.ProductService
	CrtService services.CartService
	CstService services.CustomerService
	OrdService services.OrderService
	PrcService services.PricingService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		us:  params.UsrService,
		ps:  params.PrdService,
		cs:  params.CrtService,
		cus: params.CstService,
		ors: params.OrdService,
		prs: params.PrcService,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func (h *Handler) sessionUserId(r *http.Request) (userId string, err error) {
	c, e := r.Cookie("sessionId")
	if e != nil {
		err = models.ErrUnauthorized
		return
	}
	userId, err = h.us.GetSessionUserId(c.Value)
	return
}

// users

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	userId, sessionId, err := h.us.SignupRequest(creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.finishLogin(w, userId, sessionId, creds.GuestCart)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	userId, sessionId, err := h.us.SigninRequest(creds.Email, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	h.finishLogin(w, userId, sessionId, creds.GuestCart)
}

// finishLogin sets the session cookie and runs the one-shot guest-cart
// merge for the login transition. An empty guest cart is a no-op, so a
// client re-sending the request cannot merge twice.
func (h *Handler) finishLogin(w http.ResponseWriter, userId string, sessionId string, guestItems map[string]int) {
	merged, err := h.cs.MergeGuestCart(userId, entities.Cart{Items: guestItems})
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   sessionId,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
		// redis 30 min
	})
	writeJSON(w, merged)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")

	err := h.us.DeleteSessionRequest(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userId, err := h.sessionUserId(r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	cart, err := h.cs.GetCart(userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	resp, err := h.cs.GetCartItems(cart)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	userId, err := h.sessionUserId(r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	var body struct {
		CartItems map[string]int `json:"cartItems"`
	}
	err = json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.cs.UpdateCart(userId, entities.Cart{Items: body.CartItems})
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetCartTotal prices an arbitrary cart snapshot; guests use it for the
// cart page without any server-side cart existing.
func (h *Handler) GetCartTotal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CartItems map[string]int `json:"cartItems"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	total, err := h.cs.GetCartAmount(entities.Cart{Items: body.CartItems})
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]float64{"totalAmount": total})
}

// orders

func (h *Handler) PlaceOrderCOD(w http.ResponseWriter, r *http.Request) {
	req := models.PlaceOrderRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// checkout works for guests too; a session just links the order
	if userId, e := h.sessionUserId(r); e == nil {
		req.UserId = userId
	}
	req.PaymentType = "COD"

	orderId, err := h.ors.PlaceOrder(req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]string{"orderId": orderId})
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	req := models.CreateBillRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	orderId, err := h.ors.CreateBill(req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]string{"orderId": orderId})
}

func (h *Handler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userId, err := h.sessionUserId(r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	orders, err := h.ors.GetUserOrders(userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, orders)
}

func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ors.GetAllOrders()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, orders)
}

func (h *Handler) GetOrderById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	order, err := h.ors.GetOrderById(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) TogglePaymentStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	isPaid, err := h.ors.TogglePaymentStatus(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]bool{"isPaid": isPaid})
}

// customers

func (h *Handler) GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.cus.GetAllCustomers()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, customers)
}

func (h *Handler) GetCustomerById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customer, orders, err := h.cus.GetCustomerById(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"customer": customer,
		"orders":   orders,
	})
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contact := models.ContactInfo{}
	err := json.NewDecoder(r.Body).Decode(&contact)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	customer, err := h.cus.UpdateCustomer(vars["id"], contact)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, customer)
}

// products

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	prods, err := h.ps.ListProducts()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prods)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	prod, err := h.ps.GetProductById(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prod)
}

// GetProductPrice quotes the authoritative unit price for a product,
// optionally narrowed to a weight variant.
func (h *Handler) GetProductPrice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	weight := r.URL.Query().Get("weight")

	price, err := h.prs.ResolvePrice(vars["id"], weight)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]float64{"unitPrice": price})
}

func (h *Handler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	prods, err := h.ps.GetProductsByCategory(vars["category"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prods)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	prod := models.Product_db{}
	err := json.NewDecoder(r.Body).Decode(&prod)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	id, err := h.ps.CreateProduct(prod)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]string{"id": id})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	upd := models.ProductUpdate{}
	err := json.NewDecoder(r.Body).Decode(&upd)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, err := h.ps.UpdateProduct(vars["id"], upd)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prod)
}

// middleware

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, e := h.us.CheckAuth(sessionId.Value)
		if !ok {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) SellerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, err := h.us.CheckSellerAccess(sessionId.Value)
		if !ok {
			if err != nil {
				log.Printf("CheckSellerAccess: %v", err)
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest),
		errors.Is(err, models.ErrEmptyOrder),
		errors.Is(err, models.ErrMissingContact):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrVariantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
