package entities

import "time"

type CartItem struct {
	ProductId string  `json:"productId"`
	Name      string  `json:"name"`
	Weight    string  `json:"weight,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	SumPrice  float64 `json:"sumPrice"`
	InStock   bool    `json:"inStock"`
}

type CartResponse struct {
	Products    []CartItem `json:"products"`
	TotalCount  int        `json:"totalCount"`
	TotalAmount float64    `json:"totalAmount"`
}

// Customer is the back-office view of an address record: the address
// fields plus how many orders are linked to it.
type Customer struct {
	Id         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Zipcode    string    `json:"zipcode"`
	Country    string    `json:"country"`
	OrderCount int       `json:"orderCount"`
	CreatedAt  time.Time `json:"createdAt"`
}
