package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnauthorized = errors.New("unauthorized")
var ErrNotFound = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

// checkout/cart error taxonomy
var ErrStorageUnavailable = errors.New("storage unavailable")
var ErrProductNotFound = errors.New("product not found")
var ErrVariantNotFound = errors.New("weight variant not found")
var ErrEmptyOrder = errors.New("order has no items")
var ErrMissingContact = errors.New("customer name and phone are required")

type WeightVariant struct {
	Weight     string  `bson:"weight" json:"weight"`
	Price      float64 `bson:"price" json:"price"`
	OfferPrice float64 `bson:"offerPrice" json:"offerPrice"`
}

// Product_db must carry either usable base pricing (price and offerPrice
// both non-zero) or at least one weight variant.
type Product_db struct {
	Id          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price,omitempty" json:"price"`
	OfferPrice  float64            `bson:"offerPrice,omitempty" json:"offerPrice"`
	Weights     []WeightVariant    `bson:"weights,omitempty" json:"weights,omitempty"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

type ProductUpdate struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       *float64        `json:"price"`
	OfferPrice  *float64        `json:"offerPrice"`
	Weights     []WeightVariant `json:"weights"`
	InStock     *bool           `json:"inStock"`
}

// Address_db is the canonical customer record, deduplicated by phone.
type Address_db struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserId    string             `bson:"userId,omitempty" json:"userId,omitempty"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName,omitempty" json:"lastName"`
	Email     string             `bson:"email,omitempty" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone"`
	Street    string             `bson:"street,omitempty" json:"street"`
	City      string             `bson:"city,omitempty" json:"city"`
	State     string             `bson:"state,omitempty" json:"state"`
	Zipcode   string             `bson:"zipcode,omitempty" json:"zipcode"`
	Country   string             `bson:"country,omitempty" json:"country"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// OrderItem_db keeps the unit price resolved at order time; it is never
// recomputed when catalog prices change.
type OrderItem_db struct {
	ProductId string  `bson:"productId" json:"productId"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Weight    string  `bson:"weight,omitempty" json:"weight,omitempty"`
	Price     float64 `bson:"price" json:"price"`
}

type Order_db struct {
	Id           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserId       string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Items        []OrderItem_db     `bson:"items" json:"items"`
	Amount       float64            `bson:"amount" json:"amount"`
	AddressId    string             `bson:"address,omitempty" json:"address,omitempty"`
	GuestAddress *Address_db        `bson:"guestAddress,omitempty" json:"guestAddress,omitempty"`
	PaymentType  string             `bson:"paymentType" json:"paymentType"`
	IsPaid       bool               `bson:"isPaid" json:"isPaid"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type User_db struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

type Credentials struct {
	Name      string         `json:"name,omitempty"`
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	GuestCart map[string]int `json:"cartItems,omitempty"`
}

// ContactInfo is the typed contact/shipping payload submitted at
// checkout; FirstName and Phone are required, the rest optional.
type ContactInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
}

type OrderItemRequest struct {
	ProductId string `json:"product"`
	Quantity  int    `json:"quantity"`
	Weight    string `json:"weight,omitempty"`
}

type PlaceOrderRequest struct {
	Items       []OrderItemRequest `json:"items"`
	Contact     *ContactInfo       `json:"address,omitempty"`
	AddressId   string             `json:"addressId,omitempty"`
	PaymentType string             `json:"paymentType,omitempty"`
	UserId      string             `json:"-"`
}

type CreateBillRequest struct {
	Items       []OrderItemRequest `json:"items"`
	Contact     ContactInfo        `json:"address"`
	PaymentType string             `json:"paymentType"`
	IsPaid      bool               `json:"isPaid"`
}

type OrderSearchData struct {
	UserId      *string
	AddressId   *string
	GuestPhone  *string
	SettledOnly bool
}
