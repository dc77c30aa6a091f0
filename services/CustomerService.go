package services

import (
	"strings"

	"grocerStore/entities"
	"grocerStore/models"
	"grocerStore/repository"
)

type CustomerService struct {
	ar repository.AddressRepository
	or repository.OrderRepository
	ur repository.UserRepository
}

func NewCustomerService(addressRepo repository.AddressRepository, orderRepo repository.OrderRepository, userRepo repository.UserRepository) CustomerService {
	return CustomerService{
		ar: addressRepo,
		or: orderRepo,
		ur: userRepo,
	}
}

// ResolveCustomer deduplicates a submitted contact against the customer
// directory: exact phone match first, then email, creating a record only
// when neither matches. Callers get an id either way and never learn
// whether a create or an update happened.
func (cs *CustomerService) ResolveCustomer(contact models.ContactInfo) (addressId string, err error) {
	var existing models.Address_db
	var found bool

	if contact.Phone != "" {
		existing, found, err = cs.ar.GetAddressByPhone(contact.Phone)
		if err != nil {
			return
		}
	}
	if !found && contact.Email != "" {
		existing, found, err = cs.ar.GetAddressByEmail(contact.Email)
		if err != nil {
			return
		}
	}

	if found {
		err = cs.ar.UpdateAddress(existing.Id.Hex(), mergeContact(existing, contact))
		if err != nil {
			return
		}
		addressId = existing.Id.Hex()
		return
	}

	doc := contactToAddress(contact)
	if contact.Phone != "" {
		addressId, err = cs.ar.UpsertAddressByPhone(doc)
		return
	}
	addressId, err = cs.ar.CreateAddress(doc)
	return
}

// mergeContact applies partial-update semantics: non-empty submitted
// fields replace stored ones, blanks leave the record untouched.
func mergeContact(existing models.Address_db, contact models.ContactInfo) models.Address_db {
	incoming := contactToAddress(contact)
	merged := existing
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	pick(&merged.FirstName, incoming.FirstName)
	pick(&merged.LastName, incoming.LastName)
	pick(&merged.Email, incoming.Email)
	pick(&merged.Phone, incoming.Phone)
	pick(&merged.Street, incoming.Street)
	pick(&merged.City, incoming.City)
	pick(&merged.State, incoming.State)
	pick(&merged.Zipcode, incoming.Zipcode)
	pick(&merged.Country, incoming.Country)
	return merged
}

func contactToAddress(contact models.ContactInfo) models.Address_db {
	return models.Address_db{
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Street:    contact.Street,
		City:      contact.City,
		State:     contact.State,
		Zipcode:   contact.Zipcode,
		Country:   contact.Country,
	}
}

func customerView(addr models.Address_db) entities.Customer {
	return entities.Customer{
		Id:        addr.Id.Hex(),
		FirstName: addr.FirstName,
		LastName:  addr.LastName,
		Name:      strings.TrimSpace(addr.FirstName + " " + addr.LastName),
		Email:     addr.Email,
		Phone:     addr.Phone,
		Street:    addr.Street,
		City:      addr.City,
		State:     addr.State,
		Zipcode:   addr.Zipcode,
		Country:   addr.Country,
		CreatedAt: addr.CreatedAt,
	}
}

// GetAllCustomers lists the directory with per-customer order counts.
// An order belongs to a customer when it references the address record
// or, for manual bills, when the embedded snapshot carries the phone.
func (cs *CustomerService) GetAllCustomers() (customers []entities.Customer, err error) {
	addrs, e := cs.ar.ListAddresses()
	if e != nil {
		err = e
		return
	}
	orders, e := cs.or.SearchOrders(models.OrderSearchData{})
	if e != nil {
		err = e
		return
	}

	customers = []entities.Customer{}
	for _, addr := range addrs {
		cust := customerView(addr)
		for _, ord := range orders {
			if ord.AddressId == cust.Id ||
				(ord.GuestAddress != nil && addr.Phone != "" && ord.GuestAddress.Phone == addr.Phone) {
				cust.OrderCount++
			}
		}
		customers = append(customers, cust)
	}
	return
}

func (cs *CustomerService) GetCustomerById(id string) (customer entities.Customer, orders []models.Order_db, err error) {
	addr, ex, e := cs.ar.GetAddressById(id)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrNotFound
		return
	}
	customer = customerView(addr)

	search := models.OrderSearchData{AddressId: &id}
	if addr.Phone != "" {
		phone := addr.Phone
		search.GuestPhone = &phone
	}
	orders, err = cs.or.SearchOrders(search)
	return
}

// UpdateCustomer edits a directory record from the back-office with the
// same partial-update semantics as checkout resolution, and propagates
// name/email to a linked user account when one exists.
func (cs *CustomerService) UpdateCustomer(id string, contact models.ContactInfo) (customer entities.Customer, err error) {
	addr, ex, e := cs.ar.GetAddressById(id)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrNotFound
		return
	}

	merged := mergeContact(addr, contact)
	err = cs.ar.UpdateAddress(id, merged)
	if err != nil {
		return
	}

	if addr.UserId != "" {
		fullName := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
		err = cs.ur.UpdateUserProfile(addr.UserId, fullName, contact.Email)
		if err != nil {
			return
		}
	}
	merged.Id = addr.Id
	customer = customerView(merged)
	return
}
