package services

import (
	"testing"

	"grocerStore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerService() (CustomerService, *mockAddressRepo, *mockOrderRepo, *mockUserRepo) {
	ar := newMockAddressRepo()
	or := newMockOrderRepo()
	ur := newMockUserRepo()
	return NewCustomerService(ar, or, ur), ar, or, ur
}

func TestResolveCustomerDeduplicatesByPhone(t *testing.T) {
	cs, ar, _, _ := newCustomerService()

	first, err := cs.ResolveCustomer(models.ContactInfo{FirstName: "A", Phone: "555-1"})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := cs.ResolveCustomer(models.ContactInfo{FirstName: "B", Phone: "555-1", Email: "b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, first, second, "same phone must resolve to the same record")

	addr, ok, err := ar.GetAddressById(first)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "B", addr.FirstName)
	assert.Equal(t, "b@x.com", addr.Email)
}

func TestResolveCustomerPartialUpdateKeepsExistingFields(t *testing.T) {
	cs, ar, _, _ := newCustomerService()

	id, err := cs.ResolveCustomer(models.ContactInfo{
		FirstName: "Ana", Phone: "555-3", Street: "12 Elm St", City: "Lahore",
	})
	require.NoError(t, err)

	_, err = cs.ResolveCustomer(models.ContactInfo{FirstName: "Ana", Phone: "555-3", LastName: "Khan"})
	require.NoError(t, err)

	addr, ok, err := ar.GetAddressById(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Khan", addr.LastName)
	assert.Equal(t, "12 Elm St", addr.Street, "blank incoming fields never null out stored ones")
	assert.Equal(t, "Lahore", addr.City)
}

func TestResolveCustomerFallsBackToEmail(t *testing.T) {
	cs, _, _, _ := newCustomerService()

	first, err := cs.ResolveCustomer(models.ContactInfo{FirstName: "C", Phone: "555-4", Email: "c@x.com"})
	require.NoError(t, err)

	// unmatched phone, matching email: still the same customer
	second, err := cs.ResolveCustomer(models.ContactInfo{FirstName: "C", Phone: "555-5", Email: "c@x.com"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveCustomerCreatesWhenUnmatched(t *testing.T) {
	cs, ar, _, _ := newCustomerService()

	a, err := cs.ResolveCustomer(models.ContactInfo{FirstName: "A", Phone: "555-6"})
	require.NoError(t, err)
	b, err := cs.ResolveCustomer(models.ContactInfo{FirstName: "B", Phone: "555-7"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, ar.addrs, 2)
}

func TestResolveCustomerStorageFailure(t *testing.T) {
	cs, ar, _, _ := newCustomerService()
	ar.failing = true

	_, err := cs.ResolveCustomer(models.ContactInfo{FirstName: "A", Phone: "555-8"})
	require.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestGetAllCustomersCountsLinkedOrders(t *testing.T) {
	cs, ar, or, _ := newCustomerService()

	id := ar.insert(models.Address_db{FirstName: "Ana", Phone: "555-1"})
	other := ar.insert(models.Address_db{FirstName: "Bob", Phone: "555-2"})

	_, err := or.CreateOrder(models.Order_db{AddressId: id, PaymentType: "COD"})
	require.NoError(t, err)
	_, err = or.CreateOrder(models.Order_db{
		GuestAddress: &models.Address_db{Phone: "555-1"},
		PaymentType:  "Cash",
		IsPaid:       true,
	})
	require.NoError(t, err)

	customers, err := cs.GetAllCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 2)

	counts := map[string]int{}
	for _, c := range customers {
		counts[c.Id] = c.OrderCount
	}
	assert.Equal(t, 2, counts[id], "orders match by address link or snapshot phone")
	assert.Equal(t, 0, counts[other])
}

func TestGetCustomerByIdReturnsOrders(t *testing.T) {
	cs, ar, or, _ := newCustomerService()

	id := ar.insert(models.Address_db{FirstName: "Ana", LastName: "Khan", Phone: "555-1"})
	_, err := or.CreateOrder(models.Order_db{AddressId: id, PaymentType: "COD"})
	require.NoError(t, err)

	customer, orders, err := cs.GetCustomerById(id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Khan", customer.Name)
	assert.Len(t, orders, 1)
}

func TestGetCustomerByIdUnknown(t *testing.T) {
	cs, _, _, _ := newCustomerService()

	_, _, err := cs.GetCustomerById("665f1c2ab8d3e24f90a11bff")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateCustomerPropagatesToLinkedUser(t *testing.T) {
	cs, ar, _, ur := newCustomerService()

	id := ar.insert(models.Address_db{FirstName: "Ana", Phone: "555-1", UserId: "u42"})

	customer, err := cs.UpdateCustomer(id, models.ContactInfo{
		FirstName: "Anna", LastName: "K", Email: "anna@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna K", customer.Name)

	update, ok := ur.profileUpdates["u42"]
	require.True(t, ok, "linked user account must be updated too")
	assert.Equal(t, "Anna K", update[0])
	assert.Equal(t, "anna@x.com", update[1])
}
