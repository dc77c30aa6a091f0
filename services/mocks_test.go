package services

import (
	"grocerStore/entities"
	"grocerStore/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockProductRepo struct {
	products map[string]models.Product_db
	failing  bool
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]models.Product_db)}
}

func (m *mockProductRepo) add(p models.Product_db) string {
	if p.Id.IsZero() {
		p.Id = primitive.NewObjectID()
	}
	m.products[p.Id.Hex()] = p
	return p.Id.Hex()
}

func (m *mockProductRepo) GetProductById(id string) (models.Product_db, bool, error) {
	if m.failing {
		return models.Product_db{}, false, models.ErrStorageUnavailable
	}
	p, ok := m.products[id]
	return p, ok, nil
}

func (m *mockProductRepo) ListProducts() ([]models.Product_db, error) {
	if m.failing {
		return nil, models.ErrStorageUnavailable
	}
	var out []models.Product_db
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepo) GetProductsByCategory(category string) ([]models.Product_db, error) {
	var out []models.Product_db
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) CreateProduct(p models.Product_db) (string, error) {
	if m.failing {
		return "", models.ErrStorageUnavailable
	}
	return m.add(p), nil
}

func (m *mockProductRepo) UpdateProductById(id string, upd models.ProductUpdate) (models.Product_db, error) {
	p, ok := m.products[id]
	if !ok {
		return models.Product_db{}, models.ErrNotFound
	}
	if upd.Name != "" {
		p.Name = upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.OfferPrice != nil {
		p.OfferPrice = *upd.OfferPrice
	}
	if upd.Weights != nil {
		p.Weights = upd.Weights
	}
	if upd.InStock != nil {
		p.InStock = *upd.InStock
	}
	m.products[id] = p
	return p, nil
}

type mockCartRepo struct {
	carts    map[string]entities.Cart
	setCalls int
	failing  bool
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string]entities.Cart)}
}

func (m *mockCartRepo) SetCart(userId string, cart entities.Cart) error {
	if m.failing {
		return models.ErrStorageUnavailable
	}
	m.setCalls++
	m.carts[userId] = cart
	return nil
}

func (m *mockCartRepo) GetCart(userId string) (entities.Cart, error) {
	if m.failing {
		return entities.Cart{}, models.ErrStorageUnavailable
	}
	cart, ok := m.carts[userId]
	if !ok {
		return entities.NewCart(), nil
	}
	return cart, nil
}

func (m *mockCartRepo) ClearCart(userId string) error {
	if m.failing {
		return models.ErrStorageUnavailable
	}
	delete(m.carts, userId)
	return nil
}

type mockAddressRepo struct {
	addrs   map[string]models.Address_db
	failing bool
}

func newMockAddressRepo() *mockAddressRepo {
	return &mockAddressRepo{addrs: make(map[string]models.Address_db)}
}

func (m *mockAddressRepo) insert(addr models.Address_db) string {
	if addr.Id.IsZero() {
		addr.Id = primitive.NewObjectID()
	}
	m.addrs[addr.Id.Hex()] = addr
	return addr.Id.Hex()
}

func (m *mockAddressRepo) GetAddressById(id string) (models.Address_db, bool, error) {
	if m.failing {
		return models.Address_db{}, false, models.ErrStorageUnavailable
	}
	addr, ok := m.addrs[id]
	return addr, ok, nil
}

func (m *mockAddressRepo) GetAddressByPhone(phone string) (models.Address_db, bool, error) {
	if m.failing {
		return models.Address_db{}, false, models.ErrStorageUnavailable
	}
	for _, addr := range m.addrs {
		if addr.Phone == phone {
			return addr, true, nil
		}
	}
	return models.Address_db{}, false, nil
}

func (m *mockAddressRepo) GetAddressByEmail(email string) (models.Address_db, bool, error) {
	if m.failing {
		return models.Address_db{}, false, models.ErrStorageUnavailable
	}
	for _, addr := range m.addrs {
		if addr.Email == email {
			return addr, true, nil
		}
	}
	return models.Address_db{}, false, nil
}

func (m *mockAddressRepo) ListAddresses() ([]models.Address_db, error) {
	if m.failing {
		return nil, models.ErrStorageUnavailable
	}
	var out []models.Address_db
	for _, addr := range m.addrs {
		out = append(out, addr)
	}
	return out, nil
}

func (m *mockAddressRepo) CreateAddress(addr models.Address_db) (string, error) {
	if m.failing {
		return "", models.ErrStorageUnavailable
	}
	return m.insert(addr), nil
}

func (m *mockAddressRepo) UpsertAddressByPhone(addr models.Address_db) (string, error) {
	if m.failing {
		return "", models.ErrStorageUnavailable
	}
	for id, existing := range m.addrs {
		if existing.Phone == addr.Phone {
			addr.Id = existing.Id
			addr.CreatedAt = existing.CreatedAt
			m.addrs[id] = addr
			return id, nil
		}
	}
	return m.insert(addr), nil
}

func (m *mockAddressRepo) UpdateAddress(id string, addr models.Address_db) error {
	if m.failing {
		return models.ErrStorageUnavailable
	}
	existing, ok := m.addrs[id]
	if !ok {
		return models.ErrNotFound
	}
	addr.Id = existing.Id
	m.addrs[id] = addr
	return nil
}

type mockOrderRepo struct {
	orders  []models.Order_db
	failing bool
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{}
}

func (m *mockOrderRepo) CreateOrder(order models.Order_db) (string, error) {
	if m.failing {
		return "", models.ErrStorageUnavailable
	}
	order.Id = primitive.NewObjectID()
	m.orders = append(m.orders, order)
	return order.Id.Hex(), nil
}

func (m *mockOrderRepo) GetOrderById(orderId string) (models.Order_db, bool, error) {
	if m.failing {
		return models.Order_db{}, false, models.ErrStorageUnavailable
	}
	for _, o := range m.orders {
		if o.Id.Hex() == orderId {
			return o, true, nil
		}
	}
	return models.Order_db{}, false, nil
}

func (m *mockOrderRepo) SearchOrders(data models.OrderSearchData) ([]models.Order_db, error) {
	if m.failing {
		return nil, models.ErrStorageUnavailable
	}
	var out []models.Order_db
	for _, o := range m.orders {
		if data.UserId != nil && o.UserId != *data.UserId {
			continue
		}
		if data.AddressId != nil || data.GuestPhone != nil {
			linked := false
			if data.AddressId != nil && o.AddressId == *data.AddressId {
				linked = true
			}
			if data.GuestPhone != nil && o.GuestAddress != nil && o.GuestAddress.Phone == *data.GuestPhone {
				linked = true
			}
			if !linked {
				continue
			}
		}
		if data.SettledOnly && o.PaymentType != "COD" && !o.IsPaid {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderRepo) SetPaymentStatus(orderId string, isPaid bool) error {
	if m.failing {
		return models.ErrStorageUnavailable
	}
	for i, o := range m.orders {
		if o.Id.Hex() == orderId {
			m.orders[i].IsPaid = isPaid
			return nil
		}
	}
	return models.ErrNotFound
}

type mockUserRepo struct {
	users          map[string]models.User_db
	profileUpdates map[string][2]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:          make(map[string]models.User_db),
		profileUpdates: make(map[string][2]string),
	}
}

func (m *mockUserRepo) GetUserById(id string) (models.User_db, bool, error) {
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *mockUserRepo) GetUserByEmail(email string) (models.User_db, bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return models.User_db{}, false, nil
}

func (m *mockUserRepo) AddNewUser(uModel models.User_db) (string, error) {
	uModel.Id = primitive.NewObjectID()
	m.users[uModel.Id.Hex()] = uModel
	return uModel.Id.Hex(), nil
}

func (m *mockUserRepo) UpdateUserProfile(id string, name string, email string) error {
	m.profileUpdates[id] = [2]string{name, email}
	return nil
}

func (m *mockUserRepo) EncryptPassword(userPass string) (string, error) {
	return "hashed:" + userPass, nil
}

func (m *mockUserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	return hashedPassword == "hashed:"+sentPassword
}
