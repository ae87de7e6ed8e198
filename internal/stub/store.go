package stub

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mobilestore/storefront/internal/model"
)

// customer is the stub backend's stored customer record.
type customer struct {
	model.User
	passwordHash string
}

// cartLine is one stored cart line; denormalized price fields are derived
// at serialization time.
type cartLine struct {
	id          int
	productType string
	productID   int
	quantity    int
}

// Store holds all stub backend state in memory. It is safe for concurrent
// use by the HTTP handlers.
type Store struct {
	mu sync.Mutex

	customers   map[int]*customer
	emailIndex  map[string]int
	brands      []model.Brand
	phones      map[int]*model.Phone
	accessories map[int]*model.Accessory
	carts       map[int][]cartLine // customer ID -> lines
	orders      map[int]*model.Order
	orderOwner  map[int]int
	payments    map[int]*model.Payment
	payOwner    map[int]int
	idemKeys    map[string]int // idempotency key -> payment ID

	nextID map[string]int
}

// NewStore creates a store seeded with a small catalog.
func NewStore() *Store {
	s := &Store{
		customers:   map[int]*customer{},
		emailIndex:  map[string]int{},
		phones:      map[int]*model.Phone{},
		accessories: map[int]*model.Accessory{},
		carts:       map[int][]cartLine{},
		orders:      map[int]*model.Order{},
		orderOwner:  map[int]int{},
		payments:    map[int]*model.Payment{},
		payOwner:    map[int]int{},
		idemKeys:    map[string]int{},
		nextID:      map[string]int{},
	}
	s.seed()
	return s
}

func (s *Store) seq(name string) int {
	s.nextID[name]++
	return s.nextID[name]
}

func (s *Store) seed() {
	s.brands = []model.Brand{
		{ID: 1, Name: "Samsung", CountryOfOrigin: "South Korea"},
		{ID: 2, Name: "Apple", CountryOfOrigin: "USA"},
		{ID: 3, Name: "Xiaomi", CountryOfOrigin: "China"},
	}
	phones := []model.Phone{
		{ID: 1, BrandID: 1, BrandName: "Samsung", ModelName: "Galaxy S24", Price: decimal.NewFromInt(799), StockQuantity: 12},
		{ID: 2, BrandID: 2, BrandName: "Apple", ModelName: "iPhone 15", Price: decimal.NewFromInt(899), StockQuantity: 8},
		{ID: 7, BrandID: 3, BrandName: "Xiaomi", ModelName: "Redmi Note 13", Price: decimal.NewFromInt(249), StockQuantity: 20},
	}
	for i := range phones {
		p := phones[i]
		s.phones[p.ID] = &p
	}
	accessories := []model.Accessory{
		{ID: 1, Name: "USB-C Charger", Category: "CHARGER", Price: decimal.NewFromInt(19), StockQuantity: 50},
		{ID: 2, Name: "Clear Case", Category: "CASE", Price: decimal.NewFromInt(12), StockQuantity: 35},
	}
	for i := range accessories {
		a := accessories[i]
		s.accessories[a.ID] = &a
	}
	s.nextID["phone"] = 7
	s.nextID["accessory"] = 2
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// createCustomer registers a new customer. It reports whether the email was
// already taken.
func (s *Store) createCustomer(data model.RegisterData) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emailIndex[data.Email]; taken {
		return nil, false
	}

	id := s.seq("customer")
	c := &customer{
		User: model.User{
			ID:         id,
			Name:       data.Name,
			Email:      data.Email,
			Phone:      data.Phone,
			Address:    data.Address,
			DateJoined: time.Now().UTC().Format(time.RFC3339),
		},
		passwordHash: hashPassword(data.Password),
	}
	s.customers[id] = c
	s.emailIndex[data.Email] = id
	user := c.User
	return &user, true
}

// authenticate checks credentials and returns the matching customer.
func (s *Store) authenticate(email, password string) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emailIndex[email]
	if !ok {
		return nil, false
	}
	c := s.customers[id]
	if c.passwordHash != hashPassword(password) {
		return nil, false
	}
	user := c.User
	return &user, true
}

func (s *Store) customerByID(id int) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, false
	}
	user := c.User
	return &user, true
}

// updateCustomer applies a partial profile update and returns the new view.
func (s *Store) updateCustomer(id int, update model.ProfileUpdate) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, false
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Phone != nil {
		c.Phone = *update.Phone
	}
	if update.Address != nil {
		c.Address = *update.Address
	}
	user := c.User
	return &user, true
}

// changePassword verifies the old password and sets the new one.
func (s *Store) changePassword(id int, oldPassword, newPassword string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return false, false
	}
	if c.passwordHash != hashPassword(oldPassword) {
		return true, false
	}
	c.passwordHash = hashPassword(newPassword)
	return true, true
}

// product resolves a cart line's product, returning its display name, unit
// price and available stock.
func (s *Store) productLocked(productType string, productID int) (string, decimal.Decimal, int, bool) {
	switch productType {
	case model.ProductTypePhone:
		p, ok := s.phones[productID]
		if !ok {
			return "", decimal.Zero, 0, false
		}
		return p.BrandName + " " + p.ModelName, p.Price, p.StockQuantity, true
	case model.ProductTypeAccessory:
		a, ok := s.accessories[productID]
		if !ok {
			return "", decimal.Zero, 0, false
		}
		return a.Name, a.Price, a.StockQuantity, true
	}
	return "", decimal.Zero, 0, false
}

func (s *Store) adjustStockLocked(productType string, productID, delta int) {
	switch productType {
	case model.ProductTypePhone:
		if p, ok := s.phones[productID]; ok {
			p.StockQuantity += delta
		}
	case model.ProductTypeAccessory:
		if a, ok := s.accessories[productID]; ok {
			a.StockQuantity += delta
		}
	}
}

// cartView serializes a customer's cart with denormalized prices and
// aggregates, mirroring the backend's cart serializer.
func (s *Store) cartViewLocked(customerID int) *model.Cart {
	lines := s.carts[customerID]
	cart := &model.Cart{
		ID:    customerID, // one cart per customer
		Items: []model.CartItem{},
	}
	total := decimal.Zero
	for _, line := range lines {
		name, price, _, ok := s.productLocked(line.productType, line.productID)
		if !ok {
			name = "Product not found"
			price = decimal.Zero
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(line.quantity)))
		cart.Items = append(cart.Items, model.CartItem{
			ID:          line.id,
			ProductType: line.productType,
			ProductID:   line.productID,
			Quantity:    line.quantity,
			ProductName: name,
			UnitPrice:   price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	cart.TotalItems = len(cart.Items)
	cart.TotalAmount = total
	return cart
}

// CartView returns the serialized cart for a customer.
func (s *Store) CartView(customerID int) *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked(customerID)
}

// addCartItem adds or merges a line, enforcing stock. It returns the new
// cart view or a stock/product error message.
func (s *Store) addCartItem(customerID int, productType string, productID, quantity int) (*model.Cart, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _, stock, ok := s.productLocked(productType, productID)
	if !ok {
		return nil, "Product not found"
	}

	lines := s.carts[customerID]
	for i := range lines {
		if lines[i].productType == productType && lines[i].productID == productID {
			if stock < lines[i].quantity+quantity {
				return nil, fmt.Sprintf("Only %d items available in stock", stock)
			}
			lines[i].quantity += quantity
			s.carts[customerID] = lines
			return s.cartViewLocked(customerID), ""
		}
	}

	if stock < quantity {
		return nil, fmt.Sprintf("Only %d items available in stock", stock)
	}
	s.carts[customerID] = append(lines, cartLine{
		id:          s.seq("cart_item"),
		productType: productType,
		productID:   productID,
		quantity:    quantity,
	})
	return s.cartViewLocked(customerID), ""
}

// updateCartItem sets a line's quantity, enforcing stock.
func (s *Store) updateCartItem(customerID, cartItemID, quantity int) (*model.Cart, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[customerID]
	for i := range lines {
		if lines[i].id == cartItemID {
			_, _, stock, ok := s.productLocked(lines[i].productType, lines[i].productID)
			if !ok {
				return nil, "Product not found"
			}
			if stock < quantity {
				return nil, fmt.Sprintf("Only %d items available in stock", stock)
			}
			lines[i].quantity = quantity
			s.carts[customerID] = lines
			return s.cartViewLocked(customerID), ""
		}
	}
	return nil, "Cart item not found"
}

// removeCartItem deletes a line. It reports whether the line existed.
func (s *Store) removeCartItem(customerID, cartItemID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[customerID]
	for i := range lines {
		if lines[i].id == cartItemID {
			s.carts[customerID] = append(lines[:i], lines[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) clearCart(customerID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[customerID] = nil
}

// createOrderFromCart converts the cart into an order, decrementing stock
// and clearing the cart. An error message is returned for an empty cart or
// insufficient stock.
func (s *Store) createOrderFromCart(customerID int, data model.CreateOrderData) (*model.Order, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[customerID]
	if len(lines) == 0 {
		return nil, "Cart is empty"
	}

	var items []model.OrderItem
	total := decimal.Zero
	for _, line := range lines {
		name, price, stock, ok := s.productLocked(line.productType, line.productID)
		if !ok {
			return nil, fmt.Sprintf("Product not found for cart item %d", line.id)
		}
		if stock < line.quantity {
			return nil, fmt.Sprintf("Insufficient stock for %s", name)
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(line.quantity)))
		items = append(items, model.OrderItem{
			ID:              s.seq("order_item"),
			ProductType:     line.productType,
			ProductID:       line.productID,
			ProductName:     name,
			Quantity:        line.quantity,
			PriceAtPurchase: price,
			Subtotal:        subtotal,
		})
		total = total.Add(subtotal)
	}

	for _, line := range lines {
		s.adjustStockLocked(line.productType, line.productID, -line.quantity)
	}
	s.carts[customerID] = nil

	order := &model.Order{
		ID:              s.seq("order"),
		Status:          model.OrderStatusPending,
		TotalAmount:     total,
		ShippingAddress: data.ShippingAddress,
		Notes:           data.Notes,
		Items:           items,
		OrderDate:       time.Now().UTC().Format(time.RFC3339),
	}
	s.orders[order.ID] = order
	s.orderOwner[order.ID] = customerID
	return order, ""
}

// orderFor returns an order if it belongs to the customer.
func (s *Store) orderFor(customerID, orderID int) (*model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok || s.orderOwner[orderID] != customerID {
		return nil, false
	}
	copied := *order
	return &copied, true
}

// ordersFor lists a customer's orders, newest first.
func (s *Store) ordersFor(customerID int) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []model.Order
	for id, order := range s.orders {
		if s.orderOwner[id] == customerID {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders
}

// cancelOrder moves an order to CANCELLED and restores stock. A refusal
// message is returned for non-cancellable states.
func (s *Store) cancelOrder(customerID, orderID int) (*model.Order, bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok || s.orderOwner[orderID] != customerID {
		return nil, false, ""
	}

	switch order.Status {
	case model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusCancelled:
		return nil, true, fmt.Sprintf("Cannot cancel order with status %s", order.Status)
	}

	for _, item := range order.Items {
		s.adjustStockLocked(item.ProductType, item.ProductID, item.Quantity)
	}
	order.Status = model.OrderStatusCancelled
	copied := *order
	return &copied, true, ""
}

// SetOrderStatus forces an order's status, for tests that need a shipped or
// delivered order.
func (s *Store) SetOrderStatus(orderID int, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.orders[orderID]; ok {
		order.Status = status
	}
}

// createPayment records a payment against an order. Replays of a known
// idempotency key return the original record.
func (s *Store) createPayment(customerID int, idemKey string, data model.CreatePaymentData) (*model.Payment, bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idemKey != "" {
		if payID, ok := s.idemKeys[idemKey]; ok {
			copied := *s.payments[payID]
			return &copied, false, ""
		}
	}

	order, ok := s.orders[data.OrderID]
	if !ok || s.orderOwner[data.OrderID] != customerID {
		return nil, false, "Order not found"
	}

	for _, p := range s.payments {
		if p.OrderID == data.OrderID && p.Status == model.PaymentStatusCompleted {
			return nil, false, "Payment already completed for this order"
		}
	}

	payment := &model.Payment{
		ID:            s.seq("payment"),
		OrderID:       data.OrderID,
		Amount:        order.TotalAmount,
		Method:        data.PaymentMethod,
		Status:        model.PaymentStatusCompleted,
		TransactionID: data.TransactionID,
		Notes:         data.Notes,
		PaymentDate:   time.Now().UTC().Format(time.RFC3339),
	}
	s.payments[payment.ID] = payment
	s.payOwner[payment.ID] = customerID
	if idemKey != "" {
		s.idemKeys[idemKey] = payment.ID
	}
	order.Status = model.OrderStatusConfirmed

	copied := *payment
	return &copied, true, ""
}

// paymentFor returns a payment if it belongs to the customer.
func (s *Store) paymentFor(customerID, paymentID int) (*model.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok || s.payOwner[paymentID] != customerID {
		return nil, false
	}
	copied := *payment
	return &copied, true
}

// paymentsFor lists a customer's payments, newest first.
func (s *Store) paymentsFor(customerID int) []model.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []model.Payment
	for id, p := range s.payments {
		if s.payOwner[id] == customerID {
			payments = append(payments, *p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID > payments[j].ID })
	return payments
}

// listPhones returns phones matching the filter, sorted by ID.
func (s *Store) listPhones(search string, brand int, minPrice, maxPrice *decimal.Decimal) []model.Phone {
	s.mu.Lock()
	defer s.mu.Unlock()

	var phones []model.Phone
	for _, p := range s.phones {
		if search != "" && !containsFold(p.BrandName+" "+p.ModelName, search) {
			continue
		}
		if brand != 0 && p.BrandID != brand {
			continue
		}
		if minPrice != nil && p.Price.LessThan(*minPrice) {
			continue
		}
		if maxPrice != nil && p.Price.GreaterThan(*maxPrice) {
			continue
		}
		phones = append(phones, *p)
	}
	sort.Slice(phones, func(i, j int) bool { return phones[i].ID < phones[j].ID })
	return phones
}

func (s *Store) phoneByID(id int) (*model.Phone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.phones[id]
	if !ok {
		return nil, false
	}
	copied := *p
	return &copied, true
}

// listAccessories returns accessories matching the filter, sorted by ID.
func (s *Store) listAccessories(search, category string, minPrice, maxPrice *decimal.Decimal) []model.Accessory {
	s.mu.Lock()
	defer s.mu.Unlock()

	var accessories []model.Accessory
	for _, a := range s.accessories {
		if search != "" && !containsFold(a.Name, search) {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		if minPrice != nil && a.Price.LessThan(*minPrice) {
			continue
		}
		if maxPrice != nil && a.Price.GreaterThan(*maxPrice) {
			continue
		}
		accessories = append(accessories, *a)
	}
	sort.Slice(accessories, func(i, j int) bool { return accessories[i].ID < accessories[j].ID })
	return accessories
}

func (s *Store) accessoryByID(id int) (*model.Accessory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accessories[id]
	if !ok {
		return nil, false
	}
	copied := *a
	return &copied, true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *Store) listBrands() []model.Brand {
	s.mu.Lock()
	defer s.mu.Unlock()
	brands := make([]model.Brand, len(s.brands))
	copy(brands, s.brands)
	return brands
}
