package model

import (
	"github.com/shopspring/decimal"
)

// Product type values used by cart and order lines.
const (
	ProductTypePhone     = "PHONE"
	ProductTypeAccessory = "ACCESSORY"
)

// Order status values as reported by the backend.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// Payment method values accepted by the backend.
const (
	PaymentMethodCreditCard     = "CREDIT_CARD"
	PaymentMethodDebitCard      = "DEBIT_CARD"
	PaymentMethodUPI            = "UPI"
	PaymentMethodNetBanking     = "NET_BANKING"
	PaymentMethodCashOnDelivery = "CASH_ON_DELIVERY"
)

// Payment status values as reported by the backend.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusRefunded  = "REFUNDED"
)

// Tokens is the bearer token pair returned by login.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// User is the customer profile as served by /customers/profiles/me/.
type User struct {
	ID         int    `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	DateJoined string `json:"date_joined,omitempty"`
}

// RegisterData is the payload for customer registration. Password2 is the
// confirmation field the backend insists on.
type RegisterData struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries a partial profile update; nil fields are left
// unchanged server-side.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// PasswordChange is the payload for /customers/profiles/change_password/.
type PasswordChange struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

// CartItem is one line of the server-held cart. ProductName, UnitPrice and
// Subtotal are denormalized by the backend at read time.
type CartItem struct {
	ID          int             `json:"cart_item_id"`
	ProductType string          `json:"product_type"`
	ProductID   int             `json:"product_id"`
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	CreatedAt   string          `json:"created_at,omitempty"`
}

// Cart is the complete, server-authoritative cart snapshot. The aggregate
// fields are optional in some responses; callers should recompute totals
// from Items instead of trusting them.
type Cart struct {
	ID          int             `json:"cart_id"`
	Items       []CartItem      `json:"items"`
	TotalItems  int             `json:"total_items,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

// OrderItem is one line of a placed order, with the price captured at
// purchase time.
type OrderItem struct {
	ID              int             `json:"order_item_id"`
	ProductType     string          `json:"product_type"`
	ProductID       int             `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// Order is a read-mostly historical record; only the backend moves its
// status, with cancellation as the one client-initiated transition.
type Order struct {
	ID              int             `json:"order_id"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	Notes           string          `json:"notes,omitempty"`
	Items           []OrderItem     `json:"items"`
	OrderDate       string          `json:"order_date,omitempty"`
}

// CreateOrderData is the payload for /orders/create_from_cart/.
type CreateOrderData struct {
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes,omitempty"`
}

// Payment records one payment attempt against an order.
type Payment struct {
	ID            int             `json:"payment_id"`
	OrderID       int             `json:"order"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"payment_method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaymentDate   string          `json:"payment_date,omitempty"`
}

// CreatePaymentData is the payload for /payments/create_payment/.
type CreatePaymentData struct {
	OrderID       int    `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Brand is a phone manufacturer in the catalog.
type Brand struct {
	ID              int    `json:"brand_id"`
	Name            string `json:"brand_name"`
	CountryOfOrigin string `json:"country_of_origin,omitempty"`
	PhoneCount      int    `json:"phone_count,omitempty"`
}

// Phone is a catalog entry for a mobile phone.
type Phone struct {
	ID            int             `json:"phone_id"`
	BrandID       int             `json:"brand"`
	BrandName     string          `json:"brand_name,omitempty"`
	ModelName     string          `json:"model_name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Description   string          `json:"description,omitempty"`
}

// Accessory is a catalog entry for a phone accessory.
type Accessory struct {
	ID            int             `json:"accessory_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Description   string          `json:"description,omitempty"`
}
