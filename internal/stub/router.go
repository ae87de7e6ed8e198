// Package stub is an in-memory implementation of the mobile store REST
// contract. Integration tests run the client against it through httptest,
// and cmd/stubserver serves it on a port for local development. It models
// the backend's observable behavior (response shapes, error conventions,
// status transitions), not its internals.
package stub

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Backend bundles the stub's router and store. Tests reach into Store to
// arrange states the REST surface does not expose, such as a delivered
// order.
type Backend struct {
	Router *chi.Mux
	Store  *Store
}

// New creates a stub backend with all routes configured under the given
// JWT signing secret.
func New(jwtSecret string) *Backend {
	store := NewStore()
	jwtService := NewJWTService(jwtSecret)

	authHandler := NewAuthHandler(store, jwtService)
	cartHandler := NewCartHandler(store)
	catalogHandler := NewCatalogHandler(store)
	orderHandler := NewOrderHandler(store)
	paymentHandler := NewPaymentHandler(store)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/register/", authHandler.HandleRegister)
		r.Post("/login/", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(bearerAuth(jwtService, store))
			r.Get("/profiles/me/", authHandler.HandleMe)
			r.Put("/profiles/update_profile/", authHandler.HandleUpdateProfile)
			r.Patch("/profiles/update_profile/", authHandler.HandleUpdateProfile)
			r.Post("/profiles/change_password/", authHandler.HandleChangePassword)
		})
	})

	r.Get("/phones/", catalogHandler.HandleListPhones)
	r.Get("/phones/brands/", catalogHandler.HandleListBrands)
	r.Get("/phones/{id}/", catalogHandler.HandlePhoneDetail)
	r.Get("/accessories/", catalogHandler.HandleListAccessories)
	r.Get("/accessories/{id}/", catalogHandler.HandleAccessoryDetail)

	r.Group(func(r chi.Router) {
		r.Use(bearerAuth(jwtService, store))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/my_cart/", cartHandler.HandleMyCart)
			r.Post("/add_item/", cartHandler.HandleAddItem)
			r.Patch("/update_item/", cartHandler.HandleUpdateItem)
			r.Delete("/remove_item/", cartHandler.HandleRemoveItem)
			r.Delete("/clear_cart/", cartHandler.HandleClearCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/my_orders/", orderHandler.HandleMyOrders)
			r.Post("/create_from_cart/", orderHandler.HandleCreateFromCart)
			r.Get("/{id}/", orderHandler.HandleOrderDetail)
			r.Post("/{id}/cancel/", orderHandler.HandleCancel)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/create_payment/", paymentHandler.HandleCreatePayment)
			r.Get("/my_payments/", paymentHandler.HandleMyPayments)
			r.Get("/{id}/", paymentHandler.HandlePaymentDetail)
		})
	})

	return &Backend{Router: r, Store: store}
}
