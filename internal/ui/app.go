// Package ui is the terminal storefront. It renders from the auth and cart
// state containers and invokes the error normalizer at the edge, right
// before text reaches the user.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobilestore/storefront/internal/auth"
	"github.com/mobilestore/storefront/internal/cart"
	"github.com/mobilestore/storefront/internal/catalog"
	"github.com/mobilestore/storefront/internal/errmsg"
	"github.com/mobilestore/storefront/internal/model"
	"github.com/mobilestore/storefront/internal/order"
	"github.com/mobilestore/storefront/internal/payment"
)

type screen int

const (
	screenLoading screen = iota
	screenMenu
	screenLogin
	screenRegister
	screenPhones
	screenAccessories
	screenCart
	screenCheckout
	screenPayMethod
	screenOrders
	screenOrderDetail
)

var paymentMethods = []string{
	model.PaymentMethodCreditCard,
	model.PaymentMethodDebitCard,
	model.PaymentMethodUPI,
	model.PaymentMethodNetBanking,
	model.PaymentMethodCashOnDelivery,
}

// field is one text input of a form.
type field struct {
	label  string
	value  string
	masked bool
}

// App is the bubbletea model for the storefront.
type App struct {
	ctx context.Context

	authMgr    *auth.Manager
	cartMgr    *cart.Manager
	catalogSvc *catalog.Service
	orderSvc   *order.Service
	paymentSvc *payment.Service

	screen    screen
	status    string
	fieldErrs map[string]string
	busy      bool
	cursor    int

	fields []field
	focus  int

	phones      []model.Phone
	accessories []model.Accessory
	orders      []model.Order
	current     *model.Order

	// attemptKey is generated once per checkout attempt and reused on
	// retries so the backend can de-duplicate the payment.
	attemptKey   string
	payMethodIdx int
}

// NewApp wires the storefront UI to its state containers and services.
func NewApp(ctx context.Context, authMgr *auth.Manager, cartMgr *cart.Manager, catalogSvc *catalog.Service, orderSvc *order.Service, paymentSvc *payment.Service) *App {
	return &App{
		ctx:        ctx,
		authMgr:    authMgr,
		cartMgr:    cartMgr,
		catalogSvc: catalogSvc,
		orderSvc:   orderSvc,
		paymentSvc: paymentSvc,
		screen:     screenLoading,
	}
}

func (a *App) Init() tea.Cmd {
	return a.rehydrateCmd(a.ctx)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case rehydratedMsg:
		a.screen = screenMenu
		if user, ok := a.authMgr.User(); ok {
			a.status = fmt.Sprintf("Welcome back, %s", user.Name)
		}
		return a, nil
	case loginDoneMsg:
		return a.finishAuth(msg.err, "Logged in successfully!")
	case registerDoneMsg:
		return a.finishAuth(msg.err, "Account created successfully!")
	case phonesLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.status = errmsg.Summary(msg.err)
			return a, nil
		}
		a.phones = msg.phones
		a.cursor = 0
		a.screen = screenPhones
		return a, nil
	case accessoriesLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.status = errmsg.Summary(msg.err)
			return a, nil
		}
		a.accessories = msg.accessories
		a.cursor = 0
		a.screen = screenAccessories
		return a, nil
	case cartChangedMsg:
		a.busy = false
		if msg.err != nil {
			a.status = errmsg.Summary(msg.err)
			return a, nil
		}
		a.status = "Cart updated successfully!"
		a.clampCartCursor()
		return a, nil
	case ordersLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.status = errmsg.Summary(msg.err)
			return a, nil
		}
		a.orders = msg.orders
		a.cursor = 0
		a.screen = screenOrders
		return a, nil
	case orderPlacedMsg:
		a.busy = false
		if msg.err != nil {
			a.status = errmsg.Summary(msg.err)
			return a, nil
		}
		a.current = msg.order
		a.attemptKey = payment.NewAttemptKey()
		a.payMethodIdx = 0
		a.screen = screenPayMethod
		a.status = fmt.Sprintf("Order #%d placed. Choose a payment method.", msg.order.ID)
		return a, nil
	case orderCancelledMsg:
		a.busy = false
		if msg.err != nil {
			a.status = errmsg.Summary(msg.err)
			return a, nil
		}
		a.current = msg.order
		a.status = fmt.Sprintf("Order #%d cancelled.", msg.order.ID)
		return a, a.loadOrdersCmd(a.ctx)
	case paymentDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.status = errmsg.Summary(msg.err)
			return a, nil
		}
		a.attemptKey = ""
		a.status = fmt.Sprintf("Payment #%d completed successfully!", msg.payment.ID)
		a.screen = screenMenu
		return a, nil
	}
	return a, nil
}

func (a *App) finishAuth(err error, success string) (tea.Model, tea.Cmd) {
	a.busy = false
	if err != nil {
		a.status = errmsg.Summary(err)
		a.fieldErrs = errmsg.FieldErrors(err)
		return a, nil
	}
	a.fieldErrs = nil
	a.status = success
	a.screen = screenMenu
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.busy {
		return a, nil
	}

	switch a.screen {
	case screenLogin, screenRegister, screenCheckout:
		return a.handleFormKey(msg)
	case screenMenu:
		return a.handleMenuKey(msg)
	case screenPhones:
		return a.handleCatalogKey(msg, len(a.phones), func(i int) tea.Cmd {
			return a.addToCartCmd(a.ctx, model.ProductTypePhone, a.phones[i].ID)
		})
	case screenAccessories:
		return a.handleCatalogKey(msg, len(a.accessories), func(i int) tea.Cmd {
			return a.addToCartCmd(a.ctx, model.ProductTypeAccessory, a.accessories[i].ID)
		})
	case screenCart:
		return a.handleCartKey(msg)
	case screenPayMethod:
		return a.handlePayMethodKey(msg)
	case screenOrders:
		return a.handleOrdersKey(msg)
	case screenOrderDetail:
		return a.handleOrderDetailKey(msg)
	}
	return a, nil
}

func (a *App) menuItems() []string {
	if a.authMgr.IsAuthenticated() {
		return []string{"Browse phones", "Browse accessories", "View cart", "My orders", "Log out", "Quit"}
	}
	return []string{"Browse phones", "Browse accessories", "Log in", "Register", "Quit"}
}

func (a *App) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := a.menuItems()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case "enter":
		return a.selectMenuItem(items[a.cursor])
	}
	return a, nil
}

func (a *App) selectMenuItem(item string) (tea.Model, tea.Cmd) {
	switch item {
	case "Browse phones":
		a.busy = true
		return a, a.loadPhonesCmd(a.ctx, "")
	case "Browse accessories":
		a.busy = true
		return a, a.loadAccessoriesCmd(a.ctx, "")
	case "View cart":
		a.cursor = 0
		a.screen = screenCart
	case "My orders":
		a.busy = true
		return a, a.loadOrdersCmd(a.ctx)
	case "Log in":
		a.startForm(screenLogin, []field{
			{label: "Email"},
			{label: "Password", masked: true},
		})
	case "Register":
		a.startForm(screenRegister, []field{
			{label: "Name"},
			{label: "Email"},
			{label: "Phone"},
			{label: "Address"},
			{label: "Password", masked: true},
			{label: "Confirm password", masked: true},
		})
	case "Log out":
		if err := a.authMgr.Logout(); err != nil {
			a.status = errmsg.Summary(err)
			return a, nil
		}
		a.cartMgr.Reset()
		a.cursor = 0
		a.status = "Logged out successfully!"
	case "Quit":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) startForm(target screen, fields []field) {
	a.screen = target
	a.fields = fields
	a.focus = 0
	a.fieldErrs = nil
	a.status = ""
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.screen = screenMenu
		a.cursor = 0
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		if a.focus < len(a.fields)-1 {
			a.focus++
		}
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		if a.focus > 0 {
			a.focus--
		}
		return a, nil
	case tea.KeyBackspace:
		value := a.fields[a.focus].value
		if value != "" {
			a.fields[a.focus].value = value[:len(value)-1]
		}
		return a, nil
	case tea.KeyEnter:
		if a.focus < len(a.fields)-1 {
			a.focus++
			return a, nil
		}
		return a.submitForm()
	case tea.KeySpace:
		a.fields[a.focus].value += " "
		return a, nil
	case tea.KeyRunes:
		a.fields[a.focus].value += string(msg.Runes)
		return a, nil
	}
	return a, nil
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	switch a.screen {
	case screenLogin:
		a.busy = true
		return a, a.loginCmd(a.ctx, model.Credentials{
			Email:    strings.TrimSpace(a.fields[0].value),
			Password: a.fields[1].value,
		})
	case screenRegister:
		a.busy = true
		return a, a.registerCmd(a.ctx, model.RegisterData{
			Name:      strings.TrimSpace(a.fields[0].value),
			Email:     strings.TrimSpace(a.fields[1].value),
			Phone:     strings.TrimSpace(a.fields[2].value),
			Address:   strings.TrimSpace(a.fields[3].value),
			Password:  a.fields[4].value,
			Password2: a.fields[5].value,
		})
	case screenCheckout:
		address := strings.TrimSpace(a.fields[0].value)
		if address == "" {
			a.fieldErrs = map[string]string{"shipping_address": "Shipping address is required."}
			return a, nil
		}
		a.busy = true
		return a, a.placeOrderCmd(a.ctx, address)
	}
	return a, nil
}

func (a *App) handleCatalogKey(msg tea.KeyMsg, count int, add func(int) tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.screen = screenMenu
		a.cursor = 0
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < count-1 {
			a.cursor++
		}
	case "enter":
		if count == 0 {
			return a, nil
		}
		if !a.authMgr.IsAuthenticated() {
			a.status = errmsg.MsgAuthRequired
			return a, nil
		}
		a.busy = true
		return a, add(a.cursor)
	}
	return a, nil
}

func (a *App) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snapshot, loaded := a.cartMgr.Snapshot()
	count := 0
	if loaded {
		count = len(snapshot.Items)
	}

	switch msg.String() {
	case "esc", "q":
		a.screen = screenMenu
		a.cursor = 0
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < count-1 {
			a.cursor++
		}
	case "+":
		if a.cursor < count {
			item := snapshot.Items[a.cursor]
			a.busy = true
			return a, a.updateQuantityCmd(a.ctx, item.ID, item.Quantity+1)
		}
	case "-":
		if a.cursor < count && snapshot.Items[a.cursor].Quantity > 1 {
			item := snapshot.Items[a.cursor]
			a.busy = true
			return a, a.updateQuantityCmd(a.ctx, item.ID, item.Quantity-1)
		}
	case "d":
		if a.cursor < count {
			a.busy = true
			return a, a.removeItemCmd(a.ctx, snapshot.Items[a.cursor].ID)
		}
	case "x":
		if count > 0 {
			a.busy = true
			return a, a.clearCartCmd(a.ctx)
		}
	case "enter":
		if count == 0 {
			a.status = "Your cart is empty."
			return a, nil
		}
		a.startForm(screenCheckout, []field{{label: "Shipping address"}})
	}
	return a, nil
}

func (a *App) handlePayMethodKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.screen = screenMenu
		a.cursor = 0
	case "up", "k":
		if a.payMethodIdx > 0 {
			a.payMethodIdx--
		}
	case "down", "j":
		if a.payMethodIdx < len(paymentMethods)-1 {
			a.payMethodIdx++
		}
	case "enter":
		if a.current == nil {
			return a, nil
		}
		a.busy = true
		return a, a.payCmd(a.ctx, a.attemptKey, model.CreatePaymentData{
			OrderID:       a.current.ID,
			PaymentMethod: paymentMethods[a.payMethodIdx],
		})
	}
	return a, nil
}

func (a *App) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.screen = screenMenu
		a.cursor = 0
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.orders)-1 {
			a.cursor++
		}
	case "enter":
		if a.cursor < len(a.orders) {
			order := a.orders[a.cursor]
			a.current = &order
			a.screen = screenOrderDetail
		}
	}
	return a, nil
}

func (a *App) handleOrderDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.screen = screenOrders
	case "c":
		if a.current != nil {
			a.busy = true
			return a, a.cancelOrderCmd(a.ctx, a.current.ID)
		}
	}
	return a, nil
}

func (a *App) clampCartCursor() {
	snapshot, loaded := a.cartMgr.Snapshot()
	if !loaded || len(snapshot.Items) == 0 {
		a.cursor = 0
		return
	}
	if a.cursor >= len(snapshot.Items) {
		a.cursor = len(snapshot.Items) - 1
	}
}
