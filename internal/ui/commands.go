package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobilestore/storefront/internal/catalog"
	"github.com/mobilestore/storefront/internal/model"
)

// Messages delivered back to the update loop when an async operation
// finishes. Errors travel raw; they are normalized to user-facing text at
// render time.

type rehydratedMsg struct{}

type loginDoneMsg struct{ err error }

type registerDoneMsg struct{ err error }

type phonesLoadedMsg struct {
	phones []model.Phone
	err    error
}

type accessoriesLoadedMsg struct {
	accessories []model.Accessory
	err         error
}

type cartChangedMsg struct{ err error }

type ordersLoadedMsg struct {
	orders []model.Order
	err    error
}

type orderPlacedMsg struct {
	order *model.Order
	err   error
}

type orderCancelledMsg struct {
	order *model.Order
	err   error
}

type paymentDoneMsg struct {
	payment *model.Payment
	err     error
}

func (a *App) rehydrateCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		a.authMgr.Rehydrate(ctx)
		if a.authMgr.IsAuthenticated() {
			_ = a.cartMgr.Refresh(ctx)
		}
		return rehydratedMsg{}
	}
}

func (a *App) loginCmd(ctx context.Context, creds model.Credentials) tea.Cmd {
	return func() tea.Msg {
		if err := a.authMgr.Login(ctx, creds); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{err: a.cartMgr.Refresh(ctx)}
	}
}

func (a *App) registerCmd(ctx context.Context, data model.RegisterData) tea.Cmd {
	return func() tea.Msg {
		if err := a.authMgr.Register(ctx, data); err != nil {
			return registerDoneMsg{err: err}
		}
		return registerDoneMsg{err: a.cartMgr.Refresh(ctx)}
	}
}

func (a *App) loadPhonesCmd(ctx context.Context, search string) tea.Cmd {
	return func() tea.Msg {
		phones, err := a.catalogSvc.Phones(ctx, catalog.PhoneFilter{Search: search})
		return phonesLoadedMsg{phones: phones, err: err}
	}
}

func (a *App) loadAccessoriesCmd(ctx context.Context, search string) tea.Cmd {
	return func() tea.Msg {
		accessories, err := a.catalogSvc.Accessories(ctx, catalog.AccessoryFilter{Search: search})
		return accessoriesLoadedMsg{accessories: accessories, err: err}
	}
}

func (a *App) addToCartCmd(ctx context.Context, productType string, productID int) tea.Cmd {
	return func() tea.Msg {
		return cartChangedMsg{err: a.cartMgr.AddItem(ctx, productType, productID, 1)}
	}
}

func (a *App) updateQuantityCmd(ctx context.Context, cartItemID, quantity int) tea.Cmd {
	return func() tea.Msg {
		return cartChangedMsg{err: a.cartMgr.UpdateQuantity(ctx, cartItemID, quantity)}
	}
}

func (a *App) removeItemCmd(ctx context.Context, cartItemID int) tea.Cmd {
	return func() tea.Msg {
		return cartChangedMsg{err: a.cartMgr.RemoveItem(ctx, cartItemID)}
	}
}

func (a *App) clearCartCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return cartChangedMsg{err: a.cartMgr.Clear(ctx)}
	}
}

func (a *App) loadOrdersCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		orders, err := a.orderSvc.MyOrders(ctx)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func (a *App) placeOrderCmd(ctx context.Context, address string) tea.Cmd {
	return func() tea.Msg {
		order, err := a.orderSvc.CreateFromCart(ctx, model.CreateOrderData{ShippingAddress: address})
		if err != nil {
			return orderPlacedMsg{err: err}
		}
		// The server consumed the cart; resynchronize the local snapshot.
		_ = a.cartMgr.Refresh(ctx)
		return orderPlacedMsg{order: order}
	}
}

func (a *App) cancelOrderCmd(ctx context.Context, orderID int) tea.Cmd {
	return func() tea.Msg {
		order, err := a.orderSvc.Cancel(ctx, orderID)
		return orderCancelledMsg{order: order, err: err}
	}
}

func (a *App) payCmd(ctx context.Context, attemptKey string, data model.CreatePaymentData) tea.Cmd {
	return func() tea.Msg {
		payment, err := a.paymentSvc.Create(ctx, attemptKey, data)
		return paymentDoneMsg{payment: payment, err: err}
	}
}
