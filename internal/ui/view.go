package ui

import (
	"fmt"
	"strings"
)

func (a *App) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "Mobile Store")
	fmt.Fprintln(b, "")

	switch a.screen {
	case screenLoading:
		fmt.Fprintln(b, "Restoring session...")
	case screenMenu:
		a.viewMenu(b)
	case screenLogin:
		a.viewForm(b, "Log in", map[string]string{
			"Email":    "email",
			"Password": "password",
		})
	case screenRegister:
		a.viewForm(b, "Register", map[string]string{
			"Name":             "name",
			"Email":            "email",
			"Phone":            "phone",
			"Address":          "address",
			"Password":         "password",
			"Confirm password": "confirmPassword",
		})
	case screenPhones:
		a.viewPhones(b)
	case screenAccessories:
		a.viewAccessories(b)
	case screenCart:
		a.viewCart(b)
	case screenCheckout:
		a.viewForm(b, "Checkout", map[string]string{
			"Shipping address": "shipping_address",
		})
	case screenPayMethod:
		a.viewPayMethod(b)
	case screenOrders:
		a.viewOrders(b)
	case screenOrderDetail:
		a.viewOrderDetail(b)
	}

	if a.busy {
		fmt.Fprintln(b, "\nWorking...")
	}
	if a.status != "" {
		fmt.Fprintf(b, "\n%s\n", a.status)
	}
	return b.String()
}

func (a *App) viewMenu(b *strings.Builder) {
	if user, ok := a.authMgr.User(); ok {
		fmt.Fprintf(b, "Signed in as %s (%s)\n", user.Name, user.Email)
		fmt.Fprintf(b, "Cart: %d item(s), total %s\n", a.cartMgr.TotalItems(), a.cartMgr.TotalAmount().StringFixed(2))
	} else {
		fmt.Fprintln(b, "Not signed in")
	}
	fmt.Fprintln(b, "")

	for i, item := range a.menuItems() {
		marker := " "
		if i == a.cursor {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s\n", marker, item)
	}
	fmt.Fprintln(b, "\nControls: up/down move, enter select, q quit")
}

// viewForm renders the active form. fieldKeys maps each label to the
// normalized field-error key so backend messages land next to their input.
func (a *App) viewForm(b *strings.Builder, title string, fieldKeys map[string]string) {
	fmt.Fprintln(b, title)
	fmt.Fprintln(b, "")
	for i, f := range a.fields {
		marker := " "
		if i == a.focus {
			marker = ">"
		}
		value := f.value
		if f.masked {
			value = strings.Repeat("*", len(value))
		}
		fmt.Fprintf(b, " %s %s: %s\n", marker, f.label, value)
		if key, ok := fieldKeys[f.label]; ok {
			if msg, ok := a.fieldErrs[key]; ok {
				fmt.Fprintf(b, "     ! %s\n", msg)
			}
		}
	}
	if msg, ok := a.fieldErrs["general"]; ok {
		fmt.Fprintf(b, "\n ! %s\n", msg)
	}
	fmt.Fprintln(b, "\nControls: tab/enter next field, enter on last field submits, esc back")
}

func (a *App) viewPhones(b *strings.Builder) {
	fmt.Fprintln(b, "Phones")
	fmt.Fprintln(b, "")
	if len(a.phones) == 0 {
		fmt.Fprintln(b, " (no phones found)")
	}
	for i, p := range a.phones {
		marker := " "
		if i == a.cursor {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s %s - %s (%d in stock)\n", marker, p.BrandName, p.ModelName, p.Price.StringFixed(2), p.StockQuantity)
	}
	fmt.Fprintln(b, "\nControls: up/down move, enter add to cart, esc back")
}

func (a *App) viewAccessories(b *strings.Builder) {
	fmt.Fprintln(b, "Accessories")
	fmt.Fprintln(b, "")
	if len(a.accessories) == 0 {
		fmt.Fprintln(b, " (no accessories found)")
	}
	for i, acc := range a.accessories {
		marker := " "
		if i == a.cursor {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s - %s (%d in stock)\n", marker, acc.Name, acc.Price.StringFixed(2), acc.StockQuantity)
	}
	fmt.Fprintln(b, "\nControls: up/down move, enter add to cart, esc back")
}

func (a *App) viewCart(b *strings.Builder) {
	fmt.Fprintln(b, "Your cart")
	fmt.Fprintln(b, "")

	snapshot, loaded := a.cartMgr.Snapshot()
	if !loaded || len(snapshot.Items) == 0 {
		fmt.Fprintln(b, " (empty)")
	} else {
		for i, item := range snapshot.Items {
			marker := " "
			if i == a.cursor {
				marker = ">"
			}
			fmt.Fprintf(b, " %s %s x%d @ %s = %s\n", marker, item.ProductName, item.Quantity, item.UnitPrice.StringFixed(2), item.Subtotal.StringFixed(2))
		}
		fmt.Fprintf(b, "\n Total: %d item(s), %s\n", a.cartMgr.TotalItems(), a.cartMgr.TotalAmount().StringFixed(2))
	}
	fmt.Fprintln(b, "\nControls: +/- quantity, d remove, x clear, enter checkout, esc back")
}

func (a *App) viewPayMethod(b *strings.Builder) {
	fmt.Fprintln(b, "Payment method")
	fmt.Fprintln(b, "")
	if a.current != nil {
		fmt.Fprintf(b, " Order #%d, total %s\n\n", a.current.ID, a.current.TotalAmount.StringFixed(2))
	}
	for i, method := range paymentMethods {
		marker := " "
		if i == a.payMethodIdx {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s\n", marker, method)
	}
	fmt.Fprintln(b, "\nControls: up/down move, enter pay, esc skip for now")
}

func (a *App) viewOrders(b *strings.Builder) {
	fmt.Fprintln(b, "My orders")
	fmt.Fprintln(b, "")
	if len(a.orders) == 0 {
		fmt.Fprintln(b, " (no orders yet)")
	}
	for i, o := range a.orders {
		marker := " "
		if i == a.cursor {
			marker = ">"
		}
		fmt.Fprintf(b, " %s #%d %s - %s\n", marker, o.ID, o.Status, o.TotalAmount.StringFixed(2))
	}
	fmt.Fprintln(b, "\nControls: up/down move, enter details, esc back")
}

func (a *App) viewOrderDetail(b *strings.Builder) {
	if a.current == nil {
		fmt.Fprintln(b, "No order selected")
		return
	}
	fmt.Fprintf(b, "Order #%d (%s)\n", a.current.ID, a.current.Status)
	fmt.Fprintf(b, "Ship to: %s\n\n", a.current.ShippingAddress)
	for _, item := range a.current.Items {
		fmt.Fprintf(b, "  %s x%d @ %s\n", item.ProductName, item.Quantity, item.PriceAtPurchase.StringFixed(2))
	}
	fmt.Fprintf(b, "\n Total: %s\n", a.current.TotalAmount.StringFixed(2))
	fmt.Fprintln(b, "\nControls: c cancel order, esc back")
}
