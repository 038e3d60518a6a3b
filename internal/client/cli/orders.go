package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/openmat/internal/client/models"
	"github.com/dmitrijs2005/openmat/internal/client/services"
)

func (a *App) Orders(ctx context.Context) error {
	orders, err := a.svc.Orders.List(ctx)
	if err != nil {
		return err
	}
	a.printOrders(orders)
	return nil
}

func (a *App) Pay(ctx context.Context, args []string) error {
	id, err := parseID(args, "pay <order id>")
	if err != nil {
		return err
	}

	orders, err := a.svc.Orders.Pay(ctx, id)
	if errors.Is(err, services.ErrOrderNotPayable) {
		fmt.Fprintln(a.out, "This order is still waiting for academy approval.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Payment confirmed.")
	a.printOrders(orders)
	return nil
}

func (a *App) printOrders(orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "You have no orders yet.")
		return
	}
	for _, o := range orders {
		line := fmt.Sprintf("#%d  %s  %s  %s", o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, models.FormatCents(o.TotalPriceCents))
		if o.ReadyToPay() {
			line += "  ready to pay: 'pay " + fmt.Sprint(o.ID) + "'"
		}
		fmt.Fprintln(a.out, line)
		for _, it := range o.OrderLineItems {
			fmt.Fprintf(a.out, "    pass %d x%d  %s  %s\n", it.PassID, it.Quantity, models.FormatCents(it.PriceAtPurchaseCents), it.Status)
		}
	}
}
