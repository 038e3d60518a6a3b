package models

import (
	"errors"
	"time"
)

const (
	OrderAwaitingApprovals = "awaiting_approvals"
	OrderCompleted         = "completed"

	ItemPendingApproval = "pending_approval"
	ItemApproved        = "approved"
	ItemRejected        = "rejected"
)

type Order struct {
	ID              int64           `json:"id"`
	Status          string          `json:"status"`
	TotalPriceCents int64           `json:"total_price_cents"`
	CreatedAt       time.Time       `json:"created_at"`
	OrderLineItems  []OrderLineItem `json:"order_line_items"`
}

func (o *Order) Validate() error {
	if o.ID == 0 {
		return errors.New("order: missing id")
	}
	for i := range o.OrderLineItems {
		if err := o.OrderLineItems[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ReadyToPay reports whether every line item was approved by its academy
// while the order still waits for payment.
func (o *Order) ReadyToPay() bool {
	if o.Status != OrderAwaitingApprovals {
		return false
	}
	for _, item := range o.OrderLineItems {
		if item.Status != ItemApproved {
			return false
		}
	}
	return true
}

type OrderLineItem struct {
	ID                   int64  `json:"id"`
	OrderID              int64  `json:"order_id"`
	PassID               int64  `json:"pass_id"`
	Quantity             int    `json:"quantity"`
	PriceAtPurchaseCents int64  `json:"price_at_purchase_cents"`
	Status               string `json:"status"`
}

func (i *OrderLineItem) Validate() error {
	if i.ID == 0 {
		return errors.New("order line item: missing id")
	}
	return nil
}
