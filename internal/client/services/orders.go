package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/client/models"
)

type OrderService interface {
	List(ctx context.Context) ([]models.Order, error)
	// Pay confirms the (mock) payment of a ready order and returns the
	// refreshed order history.
	Pay(ctx context.Context, orderID int64) ([]models.Order, error)
}

type orderService struct {
	client client.Client
}

func NewOrderService(c client.Client) OrderService {
	return &orderService{client: c}
}

func (s *orderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.client.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) Pay(ctx context.Context, orderID int64) ([]models.Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range orders {
		if orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrOrderNotFound)
	}
	if !orders[idx].ReadyToPay() {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrOrderNotPayable)
	}

	if err := s.client.ConfirmOrder(ctx, orderID); err != nil {
		return nil, fmt.Errorf("confirm order %d: %w", orderID, err)
	}
	return s.List(ctx)
}
