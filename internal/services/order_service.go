package services

import (
	"fmt"

	"github.com/swaglabs/shopcheck/internal/models"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrderByReference(reference string) (*models.Order, error)
	UpdateOrderStatus(reference string, status models.OrderStatus) error
}

// OrderService handles order business logic
type OrderService interface {
	PlaceOrder(username string, customer models.Customer, products []models.Product) (*models.Order, error)
	GetOrderByReference(reference string) (*models.Order, error)
	CancelOrder(reference string) error
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
	}
}

// PlaceOrder creates a complete order for the given products
func (s *OrderServiceImpl) PlaceOrder(username string, customer models.Customer, products []models.Product) (*models.Order, error) {
	items := make([]models.OrderItem, len(products))
	for i, p := range products {
		items[i] = models.OrderItem{ProductID: p.ID, Name: p.Name, PriceCents: p.PriceCents}
	}

	// Create order using domain factory method
	order, err := models.NewOrder(username, customer, items)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	if err := order.Complete(); err != nil {
		return nil, err
	}

	// Persist
	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// GetOrderByReference retrieves an order by its reference
func (s *OrderServiceImpl) GetOrderByReference(reference string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// CancelOrder cancels a pending order
func (s *OrderServiceImpl) CancelOrder(reference string) error {
	order, err := s.orderRepo.GetOrderByReference(reference)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	// Use domain methods to transition state
	if err := order.Cancel(); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateOrderStatus(reference, order.Status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}
