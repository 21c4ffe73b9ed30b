package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/core/ports"
)

type CustomerService struct {
	users  ports.UserRepository
	orders ports.OrderRepository
	logger zerolog.Logger
}

func NewCustomerService(users ports.UserRepository, orders ports.OrderRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{users: users, orders: orders, logger: logger}
}

// ListCustomers returns every non-admin account with its order stats.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*ports.CustomerSummary, error) {
	users, err := s.users.ListCustomers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list customers")
		return nil, err
	}

	summaries := make([]*ports.CustomerSummary, 0, len(users))
	for _, user := range users {
		stats, err := s.orders.StatsByUser(ctx, user.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to aggregate order stats")
			stats = &ports.CustomerStats{}
		}
		summaries = append(summaries, &ports.CustomerSummary{
			User:        user,
			TotalOrders: stats.TotalOrders,
			TotalSpent:  stats.TotalSpent,
		})
	}
	return summaries, nil
}

// GetCustomer returns one account with its order stats.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*ports.CustomerSummary, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.orders.StatsByUser(ctx, user.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to aggregate order stats")
		stats = &ports.CustomerStats{}
	}

	return &ports.CustomerSummary{
		User:        user,
		TotalOrders: stats.TotalOrders,
		TotalSpent:  stats.TotalSpent,
	}, nil
}
