package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pearlbistro/ordering-api/internal/domain"
	"github.com/pearlbistro/ordering-api/internal/platform/mailer"
	"github.com/pearlbistro/ordering-api/internal/repo/mongodb"
	"github.com/pearlbistro/ordering-api/pkg/events"
	"github.com/pearlbistro/ordering-api/pkg/logger"
)

type OrderService interface {
	Finalize(ctx context.Context, payment *domain.PaymentRecord) (*domain.FinalizeResult, error)
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
	OrderStats(ctx context.Context) ([]domain.CategoryStat, error)
}

type orderService struct {
	payments mongodb.PaymentRepository
	carts    mongodb.CartRepository
	menu     mongodb.MenuRepository
	users    mongodb.UserRepository
	mailer   mailer.Service
	eventBus events.Publisher
}

func NewOrderService(
	payments mongodb.PaymentRepository,
	carts mongodb.CartRepository,
	menu mongodb.MenuRepository,
	users mongodb.UserRepository,
	mailer mailer.Service,
	eventBus events.Publisher,
) OrderService {
	return &orderService{
		payments: payments,
		carts:    carts,
		menu:     menu,
		users:    users,
		mailer:   mailer,
		eventBus: eventBus,
	}
}

// Finalize runs the checkout workflow: persist the payment record, clean up
// the referenced cart entries, then notify. Persistence failure aborts the
// whole operation. Cleanup failure is tolerated; the payment is already
// durable and a stale cart entry is a display artifact, not a financial
// inconsistency. Notification never blocks or reverses the earlier steps.
func (s *orderService) Finalize(ctx context.Context, payment *domain.PaymentRecord) (*domain.FinalizeResult, error) {
	insertedID, err := s.payments.Insert(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	deleted, err := s.carts.DeleteByIDs(ctx, payment.CartIDs)
	if err != nil {
		logger.WarnContext(ctx, "Cart cleanup failed after payment was recorded",
			"error", err,
			"transaction_id", payment.TransactionID,
			"cart_ids", payment.CartIDs,
		)
		deleted = 0
	}

	go s.notify(*payment)

	return &domain.FinalizeResult{
		PaymentID:    insertedID,
		DeletedCount: deleted,
	}, nil
}

// notify runs detached from the request; its outcome is logged, never
// surfaced to the caller.
func (s *orderService) notify(payment domain.PaymentRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.mailer.SendOrderConfirmation(payment.Email, "", payment.TransactionID, payment.Amount, payment.Currency); err != nil {
		logger.Error("Failed to send order confirmation email",
			"error", err,
			"email", payment.Email,
			"transaction_id", payment.TransactionID,
		)
	}

	event := events.OrderRecordedEvent{
		TransactionID: payment.TransactionID,
		Email:         payment.Email,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		ItemCount:     len(payment.MenuItemIDs),
		RecordedAt:    payment.Date,
	}
	if err := s.eventBus.Publish(ctx, events.OrderRecorded, event); err != nil {
		logger.Error("Failed to publish order event",
			"error", err,
			"transaction_id", payment.TransactionID,
		)
	}
}

func (s *orderService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	menuCount, err := s.menu.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}

	orderCount, err := s.payments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}

	revenue, err := s.payments.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return &domain.AdminStats{
		Users:     userCount,
		MenuItems: menuCount,
		Orders:    orderCount,
		Revenue:   revenue,
	}, nil
}

// OrderStats joins historical payments against the current catalog and groups
// them per category. Items that changed category or price since the order are
// counted under their current catalog state; entries referencing removed menu
// items are skipped.
func (s *orderService) OrderStats(ctx context.Context) ([]domain.CategoryStat, error) {
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	ids := make([]string, 0)
	seen := make(map[string]bool)
	for _, p := range payments {
		for _, id := range p.MenuItemIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	items, err := s.menu.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	byID := make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID.Hex()] = item
	}

	totals := make(map[string]*domain.CategoryStat)
	for _, p := range payments {
		for _, id := range p.MenuItemIDs {
			item, ok := byID[id]
			if !ok {
				continue
			}
			stat, ok := totals[item.Category]
			if !ok {
				stat = &domain.CategoryStat{Category: item.Category}
				totals[item.Category] = stat
			}
			stat.Quantity++
			stat.Revenue += item.Price
		}
	}

	stats := make([]domain.CategoryStat, 0, len(totals))
	for _, stat := range totals {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })

	return stats, nil
}
