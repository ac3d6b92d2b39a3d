package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var (
	ErrOrderNotFound         = repository.ErrOrderNotFound
	ErrSkillNotActive        = repository.ErrSkillNotActive
	ErrInsufficientBalance   = repository.ErrInsufficientBalance
	ErrInvalidTransition     = domain.ErrInvalidTransition
	ErrSelfOrder             = domain.ErrSelfOrder
	ErrNotOrderParticipant   = errors.New("user is not a participant of this order")
	ErrActionNotAllowedForActor = errors.New("action not allowed for this actor")
)

type OrderRepository interface {
	CreateWithEscrow(ctx context.Context, order domain.Order) (domain.Order, error)
	Transition(ctx context.Context, orderID uint, action domain.OrderAction) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByParty(ctx context.Context, userID uint) ([]domain.Order, error)
}

type OrderSkillRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Skill, error)
}

type OrderService struct {
	repo          OrderRepository
	skillRepo     OrderSkillRepository
	notifier      Notifier
	feePercentage int
}

func NewOrderService(repo OrderRepository, skillRepo OrderSkillRepository, notifier Notifier, feePercentage int) *OrderService {
	return &OrderService{
		repo:          repo,
		skillRepo:     skillRepo,
		notifier:      notifier,
		feePercentage: feePercentage,
	}
}

// CreateOrder places a pending order for the skill and escrows the buyer's
// total (price plus the platform fee fixed at this moment). The order row
// and the escrow debit commit together; an underfunded buyer gets
// ErrInsufficientBalance and no order exists afterwards.
func (s *OrderService) CreateOrder(ctx context.Context, buyerID, skillID uint, requirements string) (domain.Order, error) {
	skill, err := s.skillRepo.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return domain.Order{}, repository.ErrSkillNotFound
		}

		return domain.Order{}, fmt.Errorf("s.skillRepo.FindByID -> %w", err)
	}
	if skill.Status != domain.SkillActive {
		return domain.Order{}, ErrSkillNotActive
	}

	order, err := domain.NewOrder(buyerID, skill, s.feePercentage, requirements)
	if err != nil {
		return domain.Order{}, err
	}

	created, err := s.repo.CreateWithEscrow(ctx, order)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientBalance),
			errors.Is(err, repository.ErrSkillNotActive),
			errors.Is(err, repository.ErrSkillNotFound),
			errors.Is(err, repository.ErrUserNotFound):
			return domain.Order{}, err
		}

		return domain.Order{}, fmt.Errorf("s.repo.CreateWithEscrow -> %w", err)
	}

	dispatch(s.notifier, domain.Notification{
		UserID:  created.SellerID,
		Type:    domain.NotifyOrderCreated,
		Title:   "New order received",
		Message: fmt.Sprintf("You received a new order for %q.", skill.Title),
		OrderID: &created.ID,
		SkillID: &created.SkillID,
	})

	return created, nil
}

// TransitionOrder applies one lifecycle action on behalf of an actor.
// Actor rules: accept and complete belong to the seller; start, cancel and
// dispute to either party. The status check itself happens under the order
// row lock, so concurrent duplicates lose with ErrInvalidTransition and
// leave the ledger untouched.
func (s *OrderService) TransitionOrder(ctx context.Context, orderID, actorID uint, action domain.OrderAction) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.Order{}, ErrOrderNotFound
		}

		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actorID != order.BuyerID && actorID != order.SellerID {
		return domain.Order{}, ErrNotOrderParticipant
	}
	switch action {
	case domain.ActionAccept, domain.ActionComplete:
		if actorID != order.SellerID {
			return domain.Order{}, ErrActionNotAllowedForActor
		}
	case domain.ActionStart, domain.ActionCancel, domain.ActionDispute:
		// Either party.
	default:
		return domain.Order{}, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidTransition, action)
	}

	updated, err := s.repo.Transition(ctx, orderID, action)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition),
			errors.Is(err, repository.ErrOrderNotFound),
			errors.Is(err, repository.ErrInsufficientBalance):
			return domain.Order{}, err
		}

		return domain.Order{}, fmt.Errorf("s.repo.Transition -> %w", err)
	}

	s.notifyTransition(updated, actorID)

	return updated, nil
}

func (s *OrderService) notifyTransition(order domain.Order, actorID uint) {
	counterpart := order.BuyerID
	if actorID == order.BuyerID {
		counterpart = order.SellerID
	}

	var (
		notifType domain.NotificationType
		title     string
	)
	switch order.Status {
	case domain.OrderAccepted:
		notifType, title = domain.NotifyOrderAccepted, "Order accepted"
	case domain.OrderCompleted:
		notifType, title = domain.NotifyOrderCompleted, "Order completed"
	case domain.OrderCancelled:
		notifType, title = domain.NotifyOrderCancelled, "Order cancelled"
	default:
		notifType, title = domain.NotifySystem, "Order updated"
	}

	dispatch(s.notifier, domain.Notification{
		UserID:  counterpart,
		Type:    notifType,
		Title:   title,
		Message: fmt.Sprintf("Order #%d is now %s.", order.ID, order.Status),
		OrderID: &order.ID,
		SkillID: &order.SkillID,
	})

	// The seller's earnings posting deserves its own ping.
	if order.Status == domain.OrderCompleted {
		dispatch(s.notifier, domain.Notification{
			UserID:  order.SellerID,
			Type:    domain.NotifyPointsEarned,
			Title:   "Points earned",
			Message: fmt.Sprintf("You earned %d points for order #%d.", order.PointsAmount, order.ID),
			OrderID: &order.ID,
		})
	}
}

func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uint) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.Order{}, ErrOrderNotFound
		}

		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if userID != order.BuyerID && userID != order.SellerID {
		return domain.Order{}, ErrNotOrderParticipant
	}

	return order, nil
}

func (s *OrderService) GetOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	orders, err := s.repo.FindByParty(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByParty -> %w", err)
	}

	return orders, nil
}
