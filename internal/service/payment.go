package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
	"go.uber.org/zap"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var (
	ErrPaymentNotFound     = repository.ErrPaymentNotFound
	ErrPackageNotFound     = repository.ErrPackageNotFound
	ErrPaymentNotConfirmed = errors.New("payment has not been confirmed by the gateway")
)

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	FindByID(ctx context.Context, id string) (domain.Payment, error)
	MarkFailed(ctx context.Context, id, reason string) error
	Complete(ctx context.Context, id string) (domain.Payment, error)
	FindActivePackages(ctx context.Context) ([]domain.PointsPackage, error)
	FindPackageByID(ctx context.Context, id uint) (domain.PointsPackage, error)
}

type PaymentService struct {
	repo     PaymentRepository
	notifier Notifier
}

func NewPaymentService(repo PaymentRepository, notifier Notifier, stripeSecretKey string) *PaymentService {
	stripe.Key = stripeSecretKey

	return &PaymentService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *PaymentService) GetPackages(ctx context.Context) ([]domain.PointsPackage, error) {
	packages, err := s.repo.FindActivePackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActivePackages -> %w", err)
	}

	return packages, nil
}

// CreatePayment opens a Stripe PaymentIntent for the chosen package and
// records the charge as processing. The client secret is returned once and
// never stored.
func (s *PaymentService) CreatePayment(ctx context.Context, userID, packageID uint) (domain.Payment, error) {
	pkg, err := s.repo.FindPackageByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return domain.Payment{}, ErrPackageNotFound
		}

		return domain.Payment{}, fmt.Errorf("s.repo.FindPackageByID -> %w", err)
	}

	paymentID := uuid.NewString()
	price := pkg.DiscountedPrice()

	intent, err := paymentintent.New(&stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(price * 100)),
		Currency: stripe.String(pkg.Currency),
		Params: stripe.Params{
			Metadata: map[string]string{
				"payment_id": paymentID,
				"user_id":    fmt.Sprint(userID),
				"package_id": fmt.Sprint(packageID),
			},
		},
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("paymentintent.New -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Payment{
		ID:                paymentID,
		UserID:            userID,
		PointsPackageID:   packageID,
		Amount:            price,
		Currency:          pkg.Currency,
		Method:            domain.PaymentStripe,
		Status:            domain.PaymentProcessing,
		ExternalPaymentID: intent.ID,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	created.ClientSecret = intent.ClientSecret

	return created, nil
}

// ConfirmPayment verifies the charge with Stripe and credits the package's
// points through the ledger. Completion is idempotent: confirming an
// already completed payment returns it unchanged without a second posting.
func (s *PaymentService) ConfirmPayment(ctx context.Context, userID uint, paymentID string) (domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return domain.Payment{}, ErrPaymentNotFound
		}

		return domain.Payment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if payment.UserID != userID {
		return domain.Payment{}, ErrPaymentNotFound
	}
	if payment.Status == domain.PaymentCompleted {
		return payment, nil
	}

	intent, err := paymentintent.Get(payment.ExternalPaymentID, nil)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("paymentintent.Get -> %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		if mfErr := s.repo.MarkFailed(ctx, payment.ID, string(intent.Status)); mfErr != nil {
			zap.L().Error("failed to mark payment as failed",
				zap.String("payment_id", payment.ID),
				zap.Error(mfErr))
		}

		return domain.Payment{}, fmt.Errorf("%w: stripe status %q", ErrPaymentNotConfirmed, intent.Status)
	}

	completed, err := s.repo.Complete(ctx, payment.ID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.Complete -> %w", err)
	}

	pkg, err := s.repo.FindPackageByID(ctx, completed.PointsPackageID)
	if err != nil {
		zap.L().Error("failed to load package for notification",
			zap.String("payment_id", completed.ID),
			zap.Error(err))
	} else {
		dispatch(s.notifier, domain.Notification{
			UserID:  completed.UserID,
			Type:    domain.NotifyPointsPurchased,
			Title:   "Points purchased",
			Message: fmt.Sprintf("%d points were added to your balance.", pkg.Points),
		})
	}

	return completed, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, userID uint, paymentID string) (domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return domain.Payment{}, ErrPaymentNotFound
		}

		return domain.Payment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if payment.UserID != userID {
		return domain.Payment{}, ErrPaymentNotFound
	}

	return payment, nil
}
