package points

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Xausdorf/loyalty-points/internal/domain/entity"
	"github.com/Xausdorf/loyalty-points/internal/domain/repository"
)

// Result is the outcome of one earn or redeem. Customer is nil on failure.
type Result struct {
	Success  bool
	Message  string
	Customer *entity.Customer
}

type UseCase struct {
	repo   repository.CustomerRepository
	logger *slog.Logger
}

func NewUseCase(repo repository.CustomerRepository, logger *slog.Logger) *UseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UseCase{repo: repo, logger: logger}
}

// Process routes a parsed command to the matching balance operation.
func (uc *UseCase) Process(ctx context.Context, cmd entity.Command) (*Result, error) {
	switch cmd.Type {
	case entity.CommandEarn:
		return uc.Earn(ctx, cmd.CustomerID, cmd.Points)
	case entity.CommandRedeem:
		return uc.Redeem(ctx, cmd.CustomerID, cmd.Points)
	default:
		return failure(fmt.Sprintf("Error: Unknown command type: %s", cmd.Type)), nil
	}
}

func (uc *UseCase) Earn(ctx context.Context, customerID string, points int64) (*Result, error) {
	if points <= 0 {
		return invalidPoints(points), nil
	}

	customer, err := uc.findOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	balance := customer.Points()
	if err := customer.Earn(points); err != nil {
		if errors.Is(err, entity.ErrPointsOverflow) {
			return failure(fmt.Sprintf(
				"Error: Customer %s cannot earn %d points. Balance: %d, Maximum: %d",
				customerID, points, balance, int64(math.MaxInt64),
			)), nil
		}
		return nil, err
	}
	uc.save(ctx, customer)

	return &Result{
		Success: true,
		Message: fmt.Sprintf(
			"Successfully earned %d points for customer %s. New balance: %d points.",
			points, customerID, customer.Points(),
		),
		Customer: customer.Snapshot(),
	}, nil
}

func (uc *UseCase) Redeem(ctx context.Context, customerID string, points int64) (*Result, error) {
	if points <= 0 {
		return invalidPoints(points), nil
	}

	customer, err := uc.findOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	balance := customer.Points()
	if err := customer.Redeem(points); err != nil {
		if errors.Is(err, entity.ErrInsufficientPoints) {
			return failure(fmt.Sprintf(
				"Error: Customer %s has insufficient points. Balance: %d, Requested: %d",
				customerID, balance, points,
			)), nil
		}
		return nil, err
	}
	uc.save(ctx, customer)

	msg := fmt.Sprintf(
		"Successfully redeemed %d points for customer %s. New balance: %d points.",
		points, customerID, customer.Points(),
	)
	if customer.LowBalance() {
		msg += fmt.Sprintf("\nWarning: Customer %s has a low balance: %d points.", customerID, customer.Points())
	}

	return &Result{
		Success:  true,
		Message:  msg,
		Customer: customer.Snapshot(),
	}, nil
}

// Balance returns the stored balance, or 0 for a customer never seen.
func (uc *UseCase) Balance(ctx context.Context, customerID string) (int64, error) {
	customer, err := uc.repo.Find(ctx, customerID)
	if err != nil {
		return 0, fmt.Errorf("find customer %q: %w", customerID, err)
	}
	if customer == nil {
		return 0, nil
	}
	return customer.Points(), nil
}

func (uc *UseCase) Customers(ctx context.Context) ([]*entity.Customer, error) {
	customers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// findOrCreate persists a zero-balance record for an unseen id before the
// caller applies its mutation, so creation is its own store write.
func (uc *UseCase) findOrCreate(ctx context.Context, customerID string) (*entity.Customer, error) {
	customer, err := uc.repo.Find(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer %q: %w", customerID, err)
	}
	if customer != nil {
		return customer, nil
	}

	customer = entity.NewCustomer(customerID, 0)
	uc.save(ctx, customer)
	return customer, nil
}

// save is best-effort: the computed result is returned even if the write failed.
func (uc *UseCase) save(ctx context.Context, customer *entity.Customer) {
	if err := uc.repo.Save(ctx, customer); err != nil {
		uc.logger.ErrorContext(ctx, "could not save data",
			"customer_id", customer.ID(),
			"points", customer.Points(),
			"error", err,
		)
	}
}

func invalidPoints(points int64) *Result {
	return failure(fmt.Sprintf("Error: Points must be a positive number. Received: %d", points))
}

func failure(msg string) *Result {
	return &Result{Success: false, Message: msg}
}
