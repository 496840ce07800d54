package repository

import (
	"context"
	"errors"

	"github.com/Xausdorf/loyalty-points/internal/domain/entity"
)

// ErrPersist marks a write that was applied in memory but could not be made durable.
var ErrPersist = errors.New("persist customers")

// CustomerRepository is the durable record store of customer balances.
// Find returns (nil, nil) for an unknown id. Save is write-through: it
// returns only after the full record set has been flushed.
//
//go:generate mockgen -destination=../../usecase/points/mocks/repository.go -package=mocks . CustomerRepository
type CustomerRepository interface {
	Find(ctx context.Context, id string) (*entity.Customer, error)
	Save(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context) ([]*entity.Customer, error)
}
