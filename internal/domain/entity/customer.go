package entity

import (
	"errors"
	"math"
)

var (
	ErrNonPositivePoints  = errors.New("points must be positive")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrPointsOverflow     = errors.New("balance would exceed maximum points")
)

// LowBalanceThreshold is the balance below which a redeem carries a warning.
const LowBalanceThreshold = 10

type Customer struct {
	id     string
	points int64
}

func NewCustomer(id string, points int64) *Customer {
	return &Customer{
		id:     id,
		points: points,
	}
}

func (c *Customer) ID() string {
	return c.id
}

func (c *Customer) Points() int64 {
	return c.points
}

func (c *Customer) LowBalance() bool {
	return c.points < LowBalanceThreshold
}

func (c *Customer) Earn(points int64) error {
	if points <= 0 {
		return ErrNonPositivePoints
	}
	if points > math.MaxInt64-c.points {
		return ErrPointsOverflow
	}
	c.points += points
	return nil
}

func (c *Customer) Redeem(points int64) error {
	if points <= 0 {
		return ErrNonPositivePoints
	}
	if c.points < points {
		return ErrInsufficientPoints
	}
	c.points -= points
	return nil
}

// Snapshot returns a detached copy of the record.
func (c *Customer) Snapshot() *Customer {
	cp := *c
	return &cp
}
