// Package cli turns command-line arguments into balance operations and maps
// their outcome onto output streams and a process exit code.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Xausdorf/loyalty-points/internal/domain/entity"
	"github.com/Xausdorf/loyalty-points/internal/usecase/points"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

var ErrInvalidCommand = errors.New("invalid command format")

const Usage = `
Customer Loyalty Points System

Usage:
  loyalty earn <customerId> <points>    - Add points to customer balance
  loyalty redeem <customerId> <points>  - Redeem points from customer balance

Examples:
  loyalty earn "user123" 100
  loyalty redeem "user123" 50

Notes:
  - Customer IDs are case-sensitive strings
  - Points must be positive integers
  - Customers cannot redeem more points than they have
  - A warning is shown when balance drops below 10 points
`

// Parse accepts exactly `<earn|redeem> <customerId> <points>`. Points only
// has to be an integer here; its sign is checked by the balance operations.
func Parse(args []string) (entity.Command, error) {
	if len(args) != 3 {
		return entity.Command{}, fmt.Errorf("%w: expected 3 arguments, got %d", ErrInvalidCommand, len(args))
	}

	cmdType := entity.CommandType(args[0])
	if !cmdType.Valid() {
		return entity.Command{}, fmt.Errorf("%w: unknown command %q", ErrInvalidCommand, args[0])
	}

	customerID := strings.TrimSpace(args[1])
	if customerID == "" {
		return entity.Command{}, fmt.Errorf("%w: customer id is empty", ErrInvalidCommand)
	}

	pts, err := strconv.ParseInt(strings.TrimSpace(args[2]), 10, 64)
	if err != nil {
		return entity.Command{}, fmt.Errorf("%w: points %q is not an integer", ErrInvalidCommand, args[2])
	}

	return entity.Command{
		Type:       cmdType,
		CustomerID: customerID,
		Points:     pts,
	}, nil
}

type Processor interface {
	Process(ctx context.Context, cmd entity.Command) (*points.Result, error)
}

type Handler struct {
	uc     Processor
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func NewHandler(uc Processor, stdout, stderr io.Writer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		uc:     uc,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// Run executes one invocation and returns its exit code.
func (h *Handler) Run(ctx context.Context, args []string) int {
	cmd, err := Parse(args)
	if err != nil {
		h.logger.DebugContext(ctx, "rejected arguments", "args", args, "error", err)
		fmt.Fprintln(h.stderr, "Error: Invalid command format")
		fmt.Fprint(h.stderr, Usage)
		return ExitFailure
	}

	return h.Execute(ctx, cmd)
}

// Execute runs an already parsed command. A panic inside the use case is
// reported as an unexpected error instead of escaping.
func (h *Handler) Execute(ctx context.Context, cmd entity.Command) (code int) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "command panicked", "panic", r)
			h.unexpected(fmt.Errorf("%v", r))
			code = ExitFailure
		}
	}()

	res, err := h.uc.Process(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "command failed",
			"type", string(cmd.Type),
			"customer_id", cmd.CustomerID,
			"error", err,
		)
		h.unexpected(err)
		return ExitFailure
	}

	if !res.Success {
		fmt.Fprintln(h.stderr, res.Message)
		return ExitFailure
	}

	fmt.Fprintln(h.stdout, res.Message)
	return ExitOK
}

func (h *Handler) unexpected(err error) {
	fmt.Fprintf(h.stderr, "Error: An unexpected error occurred: %v\n", err)
}
