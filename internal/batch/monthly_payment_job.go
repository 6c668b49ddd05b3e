package batch

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/domain/loan"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// MonthlyPaymentJob debits one monthly installment from every accepted loan,
// acting as the system accountant.
type MonthlyPaymentJob struct {
	loanService loan.LoanService
	concurrency int
	logger      *slog.Logger
}

func NewMonthlyPaymentJob(loanSvc loan.LoanService, concurrency int, logger *slog.Logger) *MonthlyPaymentJob {
	if loanSvc == nil || logger == nil {
		panic("MonthlyPaymentJob dependencies cannot be nil")
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &MonthlyPaymentJob{
		loanService: loanSvc,
		concurrency: concurrency,
		logger:      logger.With("job", "MonthlyPayment"),
	}
}

func (j *MonthlyPaymentJob) Run(ctx context.Context) error {
	startTime := time.Now()
	system := user.SystemAccountant()
	j.logger.InfoContext(ctx, "Starting monthly payment job.")

	accepted := loan.StatusAccepted
	loans, err := j.loanService.ListLoans(ctx, system, &accepted)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list accepted loans, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list accepted loans: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched accepted loans.", slog.Int("count", len(loans)))

	if len(loans) == 0 {
		j.logger.InfoContext(ctx, "No accepted loans to debit.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var paidCount, completedCount, skippedCount, errorCount atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for _, l := range loans {
		loanID := l.ID
		g.Go(func() error {
			logCtx := j.logger.With(slog.Int64("loanID", loanID))
			if gctx.Err() != nil {
				skippedCount.Add(1)
				return nil
			}

			payment, payErr := j.loanService.PayOneMonthDue(gctx, system, loanID)
			switch {
			case payErr == nil:
				paidCount.Add(1)
				if payment.Status == loan.StatusCompleted {
					completedCount.Add(1)
				}
				logCtx.DebugContext(gctx, "Monthly payment applied.", slog.String("paid", payment.PaidAmount.StringFixed(2)), slog.String("amountLeft", payment.AmountLeft.StringFixed(2)))
			case errors.Is(payErr, apperrors.ErrLoanNotAcceptedOrNotOwned), errors.Is(payErr, apperrors.ErrInvalidTransition):
				skippedCount.Add(1)
				logCtx.WarnContext(gctx, "Loan changed state before it could be debited.", slog.Any("error", payErr))
			default:
				errorCount.Add(1)
				logCtx.ErrorContext(gctx, "Failed to apply monthly payment", slog.Any("error", payErr))
			}
			return nil
		})
	}
	_ = g.Wait()

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("accepted_loans", len(loans)),
		slog.Int("payments_applied", int(paidCount.Load())),
		slog.Int("loans_completed", int(completedCount.Load())),
		slog.Int("loans_skipped", int(skippedCount.Load())),
		slog.Int("errors_encountered", int(errorCount.Load())),
	)
	if n := errorCount.Load(); n > 0 {
		summaryLog.WarnContext(ctx, "Monthly payment job finished with errors.")
		return fmt.Errorf("job completed with %d errors", n)
	}
	summaryLog.InfoContext(ctx, "Monthly payment job finished successfully.")
	return nil
}
