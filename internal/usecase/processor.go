package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/mxb-1/transactions/internal/domain"
	"github.com/mxb-1/transactions/internal/infrastructure/metrics"
)

// Processor drains a RecordSource into the ledger, applying records strictly
// in input order.
type Processor struct {
	ledger  Ledger
	logger  zerolog.Logger
	metrics *metrics.Metrics
	strict  bool
}

// NewProcessor creates a new Processor. Metrics may be nil. In strict mode
// the first malformed record or failed apply aborts the run; otherwise such
// records are logged and skipped.
func NewProcessor(ledger Ledger, logger zerolog.Logger, m *metrics.Metrics, strict bool) *Processor {
	return &Processor{
		ledger:  ledger,
		logger:  logger,
		metrics: m,
		strict:  strict,
	}
}

// RunResult summarizes one processing run.
type RunResult struct {
	RunID    string
	Applied  int
	Rejected int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// Run processes records from source until it is drained. Each run gets a
// ULID correlation ID carried on every log event. The returned RunResult
// covers the records handled up to the point of return, even on error.
func (p *Processor) Run(ctx context.Context, source RecordSource) (*RunResult, error) {
	result := &RunResult{RunID: ulid.Make().String()}
	logger := p.logger.With().Str("run_id", result.RunID).Logger()
	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		tx, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var recordErr *RecordError
		if errors.As(err, &recordErr) {
			result.Skipped++
			if p.metrics != nil {
				p.metrics.RecordErrors.Inc()
			}

			if p.strict {
				return result, fmt.Errorf("run %s: %w", result.RunID, err)
			}

			logger.Warn().Err(err).Int("line", recordErr.Line).Msg("skipping malformed record")

			continue
		}

		// Any other source error means the stream itself is broken.
		if err != nil {
			return result, fmt.Errorf("run %s: record source: %w", result.RunID, err)
		}

		outcome, err := p.ledger.Apply(tx)
		if err != nil {
			result.Failed++
			if p.metrics != nil {
				p.metrics.TransactionErrors.WithLabelValues(string(tx.Kind)).Inc()
			}

			if p.strict {
				return result, fmt.Errorf("run %s: %w", result.RunID, err)
			}

			logger.Warn().Err(err).
				Str("kind", string(tx.Kind)).
				Uint32("tx_id", tx.TxID).
				Msg("skipping failed transaction")

			continue
		}

		p.recordOutcome(logger, tx, outcome, result)
	}

	p.updateAccountGauges()

	if p.metrics != nil {
		p.metrics.RunsCompleted.Inc()
		p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}

	logger.Info().
		Int("applied", result.Applied).
		Int("rejected", result.Rejected).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Dur("duration", time.Since(start)).
		Msg("run completed")

	return result, nil
}

// Report snapshots the ledger and hands the snapshot to reporter.
func (p *Processor) Report(reporter Reporter) error {
	return reporter.Report(p.ledger.Snapshot())
}

func (p *Processor) recordOutcome(logger zerolog.Logger, tx *domain.Transaction, outcome domain.Outcome, result *RunResult) {
	if outcome.Applied {
		result.Applied++
		if p.metrics != nil {
			p.metrics.TransactionsApplied.WithLabelValues(string(tx.Kind)).Inc()
			if amount, err := tx.Amount(); err == nil {
				p.metrics.TransactionAmount.WithLabelValues(string(tx.Kind)).Observe(amount.InexactFloat64())
			}
		}

		return
	}

	result.Rejected++
	if p.metrics != nil {
		p.metrics.TransactionsRejected.WithLabelValues(string(tx.Kind), string(outcome.Reason)).Inc()
	}

	logger.Debug().
		Str("kind", string(tx.Kind)).
		Uint16("client_id", tx.ClientID).
		Uint32("tx_id", tx.TxID).
		Str("reason", string(outcome.Reason)).
		Msg("transaction dropped")
}

func (p *Processor) updateAccountGauges() {
	if p.metrics == nil {
		return
	}

	snapshots := p.ledger.Snapshot()

	locked := 0
	for _, s := range snapshots {
		if s.Locked {
			locked++
		}
	}

	p.metrics.AccountsKnown.Set(float64(len(snapshots)))
	p.metrics.AccountsLocked.Set(float64(locked))
}
