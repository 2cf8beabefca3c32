// Package csv adapts the engine's record-source and reporter collaborators
// to the CSV wire format: `type,client,tx,amount` in, one account row out
// per client.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mxb-1/transactions/internal/domain"
	"github.com/mxb-1/transactions/internal/usecase"
)

// Reader reads transaction records from CSV input. It implements
// usecase.RecordSource.
type Reader struct {
	csv        *csv.Reader
	line       int
	headerRead bool
}

// NewReader creates a Reader over r. The first row must be a header. Fields
// may carry surrounding whitespace and the amount column may be omitted on
// rows that do not need it.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	return &Reader{csv: cr}
}

// Next returns the next transaction record. It returns io.EOF once the
// input is drained and a *usecase.RecordError for individual rows that fail
// to parse; reading may continue past those.
func (r *Reader) Next() (*domain.Transaction, error) {
	if !r.headerRead {
		r.line++
		if _, err := r.csv.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("reading header: %w", err)
		}
		r.headerRead = true
	}

	r.line++

	row, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		// The csv reader stays positioned after the bad row, so this
		// is recoverable.
		return nil, &usecase.RecordError{Line: r.line, Err: err}
	}

	tx, err := r.parseRow(row)
	if err != nil {
		return nil, &usecase.RecordError{Line: r.line, Err: err}
	}

	return tx, nil
}

func (r *Reader) parseRow(row []string) (*domain.Transaction, error) {
	if len(row) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d", len(row))
	}

	kind, err := domain.ParseKind(strings.TrimSpace(row[0]))
	if err != nil {
		return nil, err
	}

	clientID, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid client id %q: %w", row[1], err)
	}

	txID, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id %q: %w", row[2], err)
	}

	amount := ""
	if len(row) > 3 {
		amount = strings.TrimSpace(row[3])
	}

	return domain.NewTransaction(kind, uint16(clientID), uint32(txID), amount)
}
