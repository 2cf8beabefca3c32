package csv

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mxb-1/transactions/internal/domain"
)

// Writer renders an account snapshot as CSV. It implements
// usecase.Reporter.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// Report writes the header followed by one row per account, decimals
// rendered with exactly four digits after the point. Rows are written in
// snapshot order, which is unspecified.
func (w *Writer) Report(accounts []domain.AccountSnapshot) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.ClientID), 10),
			a.Available.StringFixed(4),
			a.Held.StringFixed(4),
			a.Total.StringFixed(4),
			strconv.FormatBool(a.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	w.csv.Flush()

	return w.csv.Error()
}
