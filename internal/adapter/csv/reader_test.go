package csv

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mxb-1/transactions/internal/domain"
	"github.com/mxb-1/transactions/internal/usecase"
)

func TestReader_Next(t *testing.T) {
	input := strings.Join([]string{
		"type, client, tx, amount",
		"deposit, 1, 1, 1.0",
		"deposit, 2, 2, 2.0",
		"withdrawal, 1, 3, 0.1234",
		"dispute, 1, 1,",
		"resolve, 1, 1,",
		"chargeback,2,2",
	}, "\n")

	expected := []struct {
		kind     domain.Kind
		clientID uint16
		txID     uint32
		amount   string
	}{
		{domain.KindDeposit, 1, 1, "1"},
		{domain.KindDeposit, 2, 2, "2"},
		{domain.KindWithdrawal, 1, 3, "0.1234"},
		{domain.KindDispute, 1, 1, ""},
		{domain.KindResolve, 1, 1, ""},
		{domain.KindChargeback, 2, 2, ""},
	}

	reader := NewReader(strings.NewReader(input))

	for i, want := range expected {
		tx, err := reader.Next()
		if err != nil {
			t.Fatalf("record %d: unexpected error: %v", i, err)
		}

		if tx.Kind != want.kind || tx.ClientID != want.clientID || tx.TxID != want.txID {
			t.Errorf("record %d: got %+v, want %+v", i, tx, want)
		}

		if want.amount != "" {
			amount, err := tx.Amount()
			if err != nil {
				t.Fatalf("record %d: unexpected amount error: %v", i, err)
			}
			if amount.String() != want.amount {
				t.Errorf("record %d: expected amount %s, got %s", i, want.amount, amount)
			}
		} else if _, err := tx.Amount(); !errors.Is(err, domain.ErrMissingAmount) {
			t.Errorf("record %d: expected no amount, got err %v", i, err)
		}
	}

	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after last record, got %v", err)
	}

	// EOF must be sticky.
	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on repeated read, got %v", err)
	}
}

func TestReader_MalformedRecords(t *testing.T) {
	input := strings.Join([]string{
		"type,client,tx,amount",
		"transfer,1,1,1.0",
		"deposit,notanumber,2,1.0",
		"deposit,1,99999999999,1.0",
		"deposit,1,3,",
		"deposit,1,4,abc",
		"deposit",
		"deposit,1,5,2.0",
	}, "\n")

	reader := NewReader(strings.NewReader(input))

	wantErrs := []struct {
		line int
		err  error
	}{
		{2, domain.ErrUnknownKind},
		{3, nil},
		{4, nil},
		{5, domain.ErrMissingAmount},
		{6, domain.ErrInvalidAmount},
		{7, nil},
	}

	for i, want := range wantErrs {
		_, err := reader.Next()

		var recordErr *usecase.RecordError
		if !errors.As(err, &recordErr) {
			t.Fatalf("record %d: expected RecordError, got %v", i, err)
		}

		if recordErr.Line != want.line {
			t.Errorf("record %d: expected line %d, got %d", i, want.line, recordErr.Line)
		}

		if want.err != nil && !errors.Is(err, want.err) {
			t.Errorf("record %d: expected %v, got %v", i, want.err, err)
		}
	}

	// A malformed record must not stop the stream.
	tx, err := reader.Next()
	if err != nil {
		t.Fatalf("expected final good record, got %v", err)
	}

	if tx.Kind != domain.KindDeposit || tx.TxID != 5 {
		t.Errorf("unexpected final record: %+v", tx)
	}

	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReader_EmptyInput(t *testing.T) {
	reader := NewReader(strings.NewReader(""))

	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF for empty input, got %v", err)
	}
}

func TestReader_HeaderOnly(t *testing.T) {
	reader := NewReader(strings.NewReader("type,client,tx,amount\n"))

	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF for header-only input, got %v", err)
	}
}
