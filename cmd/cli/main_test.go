package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintReport(t *testing.T) {
	rows := []accountRow{
		{ClientID: 1, Available: "1.5000", Held: "0.0000", Total: "1.5000", Locked: false},
		{ClientID: 2, Available: "0.0000", Held: "0.0000", Total: "0.0000", Locked: true},
	}

	out := captureOutput(t, func() {
		printReport(rows)
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}

	if lines[0] != "client,available,held,total,locked" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	if lines[1] != "1,1.5000,0.0000,1.5000,false" {
		t.Errorf("unexpected first row: %q", lines[1])
	}

	if lines[2] != "2,0.0000,0.0000,0.0000,true" {
		t.Errorf("unexpected second row: %q", lines[2])
	}
}

func TestPrintReportEmpty(t *testing.T) {
	out := captureOutput(t, func() {
		printReport(nil)
	})

	if strings.TrimSpace(out) != "client,available,held,total,locked" {
		t.Errorf("expected header only, got %q", out)
	}
}
