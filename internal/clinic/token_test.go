package clinic

import (
	"context"
	"testing"
	"time"
)

func TestIssueTokenSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	want := []string{"TK001", "TK002", "TK003"}
	for _, w := range want {
		token, day, err := f.svc.IssueToken(ctx, "doc_a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != w {
			t.Fatalf("expected %s, got %s", w, token)
		}
		if day != "20260310" {
			t.Fatalf("expected day 20260310, got %s", day)
		}
	}
}

func TestIssueTokenPerDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if token, _ := mustToken(t, f, ctx, "doc_a"); token != "TK001" {
		t.Fatalf("expected TK001 for doc_a, got %s", token)
	}
	if token, _ := mustToken(t, f, ctx, "doc_a"); token != "TK002" {
		t.Fatalf("expected TK002 for doc_a, got %s", token)
	}
	// A different doctor starts its own sequence.
	if token, _ := mustToken(t, f, ctx, "doc_b"); token != "TK001" {
		t.Fatalf("expected TK001 for doc_b, got %s", token)
	}
}

func TestIssueTokenResetsAtMidnight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if token, day := mustToken(t, f, ctx, "doc_a"); token != "TK001" || day != "20260310" {
		t.Fatalf("expected TK001/20260310, got %s/%s", token, day)
	}

	f.now = f.now.Add(24 * time.Hour)

	token, day, err := f.svc.IssueToken(ctx, "doc_a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "TK001" || day != "20260311" {
		t.Fatalf("expected sequence restart TK001/20260311, got %s/%s", token, day)
	}
}

func mustToken(t *testing.T, f *fixture, ctx context.Context, doctorID string) (string, string) {
	t.Helper()
	token, day, err := f.svc.IssueToken(ctx, doctorID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token, day
}
