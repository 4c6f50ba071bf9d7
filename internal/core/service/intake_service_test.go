package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clientportal/intake-gateway/internal/core/domain"
	"github.com/clientportal/intake-gateway/internal/core/ports"
	"github.com/clientportal/intake-gateway/internal/core/validate"
)

type stubSubmissionGateway struct {
	submitFn func(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error)
}

func (s *stubSubmissionGateway) Submit(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error) {
	return s.submitFn(ctx, draft)
}

func validInput() ports.SubmitInput {
	return ports.SubmitInput{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "+1-555-123-4567",
	}
}

func TestIntakeSubmit_Accepted(t *testing.T) {
	stub := &stubSubmissionGateway{
		submitFn: func(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error) {
			return &domain.SubmissionRecord{ID: "rec-1", Email: draft.Email}, nil
		},
	}
	svc := NewIntakeService(stub, validate.New(), zerolog.Nop())

	record, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if record.ID != "rec-1" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestIntakeSubmit_CanonicalisesBeforeSend(t *testing.T) {
	var sent domain.SubmissionDraft
	stub := &stubSubmissionGateway{
		submitFn: func(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error) {
			sent = draft
			return &domain.SubmissionRecord{ID: "rec-1"}, nil
		},
	}
	svc := NewIntakeService(stub, validate.New(), zerolog.Nop())

	_, err := svc.Submit(context.Background(), ports.SubmitInput{
		FullName:    "  Jane Doe  ",
		Email:       " Jane@Example.COM ",
		PhoneNumber: "(555) 123-4567",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if sent.FullName != "Jane Doe" {
		t.Fatalf("full name not trimmed: %q", sent.FullName)
	}
	if sent.Email != "jane@example.com" {
		t.Fatalf("email not lowercased: %q", sent.Email)
	}
	if sent.PhoneNumber != "+1-555-123-4567" {
		t.Fatalf("phone not canonical: %q", sent.PhoneNumber)
	}
}

func TestIntakeSubmit_ValidationFailureNeverReachesWire(t *testing.T) {
	stub := &stubSubmissionGateway{
		submitFn: func(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error) {
			t.Fatalf("gateway must not be called for an invalid draft")
			return nil, nil
		},
	}
	svc := NewIntakeService(stub, validate.New(), zerolog.Nop())

	_, err := svc.Submit(context.Background(), ports.SubmitInput{
		FullName:    "A",
		Email:       "bad",
		PhoneNumber: "123",
	})

	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if len(fieldErrs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", fieldErrs)
	}
}

func TestIntakeSubmit_DuplicatePassesThrough(t *testing.T) {
	stub := &stubSubmissionGateway{
		submitFn: func(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	svc := NewIntakeService(stub, validate.New(), zerolog.Nop())

	_, err := svc.Submit(context.Background(), validInput())
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestIntakeSubmit_SecondConcurrentAttemptRefused(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var enteredOnce sync.Once
	stub := &stubSubmissionGateway{
		submitFn: func(ctx context.Context, draft domain.SubmissionDraft) (*domain.SubmissionRecord, error) {
			enteredOnce.Do(func() { close(entered) })
			<-release
			return &domain.SubmissionRecord{ID: "rec-1"}, nil
		},
	}
	svc := NewIntakeService(stub, validate.New(), zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), validInput())
		done <- err
	}()
	<-entered

	if _, err := svc.Submit(context.Background(), validInput()); !errors.Is(err, domain.ErrActionInFlight) {
		t.Fatalf("expected ErrActionInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Guard is cleared once the first call finishes.
	if _, err := svc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("submit after release: %v", err)
	}
}
