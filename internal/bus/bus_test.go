package bus

import (
	"context"
	"testing"

	"jobstash/internal/models"
)

func TestSendDispatchesToHandler(t *testing.T) {
	b := New()
	b.Handle(ActionGetJobData, func(ctx context.Context, req Request) (Response, error) {
		return Response{Job: &models.JobPosting{Title: "Engineer"}}, nil
	})

	resp, err := b.Send(context.Background(), Request{Action: ActionGetJobData})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if resp.Job == nil || resp.Job.Title != "Engineer" {
		t.Errorf("resp.Job = %+v", resp.Job)
	}
}

func TestSendUnknownAction(t *testing.T) {
	b := New()
	if _, err := b.Send(context.Background(), Request{Action: "explode"}); err == nil {
		t.Error("expected error for unregistered action")
	}
}

func TestSendCancelledContext(t *testing.T) {
	b := New()
	b.Handle(ActionSaveJob, func(ctx context.Context, req Request) (Response, error) {
		t.Error("handler must not run with a cancelled context")
		return Response{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Send(ctx, Request{Action: ActionSaveJob}); err == nil {
		t.Error("expected context error")
	}
}

func TestHandleReplacesHandler(t *testing.T) {
	b := New()
	b.Handle(ActionGetJobData, func(ctx context.Context, req Request) (Response, error) {
		return Response{Job: &models.JobPosting{Title: "old"}}, nil
	})
	b.Handle(ActionGetJobData, func(ctx context.Context, req Request) (Response, error) {
		return Response{Job: &models.JobPosting{Title: "new"}}, nil
	})

	resp, _ := b.Send(context.Background(), Request{Action: ActionGetJobData})
	if resp.Job.Title != "new" {
		t.Errorf("got %q, want the replacing handler", resp.Job.Title)
	}
}
