package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/qcommerce/account-service/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *recordingRepo) Insert(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *recordingRepo) snapshot() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuthEvent(nil), r.events...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuthEvent{Email: "a@x.com", Kind: domain.EventRegistered, Timestamp: time.Now()})
	d.Record(domain.AuthEvent{Email: "b@x.com", Kind: domain.EventLoginSucceeded, Timestamp: time.Now()})

	waitFor(t, func() bool { return len(repo.snapshot()) == 2 })
}

func TestDispatcher_PerAccountOrdering(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	kinds := []domain.AuthEventKind{
		domain.EventRegistered,
		domain.EventLoginFailed,
		domain.EventLoginSucceeded,
		domain.EventLogout,
	}
	for _, k := range kinds {
		d.Record(domain.AuthEvent{Email: "same@x.com", Kind: k, Timestamp: time.Now()})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == len(kinds) })

	got := repo.snapshot()
	for i, k := range kinds {
		if got[i].Kind != k {
			t.Fatalf("events out of order: %v", got)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingRepo{}, zerolog.Nop())
	first := d.shardIndex("stable@x.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("stable@x.com") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
