package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type recordingSink struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	fail   bool
	block  chan struct{}
}

func (s *recordingSink) Send(_ context.Context, e domain.ActivityEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	if s.fail {
		return errors.New("broker unavailable")
	}
	return nil
}

func (s *recordingSink) snapshot() []domain.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActivityEvent(nil), s.events...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(4, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	const perUser = 50
	users := []string{"alice", "bob", "carol"}
	for i := 0; i < perUser; i++ {
		for _, u := range users {
			d.Publish(ctx, domain.ActivityEvent{ID: fmt.Sprintf("%s-%d", u, i), UserID: u})
		}
	}

	waitFor(t, func() bool { return len(sink.snapshot()) == perUser*len(users) })
	cancel()
	d.Wait()

	next := map[string]int{}
	for _, e := range sink.snapshot() {
		want := fmt.Sprintf("%s-%d", e.UserID, next[e.UserID])
		if e.ID != want {
			t.Fatalf("out of order for %s: got %s, want %s", e.UserID, e.ID, want)
		}
		next[e.UserID]++
	}
}

func TestDispatcher_SinkFailureDoesNotStopWorker(t *testing.T) {
	sink := &recordingSink{fail: true}
	d := NewDispatcher(1, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(ctx, domain.ActivityEvent{ID: "a", UserID: "u"})
	d.Publish(ctx, domain.ActivityEvent{ID: "b", UserID: "u"})

	waitFor(t, func() bool { return len(sink.snapshot()) == 2 })
}

func TestDispatcher_PublishNeverBlocks(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(1, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Publish(ctx, domain.ActivityEvent{ID: fmt.Sprint(i), UserID: "u"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}

	close(sink.block)
	cancel()
	d.Wait()

	if got := len(sink.snapshot()); got > channelBuffer+1 {
		t.Errorf("delivered %d events, want at most %d", got, channelBuffer+1)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingSink{}, zerolog.Nop())
	for _, u := range []string{"", "u1", "65f0c0ffee"} {
		first := d.shardIndex(u)
		if first < 0 || first >= 8 {
			t.Fatalf("shard %d out of range for %q", first, u)
		}
		if again := d.shardIndex(u); again != first {
			t.Errorf("shardIndex(%q) = %d then %d", u, first, again)
		}
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingSink{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}

// liveContextSink fails deliveries made on a cancelled context.
type liveContextSink struct {
	recordingSink
}

func (s *liveContextSink) Send(ctx context.Context, e domain.ActivityEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.recordingSink.Send(ctx, e)
}

func TestDispatcher_DrainsBufferOnShutdown(t *testing.T) {
	sink := &liveContextSink{}
	d := NewDispatcher(2, sink, zerolog.Nop())

	for i := 0; i < 20; i++ {
		d.Publish(context.Background(), domain.ActivityEvent{ID: fmt.Sprint(i), UserID: fmt.Sprintf("u%d", i%3)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := len(sink.snapshot()); got != 20 {
		t.Fatalf("delivered %d events after shutdown, want 20", got)
	}
	for i, ch := range d.workers {
		if len(ch) != 0 {
			t.Errorf("worker %d left %d events buffered", i, len(ch))
		}
	}
}
