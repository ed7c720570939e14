package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"storefront/application/ports"
	"storefront/application/store"
	"storefront/domain/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeGateway serves canned results and lets a test hold a response hostage
// to simulate out-of-order resolution.
type fakeGateway struct {
	mu          sync.Mutex
	listCalls   int
	searchCalls []string
	started     chan string
	blockQuery  string
	release     chan struct{}
	done        chan string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		started: make(chan string, 16),
		done:    make(chan string, 16),
	}
}

func tagged(id string) []*catalog.Lesson {
	l, err := catalog.NewLesson(id, "Subject "+id, "London", decimal.NewFromInt(10), 5)
	if err != nil {
		panic(err)
	}
	return []*catalog.Lesson{l}
}

func (f *fakeGateway) ListLessons(ctx context.Context) ([]*catalog.Lesson, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	f.started <- ""
	defer func() { f.done <- "" }()
	return tagged("full"), nil
}

func (f *fakeGateway) SearchLessons(ctx context.Context, query string) []*catalog.Lesson {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, query)
	block := query == f.blockQuery
	f.mu.Unlock()

	f.started <- query
	defer func() { f.done <- query }()
	if block {
		<-f.release
	}
	return tagged(query)
}

func (f *fakeGateway) SubmitOrder(ctx context.Context, order ports.Order) (*ports.OrderConfirmation, error) {
	panic("not used")
}

func (f *fakeGateway) UpdateSpaces(ctx context.Context, lessonID string, spaces int) {
	panic("not used")
}

func (f *fakeGateway) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

func catalogIDs(s *store.Store) []string {
	snap := s.Snapshot()
	ids := make([]string, len(snap.Lessons))
	for i, l := range snap.Lessons {
		ids[i] = l.ID()
	}
	return ids
}

func TestSearcher_OnlyTrailingInputFires(t *testing.T) {
	gw := newFakeGateway()
	st := store.New(zap.NewNop())
	s := New(gw, st, 20*time.Millisecond, zap.NewNop())
	defer s.Stop()

	ctx := context.Background()
	s.Input(ctx, "m")
	s.Input(ctx, "ma")
	s.Input(ctx, "mat")

	select {
	case q := <-gw.started:
		assert.Equal(t, "mat", q)
	case <-time.After(time.Second):
		t.Fatal("debounced search never fired")
	}
	<-gw.done

	assert.Equal(t, 1, gw.searchCount())
	assert.Equal(t, []string{"mat"}, catalogIDs(st))
	assert.Equal(t, "mat", st.Snapshot().SearchQuery)
}

func TestSearcher_StopCancelsPendingSearch(t *testing.T) {
	gw := newFakeGateway()
	st := store.New(zap.NewNop())
	s := New(gw, st, 20*time.Millisecond, zap.NewNop())

	s.Input(context.Background(), "math")
	s.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, gw.searchCount())
}

func TestSearcher_EmptyQueryReloadsCatalog(t *testing.T) {
	gw := newFakeGateway()
	st := store.New(zap.NewNop())
	s := New(gw, st, 5*time.Millisecond, zap.NewNop())
	defer s.Stop()

	s.Input(context.Background(), "")

	<-gw.started
	<-gw.done
	assert.Equal(t, 1, gw.listCalls)
	assert.Equal(t, 0, gw.searchCount())
	assert.Equal(t, []string{"full"}, catalogIDs(st))
}

func TestSearcher_StaleResponseCannotClobberNewerOne(t *testing.T) {
	gw := newFakeGateway()
	gw.blockQuery = "slow"
	gw.release = make(chan struct{})
	st := store.New(zap.NewNop())
	s := New(gw, st, 5*time.Millisecond, zap.NewNop())
	defer s.Stop()

	ctx := context.Background()

	// First search fires and hangs on the network
	s.Input(ctx, "slow")
	require.Equal(t, "slow", <-gw.started)

	// Second search fires and resolves immediately
	s.Input(ctx, "fast")
	require.Equal(t, "fast", <-gw.started)
	require.Equal(t, "fast", <-gw.done)
	require.Equal(t, []string{"fast"}, catalogIDs(st))

	// Now the first response arrives late; it must be discarded
	close(gw.release)
	require.Equal(t, "slow", <-gw.done)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []string{"fast"}, catalogIDs(st))
}

// A debounce callback can be delayed past the next quiet period entirely, so
// that it only executes after a newer query has already resolved. Its token
// was taken at keystroke time, so even a full run must leave the newer
// catalog in place.
func TestSearcher_DelayedCallbackCannotOutrankNewerQuery(t *testing.T) {
	gw := newFakeGateway()
	st := store.New(zap.NewNop())
	s := New(gw, st, 5*time.Millisecond, zap.NewNop())
	defer s.Stop()

	ctx := context.Background()

	// Token the earlier keystroke would have taken
	stale := st.BeginCatalogUpdate()

	s.Input(ctx, "new")
	require.Equal(t, "new", <-gw.started)
	require.Equal(t, "new", <-gw.done)
	require.Equal(t, []string{"new"}, catalogIDs(st))

	// The earlier callback finally runs, start to finish, after "new"
	s.run(ctx, "old", stale)
	require.Equal(t, "old", <-gw.started)
	require.Equal(t, "old", <-gw.done)

	assert.Equal(t, []string{"new"}, catalogIDs(st))
}
