// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend_test

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"
	"testing"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/ratings"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/algorithms"
)

type fixture struct {
	engine  *recommend.Engine
	catalog *catalog.Store
	index   *algorithms.ContentIndex
	ratings *ratings.Store
}

func newFixture(t *testing.T, books []catalog.Book, cfg recommend.Config, listener recommend.RatingListener) *fixture {
	t.Helper()

	store, err := catalog.NewStore(books)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	logger := logging.NewTestLogger(io.Discard)
	idx := algorithms.NewContentIndex(algorithms.ContentIndexConfig{MaxVocabulary: cfg.MaxVocabulary, Workers: 2}, logger)
	if err := idx.Build(context.Background(), store.All()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	rs := ratings.NewStore()

	engine, err := recommend.NewEngine(cfg, recommend.Dependencies{
		Catalog:  store,
		Index:    idx,
		Peers:    algorithms.NewUserSimilarity(rs),
		Ratings:  rs,
		Listener: listener,
	}, logger)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return &fixture{engine: engine, catalog: store, index: idx, ratings: rs}
}

func sampleFixture(t *testing.T) *fixture {
	t.Helper()
	books, err := catalog.SampleBooks()
	if err != nil {
		t.Fatalf("SampleBooks() error = %v", err)
	}
	return newFixture(t, books, recommend.DefaultConfig(), nil)
}

func (f *fixture) rate(t *testing.T, userID string, values map[int]float64, order ...int) {
	t.Helper()
	for _, id := range order {
		if err := f.engine.AddRating(context.Background(), userID, id, values[id]); err != nil {
			t.Fatalf("AddRating(%s, %d) error = %v", userID, id, err)
		}
	}
}

// seedDemo loads the three demo users.
func (f *fixture) seedDemo(t *testing.T) {
	t.Helper()
	f.rate(t, "user1", map[int]float64{1: 5.0, 2: 4.0, 6: 5.0, 7: 4.5, 10: 4.0}, 1, 2, 6, 7, 10)
	f.rate(t, "user2", map[int]float64{2: 5.0, 4: 4.5, 5: 4.0, 8: 3.5, 16: 4.0}, 2, 4, 5, 8, 16)
	f.rate(t, "user3", map[int]float64{3: 4.0, 6: 5.0, 7: 5.0, 12: 3.5, 19: 4.5}, 3, 6, 7, 12, 19)
}

func ids(books []catalog.Book) []int {
	out := make([]int, len(books))
	for i := range books {
		out[i] = books[i].ID
	}
	return out
}

func assertUnique(t *testing.T, got []int) {
	t.Helper()
	seen := map[int]bool{}
	for _, id := range got {
		if seen[id] {
			t.Errorf("duplicate id %d in %v", id, got)
		}
		seen[id] = true
	}
}

func TestNewEngineValidation(t *testing.T) {
	t.Parallel()

	store, err := catalog.NewStore(nil)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	rs := ratings.NewStore()
	idx := algorithms.NewContentIndex(algorithms.ContentIndexConfig{}, logging.NewTestLogger(io.Discard))
	full := recommend.Dependencies{Catalog: store, Index: idx, Peers: algorithms.NewUserSimilarity(rs), Ratings: rs}

	badConfig := recommend.DefaultConfig()
	badConfig.MinCommonItems = 0

	tests := []struct {
		name string
		cfg  recommend.Config
		deps func() recommend.Dependencies
	}{
		{"invalid config", badConfig, func() recommend.Dependencies { return full }},
		{"missing catalog", recommend.DefaultConfig(), func() recommend.Dependencies { d := full; d.Catalog = nil; return d }},
		{"missing index", recommend.DefaultConfig(), func() recommend.Dependencies { d := full; d.Index = nil; return d }},
		{"missing peers", recommend.DefaultConfig(), func() recommend.Dependencies { d := full; d.Peers = nil; return d }},
		{"missing ratings", recommend.DefaultConfig(), func() recommend.Dependencies { d := full; d.Ratings = nil; return d }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := recommend.NewEngine(tt.cfg, tt.deps(), logging.NewTestLogger(io.Discard)); err == nil {
				t.Error("NewEngine() should fail")
			}
		})
	}
}

func TestAddRatingRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	f := sampleFixture(t)
	err := f.engine.AddRating(context.Background(), "u9", 1, 6.0)
	if !errors.Is(err, ratings.ErrInvalidRating) {
		t.Fatalf("AddRating(u9, 1, 6.0) error = %v, want ErrInvalidRating", err)
	}
	var verr *ratings.ValidationError
	if !errors.As(err, &verr) || verr.Field != "rating" {
		t.Errorf("error = %#v, want *ValidationError on rating", err)
	}
	if f.ratings.HasRatings("u9") || len(f.ratings.Users()) != 0 {
		t.Error("rejected rating must not create state for u9")
	}
}

type recordingListener struct {
	mu     sync.Mutex
	events []string
}

func (l *recordingListener) RatingAdded(_ context.Context, userID string, _ int, _ float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, userID)
}

func TestAddRatingNotifiesListener(t *testing.T) {
	t.Parallel()

	books, _ := catalog.SampleBooks()
	listener := &recordingListener{}
	f := newFixture(t, books, recommend.DefaultConfig(), listener)

	ctx := context.Background()
	if err := f.engine.AddRating(ctx, "alice", 1, 4.0); err != nil {
		t.Fatalf("AddRating() error = %v", err)
	}
	_ = f.engine.AddRating(ctx, "bob", 1, 0.5)
	_ = f.engine.AddRating(ctx, "  ", 1, 3.0)

	if !reflect.DeepEqual(listener.events, []string{"alice"}) {
		t.Errorf("listener events = %v, want [alice]", listener.events)
	}
}

func TestContentBased(t *testing.T) {
	t.Parallel()

	f := sampleFixture(t)
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		if got := f.engine.ContentBased(ctx, 999, 5); got == nil || len(got) != 0 {
			t.Errorf("ContentBased(999, 5) = %v, want empty", got)
		}
	})

	t.Run("non-positive k", func(t *testing.T) {
		if got := f.engine.ContentBased(ctx, 4, 0); len(got) != 0 {
			t.Errorf("ContentBased(4, 0) = %v, want empty", ids(got))
		}
	})

	t.Run("excludes self and follows index order", func(t *testing.T) {
		got := ids(f.engine.ContentBased(ctx, 4, 5))
		if len(got) != 5 {
			t.Fatalf("ContentBased(4, 5) returned %d books", len(got))
		}
		var want []int
		for _, s := range f.index.TopSimilar(4, 5) {
			want = append(want, s.ID)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ContentBased(4, 5) = %v, want %v", got, want)
		}
		for _, id := range got {
			if id == 4 {
				t.Error("result contains the query book")
			}
		}
		if got[0] != 5 {
			t.Errorf("Dune's closest book = %d, want 5", got[0])
		}
	})

	t.Run("k larger than catalog", func(t *testing.T) {
		got := ids(f.engine.ContentBased(ctx, 1, 50))
		if len(got) != f.catalog.Len()-1 {
			t.Errorf("got %d books, want %d", len(got), f.catalog.Len()-1)
		}
		assertUnique(t, got)
	})
}

func TestCollaborative(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	books, _ := catalog.SampleBooks()

	t.Run("positively correlated peer surfaces unseen item", func(t *testing.T) {
		f := newFixture(t, books[:5], recommend.DefaultConfig(), nil)
		f.rate(t, "u1", map[int]float64{1: 5.0, 2: 4.0}, 1, 2)
		f.rate(t, "u2", map[int]float64{1: 5.0, 2: 4.5, 3: 4.0}, 1, 2, 3)

		if got := ids(f.engine.Collaborative(ctx, "u1", 3)); !reflect.DeepEqual(got, []int{3}) {
			t.Errorf("Collaborative(u1, 3) = %v, want [3]", got)
		}
	})

	t.Run("negatively correlated peer is ignored", func(t *testing.T) {
		// u1 prefers 1 over 2 and u2 the reverse: Pearson is -1.
		f := newFixture(t, books[:5], recommend.DefaultConfig(), nil)
		f.rate(t, "u1", map[int]float64{1: 5.0, 2: 4.0}, 1, 2)
		f.rate(t, "u2", map[int]float64{1: 4.5, 2: 5.0, 3: 4.0}, 1, 2, 3)

		if got := f.engine.Collaborative(ctx, "u1", 3); len(got) != 0 {
			t.Errorf("Collaborative(u1, 3) = %v, want empty", ids(got))
		}
	})

	t.Run("cold start falls back to popular", func(t *testing.T) {
		f := sampleFixture(t)
		if got := ids(f.engine.Collaborative(ctx, "nobody", 3)); !reflect.DeepEqual(got, []int{6, 4, 7}) {
			t.Errorf("Collaborative(nobody, 3) = %v, want [6 4 7]", got)
		}
	})

	t.Run("no peers yields empty without padding", func(t *testing.T) {
		f := sampleFixture(t)
		f.seedDemo(t)
		if got := f.engine.Collaborative(ctx, "user1", 5); len(got) != 0 {
			t.Errorf("Collaborative(user1, 5) = %v, want empty", ids(got))
		}
	})

	t.Run("first-seen order across peers and k cutoff", func(t *testing.T) {
		f := sampleFixture(t)
		f.rate(t, "target", map[int]float64{1: 5.0, 2: 3.0, 3: 4.0}, 1, 2, 3)
		f.rate(t, "peerA", map[int]float64{1: 5.0, 2: 2.0, 3: 4.0, 9: 4.0, 8: 3.5, 10: 5.0}, 1, 2, 3, 9, 8, 10)
		f.rate(t, "peerB", map[int]float64{1: 4.5, 2: 1.0, 10: 4.0, 11: 4.5, 999: 5.0, 12: 4.0}, 1, 2, 10, 11, 999, 12)

		got := ids(f.engine.Collaborative(ctx, "target", 10))
		if want := []int{9, 10, 11, 12}; !reflect.DeepEqual(got, want) {
			t.Errorf("Collaborative(target, 10) = %v, want %v", got, want)
		}
		if got := ids(f.engine.Collaborative(ctx, "target", 2)); !reflect.DeepEqual(got, []int{9, 10}) {
			t.Errorf("Collaborative(target, 2) = %v, want [9 10]", got)
		}
	})

	t.Run("never returns already rated items", func(t *testing.T) {
		f := sampleFixture(t)
		f.seedDemo(t)
		f.rate(t, "user4", map[int]float64{6: 5.0, 7: 4.0, 3: 4.5, 1: 5.0}, 6, 7, 3, 1)

		rated := map[int]bool{}
		for _, r := range f.ratings.RatingsOf("user4") {
			rated[r.ItemID] = true
		}
		got := ids(f.engine.Collaborative(ctx, "user4", 20))
		if len(got) == 0 {
			t.Fatal("expected candidates from correlated demo users")
		}
		for _, id := range got {
			if rated[id] {
				t.Errorf("recommended already rated book %d", id)
			}
		}
		assertUnique(t, got)
	})
}

func TestCollaborativeSeesNewRatings(t *testing.T) {
	t.Parallel()

	books, _ := catalog.SampleBooks()
	f := newFixture(t, books[:5], recommend.DefaultConfig(), nil)
	ctx := context.Background()

	f.rate(t, "u1", map[int]float64{1: 5.0, 2: 4.0}, 1, 2)
	f.rate(t, "u2", map[int]float64{1: 5.0, 2: 4.5, 3: 4.0}, 1, 2, 3)

	if got := ids(f.engine.Collaborative(ctx, "u1", 3)); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("Collaborative(u1, 3) = %v, want [3]", got)
	}

	// The cached result must not survive a write.
	f.rate(t, "u2", map[int]float64{4: 5.0}, 4)
	if got := ids(f.engine.Collaborative(ctx, "u1", 3)); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("after new rating Collaborative(u1, 3) = %v, want [3 4]", got)
	}
}

func TestHybrid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	intp := func(v int) *int { return &v }

	t.Run("no inputs is the popularity list", func(t *testing.T) {
		f := sampleFixture(t)
		got := ids(f.engine.Hybrid(ctx, recommend.HybridRequest{K: 5}))
		if want := []int{6, 4, 7, 18, 19}; !reflect.DeepEqual(got, want) {
			t.Errorf("Hybrid(nil, nil, 5) = %v, want %v", got, want)
		}
	})

	t.Run("non-positive k", func(t *testing.T) {
		f := sampleFixture(t)
		if got := f.engine.Hybrid(ctx, recommend.HybridRequest{UserID: "user1", ItemID: intp(4), K: 0}); len(got) != 0 {
			t.Errorf("Hybrid(k=0) = %v, want empty", ids(got))
		}
	})

	t.Run("content first then top up", func(t *testing.T) {
		f := sampleFixture(t)
		got := ids(f.engine.Hybrid(ctx, recommend.HybridRequest{ItemID: intp(4), K: 6}))
		if len(got) != 6 {
			t.Fatalf("Hybrid returned %d books, want 6", len(got))
		}
		content := ids(f.engine.ContentBased(ctx, 4, 3))
		if !reflect.DeepEqual(got[:3], content) {
			t.Errorf("first half = %v, want content results %v", got[:3], content)
		}
		assertUnique(t, got)

		// The rest comes from the popularity list in order.
		present := map[int]bool{}
		for _, id := range content {
			present[id] = true
		}
		var want []int
		for _, b := range f.catalog.Popular(f.catalog.Len()) {
			if !present[b.ID] && len(want) < 3 {
				want = append(want, b.ID)
			}
		}
		if !reflect.DeepEqual(got[3:], want) {
			t.Errorf("top up = %v, want %v", got[3:], want)
		}
	})

	t.Run("user and item with overlap", func(t *testing.T) {
		f := sampleFixture(t)
		f.seedDemo(t)
		f.rate(t, "user4", map[int]float64{6: 5.0, 7: 4.0, 3: 4.5, 1: 5.0}, 6, 7, 3, 1)

		for k := 1; k <= 12; k++ {
			got := ids(f.engine.Hybrid(ctx, recommend.HybridRequest{UserID: "user4", ItemID: intp(6), K: k}))
			if len(got) != k {
				t.Errorf("k=%d: got %d books", k, len(got))
			}
			assertUnique(t, got)
		}
	})

	t.Run("unknown user and item still fill k", func(t *testing.T) {
		f := sampleFixture(t)
		got := ids(f.engine.Hybrid(ctx, recommend.HybridRequest{UserID: "ghost", ItemID: intp(999), K: 4}))
		// ghost is cold: collaborative half is Popular(2), then top up.
		if want := []int{6, 4, 7, 18}; !reflect.DeepEqual(got, want) {
			t.Errorf("Hybrid(ghost, 999, 4) = %v, want %v", got, want)
		}
	})

	t.Run("k beyond catalog size", func(t *testing.T) {
		f := sampleFixture(t)
		got := ids(f.engine.Hybrid(ctx, recommend.HybridRequest{ItemID: intp(1), K: 50}))
		if len(got) != f.catalog.Len() {
			t.Errorf("got %d books, want the whole catalog (%d)", len(got), f.catalog.Len())
		}
		assertUnique(t, got)
	})
}

func TestPopularAndMaxK(t *testing.T) {
	t.Parallel()

	books, _ := catalog.SampleBooks()
	cfg := recommend.DefaultConfig()
	cfg.Limits.MaxK = 5
	f := newFixture(t, books, cfg, nil)
	ctx := context.Background()

	if got := f.engine.Popular(ctx, 0); len(got) != 0 {
		t.Errorf("Popular(0) = %v, want empty", ids(got))
	}
	if got := ids(f.engine.Popular(ctx, 10)); !reflect.DeepEqual(got, []int{6, 4, 7, 18, 19}) {
		t.Errorf("Popular(10) with MaxK=5 = %v", got)
	}
	if got := f.engine.ContentBased(ctx, 1, 10); len(got) != 5 {
		t.Errorf("ContentBased capped at %d, want 5", len(got))
	}
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	item := 6

	run := func() [][]int {
		f := sampleFixture(t)
		f.seedDemo(t)
		f.rate(t, "user4", map[int]float64{6: 5.0, 7: 4.0, 3: 4.5, 1: 5.0}, 6, 7, 3, 1)
		return [][]int{
			ids(f.engine.ContentBased(ctx, 6, 5)),
			ids(f.engine.Collaborative(ctx, "user4", 5)),
			ids(f.engine.Hybrid(ctx, recommend.HybridRequest{UserID: "user4", ItemID: &item, K: 7})),
		}
	}

	first := run()
	for i := 0; i < 3; i++ {
		if again := run(); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d = %v, want %v", i, again, first)
		}
	}
}

func TestEngineConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := sampleFixture(t)
	f.seedDemo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 1; i <= 20; i++ {
				_ = f.engine.AddRating(ctx, "writer", i, float64(1+(i+w)%5))
			}
		}(w)
		go func() {
			defer wg.Done()
			item := 3
			for i := 0; i < 20; i++ {
				got := ids(f.engine.Hybrid(ctx, recommend.HybridRequest{UserID: "writer", ItemID: &item, K: 5}))
				if len(got) != 5 {
					t.Errorf("Hybrid returned %d books", len(got))
				}
			}
		}()
	}
	wg.Wait()

	if n := len(f.ratings.RatingsOf("writer")); n != 20 {
		t.Errorf("writer has %d ratings, want 20", n)
	}
}
