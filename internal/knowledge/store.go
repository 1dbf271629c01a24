package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/abhisek/interviewer/internal/embedding"
	"github.com/abhisek/interviewer/internal/vectorindex"
)

// ErrEmbeddingFailure is returned by Load when any catalogue item could not
// be embedded. The store keeps its previous contents in that case.
var ErrEmbeddingFailure = errors.New("knowledge: embedding failure")

// DefaultOverfetch is the multiplier applied to k when a category filter
// is set.
const DefaultOverfetch = 3

// snapshot is an immutable loaded catalogue with its index.
type snapshot struct {
	items []Item
	index *vectorindex.Index
}

// Store serves similarity search over a catalogue. Load publishes a new
// snapshot atomically, so Search never needs a lock.
type Store struct {
	embedder  embedding.Embedder
	batch     embedding.BatchOptions
	overfetch int
	logger    *zap.Logger

	snap atomic.Pointer[snapshot]
}

// Option configures a Store.
type Option func(*Store)

// WithOverfetch sets the category over-fetch multiplier.
func WithOverfetch(m int) Option {
	return func(s *Store) {
		if m > 0 {
			s.overfetch = m
		}
	}
}

// WithBatchOptions sets the concurrency and pacing used by Load.
func WithBatchOptions(opts embedding.BatchOptions) Option {
	return func(s *Store) { s.batch = opts }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store backed by e.
func NewStore(e embedding.Embedder, opts ...Option) *Store {
	s := &Store{
		embedder:  e,
		overfetch: DefaultOverfetch,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load embeds every catalogue item in order and builds the index. Any
// embedding error aborts the whole load.
func (s *Store) Load(ctx context.Context, catalogue []Item) error {
	texts := make([]string, len(catalogue))
	for i, it := range catalogue {
		texts[i] = it.Text
	}

	vecs, err := embedding.EmbedBatch(ctx, s.embedder, texts, s.batch)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmbeddingFailure, err)
	}
	idx, err := vectorindex.Build(vecs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmbeddingFailure, err)
	}

	items := make([]Item, len(catalogue))
	copy(items, catalogue)
	s.snap.Store(&snapshot{items: items, index: idx})

	s.logger.Info("knowledge catalogue loaded",
		zap.Int("items", len(items)),
		zap.String("model", s.embedder.ModelID()),
		zap.Int("dim", idx.Dim()))
	return nil
}

// Loaded reports whether a catalogue has been loaded.
func (s *Store) Loaded() bool {
	return s.snap.Load() != nil
}

// Items returns a copy of the loaded catalogue.
func (s *Store) Items() []Item {
	snap := s.snap.Load()
	if snap == nil {
		return nil
	}
	out := make([]Item, len(snap.items))
	copy(out, snap.items)
	return out
}

// Search returns up to k items nearest to query, nearest first. An empty
// category disables filtering. Search degrades to an empty result instead
// of failing: the store only supplies supplementary grounding.
func (s *Store) Search(ctx context.Context, query string, category Category, k int) []Item {
	snap := s.snap.Load()
	if snap == nil || k < 1 || snap.index.Len() == 0 {
		return nil
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("knowledge search: embed query", zap.Error(err))
		return nil
	}

	fetch := k
	if category != "" {
		fetch = k * s.overfetch
	}
	neighbors, err := snap.index.Query(vec, fetch)
	if err != nil {
		s.logger.Warn("knowledge search: query index", zap.Error(err))
		return nil
	}

	out := make([]Item, 0, k)
	for _, n := range neighbors {
		it := snap.items[n.Index]
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, it)
		if len(out) == k {
			break
		}
	}
	return out
}

// PositionContext returns up to k catalogue items relevant to a role: the
// items in the role's inferred category, then role-agnostic items, in
// catalogue order.
func (s *Store) PositionContext(role string, k int) []Item {
	snap := s.snap.Load()
	if snap == nil || k < 1 {
		return nil
	}
	cat := Classify(role, CategoryGeneral)
	out := make([]Item, 0, k)
	for _, want := range []Category{cat, CategoryGeneral} {
		for _, it := range snap.items {
			if len(out) == k {
				return out
			}
			if it.Category == want && (want == cat || it.TargetRole == AllRoles) {
				out = append(out, it)
			}
		}
		if cat == CategoryGeneral {
			break
		}
	}
	return out
}
