package metadata

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider counts lookups and serves canned records, mimicking a
// provider's own memoization: repeated lookups for a known title are
// served from cache until ClearCache.
type fakeProvider struct {
	records map[string]Record
	cached  map[string]Record
	calls   int
	panics  bool
}

func newFakeProvider(records map[string]Record) *fakeProvider {
	return &fakeProvider{
		records: records,
		cached:  make(map[string]Record),
	}
}

func (p *fakeProvider) Lookup(_ context.Context, title string) Record {
	if p.panics {
		panic("provider exploded")
	}
	if rec, ok := p.cached[title]; ok {
		return rec
	}
	p.calls++
	rec := p.records[title]
	p.cached[title] = rec
	return rec
}

func (p *fakeProvider) ClearCache() {
	p.cached = make(map[string]Record)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveMergesWithPrimaryPriority(t *testing.T) {
	primary := newFakeProvider(map[string]Record{
		"duna": {Title: "Duna", Author: "Frank Herbert"},
	})
	secondary := newFakeProvider(map[string]Record{
		"duna": {Title: "Dune", Synopsis: "Areia.", CoverURL: "https://example.com/c.jpg"},
	})
	r := NewResolver(primary, secondary, testLogger())

	rec := r.Resolve(context.Background(), "duna")
	require.NotNil(t, rec)
	assert.Equal(t, "Duna", rec.Title)
	assert.Equal(t, "Frank Herbert", rec.Author)
	assert.Equal(t, "Areia.", rec.Synopsis)
	assert.Equal(t, "https://example.com/c.jpg", rec.CoverURL)
}

func TestResolveFallsBackToInputTitle(t *testing.T) {
	primary := newFakeProvider(map[string]Record{
		"obscure": {Synopsis: "Found something."},
	})
	secondary := newFakeProvider(nil)
	r := NewResolver(primary, secondary, testLogger())

	rec := r.Resolve(context.Background(), "obscure")
	require.NotNil(t, rec)
	assert.Equal(t, "obscure", rec.Title)
}

func TestResolveNothingFound(t *testing.T) {
	r := NewResolver(newFakeProvider(nil), newFakeProvider(nil), testLogger())

	assert.Nil(t, r.Resolve(context.Background(), "inexistente"))
}

func TestResolveMemoizesResult(t *testing.T) {
	primary := newFakeProvider(map[string]Record{"duna": {Title: "Duna"}})
	secondary := newFakeProvider(nil)
	r := NewResolver(primary, secondary, testLogger())

	first := r.Resolve(context.Background(), "duna")
	second := r.Resolve(context.Background(), "duna")

	require.NotNil(t, first)
	assert.Equal(t, first, second)
	// The second Resolve must not invoke the providers again.
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestInvalidateAllForcesFreshLookups(t *testing.T) {
	primary := newFakeProvider(map[string]Record{"duna": {Title: "Duna"}})
	secondary := newFakeProvider(nil)
	r := NewResolver(primary, secondary, testLogger())

	r.Resolve(context.Background(), "duna")
	r.InvalidateAll()
	r.Resolve(context.Background(), "duna")

	// Invalidation clears the resolver cache and both provider caches,
	// so both providers are queried again.
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 2, secondary.calls)
}

func TestResolveRecoversFromPanic(t *testing.T) {
	primary := newFakeProvider(nil)
	primary.panics = true
	r := NewResolver(primary, newFakeProvider(nil), testLogger())

	assert.Nil(t, r.Resolve(context.Background(), "duna"))
}

func TestResolveDeterministic(t *testing.T) {
	records := map[string]Record{"duna": {Title: "Duna", Pages: "412"}}
	r1 := NewResolver(newFakeProvider(records), newFakeProvider(nil), testLogger())
	r2 := NewResolver(newFakeProvider(records), newFakeProvider(nil), testLogger())

	assert.Equal(t, r1.Resolve(context.Background(), "duna"), r2.Resolve(context.Background(), "duna"))
}
