package client

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/contre95/lyrico/src/features/config"
	"github.com/contre95/lyrico/src/features/metrics"
	"github.com/contre95/lyrico/src/infra/cache"
	"github.com/contre95/lyrico/src/infra/ratelimit"
	"github.com/contre95/lyrico/src/lyrics"
	"golang.org/x/sync/singleflight"
)

// Provider is the boundary with the external lyrics service. Implementations
// signal confirmed absence with lyrics.ErrNotFound and wrap transport
// failures in lyrics.ProviderError.
type Provider interface {
	Name() string
	Search(ctx context.Context, q lyrics.Query) ([]lyrics.TrackMetadata, error)
	FindMetadata(ctx context.Context, q lyrics.Query) (*lyrics.TrackMetadata, error)
	GetUnsyncedLines(ctx context.Context, q lyrics.Query) ([]lyrics.Line, error)
	GetSyncedLines(ctx context.Context, q lyrics.Query) ([]lyrics.Line, error)
}

// Service orchestrates lyrics lookups: validate → cache → rate check →
// timeout-wrapped provider call → rank/format → cache store. Each stage
// failure aborts the pipeline; a cache hit short-circuits everything after the
// lookup. The cache and limiter are owned exclusively by this service and are
// safe under concurrent calls.
//
// Lookup by provider track id is deliberately not offered: the upstream
// service has no by-id endpoint.
type Service struct {
	provider Provider
	config   *config.Manager
	recorder *metrics.Recorder

	searchCache *cache.Cache[[]lyrics.SearchResult]
	lyricsCache *cache.Cache[lyrics.FormattedLyrics]
	metaCache   *cache.Cache[lyrics.TrackMetadata]
	limiter     *ratelimit.Limiter
	flight      singleflight.Group
}

// NewService creates a client service around the given provider.
func NewService(provider Provider, cfg *config.Manager, recorder *metrics.Recorder) *Service {
	c := cfg.Get().Client
	ttl := time.Duration(c.CacheTTLMs) * time.Millisecond

	return &Service{
		provider:    provider,
		config:      cfg,
		recorder:    recorder,
		searchCache: cache.New[[]lyrics.SearchResult](ttl),
		lyricsCache: cache.New[lyrics.FormattedLyrics](ttl),
		metaCache:   cache.New[lyrics.TrackMetadata](ttl),
		limiter:     ratelimit.New(c.MaxRequestsPerMinute, time.Minute),
	}
}

// Search looks up tracks matching the query and returns them scored and
// ordered, best match first.
func (s *Service) Search(ctx context.Context, raw lyrics.Query, opts SearchOptions) ([]lyrics.SearchResult, error) {
	q, err := lyrics.ValidateQuery(raw)
	if err != nil {
		return nil, err
	}

	key := cache.Key("search", queryParams(q, map[string]string{
		"limit":        strconv.Itoa(opts.Limit),
		"meta":         strconv.FormatBool(opts.IncludeMetadata),
		"preferSynced": strconv.FormatBool(opts.PreferSynced),
	}))

	if s.cacheEnabled() {
		if cached, ok := s.searchCache.Get(key); ok {
			s.recorder.CacheHit("search")
			slog.Debug("Search served from cache", "track", q.TrackName, "artist", q.ArtistName)
			return append([]lyrics.SearchResult(nil), cached...), nil
		}
		s.recorder.CacheMiss("search")
	}

	if err := s.checkRate(); err != nil {
		return nil, err
	}

	tracks, err := call(ctx, s, "search", key, func(ctx context.Context) ([]lyrics.TrackMetadata, error) {
		return s.provider.Search(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	results := make([]lyrics.SearchResult, len(tracks))
	for i, md := range tracks {
		results[i] = lyrics.BuildSearchResult(md, q)
	}
	lyrics.SortResults(results)

	if opts.PreferSynced {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].HasSynced && !results[j].HasSynced
		})
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	if !opts.IncludeMetadata {
		for i := range results {
			results[i].Metadata.PlainLyrics = ""
			results[i].Metadata.SyncedLyrics = ""
		}
	}

	if s.cacheEnabled() {
		s.searchCache.Set(key, results, s.ttl())
	}

	slog.Debug("Search completed", "track", q.TrackName, "artist", q.ArtistName, "results", len(results))
	return results, nil
}

// GetUnsynced fetches plain lyric lines for the best match and renders them.
func (s *Service) GetUnsynced(ctx context.Context, raw lyrics.Query, opts LyricsOptions) (lyrics.FormattedLyrics, error) {
	if opts.Format == "" {
		opts.Format = lyrics.FormatPlain
	}
	return s.getLyrics(ctx, raw, opts, "unsynced", s.provider.GetUnsyncedLines)
}

// GetSynced fetches timed lyric lines for the best match and renders them.
func (s *Service) GetSynced(ctx context.Context, raw lyrics.Query, opts LyricsOptions) (lyrics.FormattedLyrics, error) {
	if opts.Format == "" {
		opts.Format = lyrics.FormatLRC
	}
	return s.getLyrics(ctx, raw, opts, "synced", s.provider.GetSyncedLines)
}

func (s *Service) getLyrics(ctx context.Context, raw lyrics.Query, opts LyricsOptions, op string, fetch func(context.Context, lyrics.Query) ([]lyrics.Line, error)) (lyrics.FormattedLyrics, error) {
	q, err := lyrics.ValidateQuery(raw)
	if err != nil {
		return lyrics.FormattedLyrics{}, err
	}

	key := cache.Key(op, queryParams(q, map[string]string{
		"format": string(opts.Format),
		"meta":   strconv.FormatBool(opts.IncludeMetadata),
	}))

	if s.cacheEnabled() {
		if cached, ok := s.lyricsCache.Get(key); ok {
			s.recorder.CacheHit(op)
			return cached, nil
		}
		s.recorder.CacheMiss(op)
	}

	if err := s.checkRate(); err != nil {
		return lyrics.FormattedLyrics{}, err
	}

	lines, err := call(ctx, s, op, key, func(ctx context.Context) ([]lyrics.Line, error) {
		return fetch(ctx, q)
	})
	if err != nil {
		return lyrics.FormattedLyrics{}, err
	}

	var md *lyrics.TrackMetadata
	if opts.IncludeMetadata {
		md, err = s.findMetadata(ctx, q)
		if err != nil {
			return lyrics.FormattedLyrics{}, err
		}
	}

	formatted, err := lyrics.FormatLines(lines, opts.Format, md)
	if err != nil {
		return lyrics.FormattedLyrics{}, err
	}

	if s.cacheEnabled() {
		s.lyricsCache.Set(key, formatted, s.ttl())
	}

	return formatted, nil
}

// FindMetadata returns the provider's best matching track record.
func (s *Service) FindMetadata(ctx context.Context, raw lyrics.Query) (*lyrics.TrackMetadata, error) {
	q, err := lyrics.ValidateQuery(raw)
	if err != nil {
		return nil, err
	}
	return s.findMetadata(ctx, q)
}

// findMetadata runs the metadata pipeline for an already validated query.
func (s *Service) findMetadata(ctx context.Context, q lyrics.Query) (*lyrics.TrackMetadata, error) {
	key := cache.Key("metadata", queryParams(q, nil))

	if s.cacheEnabled() {
		if cached, ok := s.metaCache.Get(key); ok {
			s.recorder.CacheHit("metadata")
			md := cached
			return &md, nil
		}
		s.recorder.CacheMiss("metadata")
	}

	if err := s.checkRate(); err != nil {
		return nil, err
	}

	md, err := call(ctx, s, "metadata", key, func(ctx context.Context) (*lyrics.TrackMetadata, error) {
		return s.provider.FindMetadata(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		s.metaCache.Set(key, *md, s.ttl())
	}

	out := *md
	return &out, nil
}

// Format renders lyric lines without touching the network or the cache.
func (s *Service) Format(lines []lyrics.Line, format lyrics.Format, md *lyrics.TrackMetadata) (lyrics.FormattedLyrics, error) {
	return lyrics.FormatLines(lines, format, md)
}

// CacheStats reports the combined entry count across the caches. Expired
// entries still awaiting lazy eviction are counted; use CleanCache to sweep
// them out.
type CacheStats struct {
	Size int `json:"size"`
}

func (s *Service) CacheStats() CacheStats {
	size := s.searchCache.Size() + s.lyricsCache.Size() + s.metaCache.Size()
	return CacheStats{Size: size}
}

// CleanCache eagerly evicts expired entries from every cache and reports how
// many were dropped. Never needed for correctness, only memory reclamation.
func (s *Service) CleanCache() int {
	return s.searchCache.Clean() + s.lyricsCache.Clean() + s.metaCache.Clean()
}

// ClearCache drops every cached entry.
func (s *Service) ClearCache() {
	s.searchCache.Clear()
	s.lyricsCache.Clear()
	s.metaCache.Clear()
}

// RateLimitStatus returns a snapshot of the outbound limiter window.
func (s *Service) RateLimitStatus() ratelimit.Status {
	return s.limiter.Status()
}

// ResetRateLimit zeroes the limiter window.
func (s *Service) ResetRateLimit() {
	s.limiter.Reset()
}

// ProviderName identifies the wired provider, for status surfaces.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

func (s *Service) cacheEnabled() bool {
	return s.config.Get().Client.EnableCache
}

func (s *Service) ttl() time.Duration {
	return time.Duration(s.config.Get().Client.CacheTTLMs) * time.Millisecond
}

func (s *Service) timeout() time.Duration {
	return time.Duration(s.config.Get().Client.RequestTimeoutMs) * time.Millisecond
}

func (s *Service) checkRate() error {
	c := s.config.Get().Client
	if !c.EnableRateLimit {
		return nil
	}
	// The ceiling follows config edits picked up by the hot reload
	s.limiter.SetLimit(c.MaxRequestsPerMinute)
	if err := s.limiter.Check(); err != nil {
		s.recorder.RateLimited()
		slog.Debug("Outbound request rate limited", "provider", s.provider.Name())
		return err
	}
	return nil
}

// call wraps one provider operation with the timeout race, de-duplicates
// identical concurrent calls through singleflight, and records metrics.
func call[T any](ctx context.Context, s *Service, op, key string, fn func(context.Context) (T, error)) (T, error) {
	result, err, _ := s.flight.Do(key, func() (any, error) {
		start := time.Now()
		value, err := withTimeout(ctx, op, s.timeout(), fn)
		s.recorder.ProviderCall(op, time.Since(start), err)
		return value, err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// queryParams renders a validated query (plus per-operation extras) as cache
// key parameters.
func queryParams(q lyrics.Query, extra map[string]string) map[string]string {
	params := map[string]string{
		"track":  q.TrackName,
		"artist": q.ArtistName,
	}
	if q.AlbumName != "" {
		params["album"] = q.AlbumName
	}
	for k, v := range extra {
		params[k] = v
	}
	return params
}
