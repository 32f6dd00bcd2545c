package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/contre95/lyrico/src/lyrics"
)

const DefaultBaseURL = "https://lrclib.net"

// lrclibTrack is the provider's own record shape. It never leaves this
// package; mapTrack translates it field by field into the internal model.
type lrclibTrack struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// LRCLib adapts the lrclib.net HTTP API to the client's provider boundary.
// lrclib has no by-id lookup endpoint, so no such operation is exposed.
type LRCLib struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewLRCLib creates an lrclib.net provider. An empty baseURL uses the public
// instance.
func NewLRCLib(baseURL, userAgent string) *LRCLib {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &LRCLib{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{},
	}
}

func (p *LRCLib) Name() string { return "lrclib" }

// Search returns every record the provider matched for the query, mapped into
// the internal model. An empty result set is ErrNotFound.
func (p *LRCLib) Search(ctx context.Context, q lyrics.Query) ([]lyrics.TrackMetadata, error) {
	params := url.Values{}
	params.Set("track_name", q.TrackName)
	params.Set("artist_name", q.ArtistName)
	if q.AlbumName != "" {
		params.Set("album_name", q.AlbumName)
	}

	searchURL := fmt.Sprintf("%s/api/search?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, &lyrics.ProviderError{Op: "search", Err: err}
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &lyrics.ProviderError{Op: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &lyrics.ProviderError{Op: "search", Err: fmt.Errorf("lrclib returned status %d", resp.StatusCode)}
	}

	var tracks []lrclibTrack
	if err := json.NewDecoder(resp.Body).Decode(&tracks); err != nil {
		return nil, &lyrics.ProviderError{Op: "search", Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(tracks) == 0 {
		return nil, lyrics.ErrNotFound
	}

	results := make([]lyrics.TrackMetadata, len(tracks))
	for i, t := range tracks {
		results[i] = mapTrack(t)
	}
	return results, nil
}

// FindMetadata returns the provider's first match for the query.
func (p *LRCLib) FindMetadata(ctx context.Context, q lyrics.Query) (*lyrics.TrackMetadata, error) {
	tracks, err := p.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return &tracks[0], nil
}

// GetUnsyncedLines returns the plain lyric lines of the first match.
func (p *LRCLib) GetUnsyncedLines(ctx context.Context, q lyrics.Query) ([]lyrics.Line, error) {
	md, err := p.FindMetadata(ctx, q)
	if err != nil {
		return nil, err
	}
	if md.PlainLyrics == "" {
		return nil, lyrics.ErrNotFound
	}
	return lyrics.ParsePlainBody(md.PlainLyrics), nil
}

// GetSyncedLines returns the timed lyric lines of the first match.
func (p *LRCLib) GetSyncedLines(ctx context.Context, q lyrics.Query) ([]lyrics.Line, error) {
	md, err := p.FindMetadata(ctx, q)
	if err != nil {
		return nil, err
	}
	if md.SyncedLyrics == "" {
		return nil, lyrics.ErrNotFound
	}
	lines := lyrics.ParseSyncedBody(md.SyncedLyrics)
	if len(lines) == 0 {
		return nil, lyrics.ErrNotFound
	}
	return lines, nil
}

// mapTrack translates a provider record into the internal model, field by
// field, so the internal shape stays decoupled from the wire shape.
func mapTrack(t lrclibTrack) lyrics.TrackMetadata {
	return lyrics.TrackMetadata{
		ID:           t.ID,
		Name:         t.Name,
		TrackName:    t.TrackName,
		ArtistName:   t.ArtistName,
		AlbumName:    t.AlbumName,
		Duration:     int(t.Duration),
		Instrumental: t.Instrumental,
		PlainLyrics:  t.PlainLyrics,
		SyncedLyrics: t.SyncedLyrics,
	}
}
