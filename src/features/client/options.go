package client

import "github.com/contre95/lyrico/src/lyrics"

// SearchOptions controls a Search call. A non-positive Limit returns every
// match. PreferSynced moves results that carry synced lyrics ahead of ones
// that don't, preserving score order within each group. IncludeMetadata keeps
// the full lyric bodies on each result; without it they are stripped to keep
// responses small.
type SearchOptions struct {
	Limit           int
	IncludeMetadata bool
	PreferSynced    bool
}

// LyricsOptions controls GetUnsynced and GetSynced calls. An empty Format
// defaults to plain for unsynced lyrics and lrc for synced ones.
// IncludeMetadata attaches the matched track record to the result, at the
// cost of one extra (cached) metadata lookup.
type LyricsOptions struct {
	IncludeMetadata bool
	Format          lyrics.Format
}
