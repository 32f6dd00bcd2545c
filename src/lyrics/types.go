package lyrics

// Query identifies a track to look lyrics up for. Construct through
// ValidateQuery; TrackName and ArtistName are guaranteed non-empty after that.
// An empty AlbumName means the album was not supplied.
type Query struct {
	TrackName  string
	ArtistName string
	AlbumName  string
}

// TrackMetadata is a provider-identified track record. Read-only after
// creation; copies are safe to share.
type TrackMetadata struct {
	ID           int
	Name         string
	TrackName    string
	ArtistName   string
	AlbumName    string
	Duration     int // seconds
	Instrumental bool
	PlainLyrics  string
	SyncedLyrics string
}

// Line is a single lyric line. Timed reports whether StartTimeMs carries a
// playback offset; a result sequence is either fully timed or fully untimed,
// never mixed.
type Line struct {
	Text        string
	StartTimeMs int64
	Timed       bool
}

// SearchResult pairs a track record with its match score against a query.
// Score is derived from the query and metadata and is reproducible from them.
type SearchResult struct {
	Metadata    TrackMetadata
	Score       float64 // in [0,1]
	HasSynced   bool
	HasUnsynced bool
}

// Format selects how lyric lines are rendered.
type Format string

const (
	FormatPlain Format = "plain"
	FormatLRC   Format = "lrc"
	FormatJSON  Format = "json"
)

// FormattedLyrics is a rendered line sequence.
type FormattedLyrics struct {
	Content  string
	Format   Format
	Metadata *TrackMetadata
}
