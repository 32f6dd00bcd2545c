package lyrics

import "sort"

// Field weights for match scoring. The album factor only participates when
// both the query and the record name an album; weights in play are
// renormalized so the score stays in [0,1].
const (
	trackWeight  = 0.4
	artistWeight = 0.4
	albumWeight  = 0.2
)

// Score rates how well a track record matches a query as a weighted average
// of per-field similarities. Recomputing from the same inputs is
// deterministic.
func Score(q Query, md TrackMetadata) float64 {
	var weighted, applied float64

	trackName := md.TrackName
	if trackName == "" {
		trackName = md.Name
	}
	if trackName != "" {
		weighted += trackWeight * Similarity(q.TrackName, trackName)
		applied += trackWeight
	}

	if md.ArtistName != "" {
		weighted += artistWeight * Similarity(q.ArtistName, md.ArtistName)
		applied += artistWeight
	}

	if q.AlbumName != "" && md.AlbumName != "" {
		weighted += albumWeight * Similarity(q.AlbumName, md.AlbumName)
		applied += albumWeight
	}

	if applied == 0 {
		return 0
	}

	return weighted / applied
}

// BuildSearchResult wraps a record with its score against the query and flags
// for which lyric variants it actually carries.
func BuildSearchResult(md TrackMetadata, q Query) SearchResult {
	return SearchResult{
		Metadata:    md,
		Score:       Score(q, md),
		HasSynced:   md.SyncedLyrics != "",
		HasUnsynced: md.PlainLyrics != "",
	}
}

// SortResults orders results by descending score in place and returns the
// slice. The sort is stable, so ties keep their input order.
func SortResults(results []SearchResult) []SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
