package lyrics

import (
	"math"
	"testing"
)

func TestScore_PerfectMatch(t *testing.T) {
	q := Query{TrackName: "Test Song", ArtistName: "Test Artist", AlbumName: "Test Album"}
	md := TrackMetadata{TrackName: "Test Song", ArtistName: "Test Artist", AlbumName: "Test Album"}

	if got := Score(q, md); got != 1 {
		t.Errorf("Score = %v, want 1", got)
	}
}

func TestScore_AlbumOnlyCountsWhenBothPresent(t *testing.T) {
	q := Query{TrackName: "Test Song", ArtistName: "Test Artist"}
	md := TrackMetadata{TrackName: "Test Song", ArtistName: "Test Artist", AlbumName: "Whatever Album"}

	// No query album, so only the track and artist factors apply and the
	// score renormalizes to a perfect 1.
	if got := Score(q, md); got != 1 {
		t.Errorf("Score = %v, want 1", got)
	}
}

func TestScore_WeightedAverage(t *testing.T) {
	q := Query{TrackName: "Test Song", ArtistName: "Nobody"}
	md := TrackMetadata{TrackName: "Test Song", ArtistName: "Test Artist"}

	want := (0.4*1 + 0.4*Similarity("Nobody", "Test Artist")) / 0.8
	if got := Score(q, md); math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

func TestScore_Deterministic(t *testing.T) {
	q := Query{TrackName: "Test Song", ArtistName: "Test Artist"}
	md := TrackMetadata{TrackName: "Tst Song", ArtistName: "Test Artst"}

	first := Score(q, md)
	for i := 0; i < 5; i++ {
		if got := Score(q, md); got != first {
			t.Fatalf("Score not deterministic: %v then %v", first, got)
		}
	}
}

func TestBuildSearchResult_Flags(t *testing.T) {
	q := Query{TrackName: "Test Song", ArtistName: "Test Artist"}
	md := TrackMetadata{TrackName: "Test Song", ArtistName: "Test Artist", SyncedLyrics: "[00:01.00]hi"}

	r := BuildSearchResult(md, q)
	if !r.HasSynced || r.HasUnsynced {
		t.Errorf("flags wrong: %+v", r)
	}
	if r.Score <= 0 {
		t.Errorf("expected positive score, got %v", r.Score)
	}
}

func TestSortResults_DescendingAndStable(t *testing.T) {
	results := []SearchResult{
		{Score: 0.5, Metadata: TrackMetadata{ID: 1}},
		{Score: 0.8, Metadata: TrackMetadata{ID: 2}},
		{Score: 0.3, Metadata: TrackMetadata{ID: 3}},
		{Score: 0.8, Metadata: TrackMetadata{ID: 4}},
	}

	SortResults(results)

	gotScores := []float64{results[0].Score, results[1].Score, results[2].Score, results[3].Score}
	wantScores := []float64{0.8, 0.8, 0.5, 0.3}
	for i := range wantScores {
		if gotScores[i] != wantScores[i] {
			t.Fatalf("scores = %v, want %v", gotScores, wantScores)
		}
	}

	// Equal scores keep input order
	if results[0].Metadata.ID != 2 || results[1].Metadata.ID != 4 {
		t.Errorf("tie order not stable: %d then %d", results[0].Metadata.ID, results[1].Metadata.ID)
	}
}
