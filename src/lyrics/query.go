package lyrics

import "strings"

// ValidateQuery normalizes a raw query into its canonical shape. TrackName and
// ArtistName must be non-empty after trimming. An AlbumName that is supplied
// but trims to empty is rejected rather than silently dropped.
func ValidateQuery(raw Query) (Query, error) {
	track := strings.TrimSpace(raw.TrackName)
	if track == "" {
		return Query{}, &ValidationError{Field: "trackName", Reason: "must be a non-empty string"}
	}

	artist := strings.TrimSpace(raw.ArtistName)
	if artist == "" {
		return Query{}, &ValidationError{Field: "artistName", Reason: "must be a non-empty string"}
	}

	q := Query{TrackName: track, ArtistName: artist}

	if raw.AlbumName != "" {
		album := strings.TrimSpace(raw.AlbumName)
		if album == "" {
			return Query{}, &ValidationError{Field: "albumName", Reason: "must not be blank when supplied"}
		}
		q.AlbumName = album
	}

	return q, nil
}
