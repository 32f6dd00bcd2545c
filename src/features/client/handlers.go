package client

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/contre95/lyrico/src/lyrics"
	"github.com/gofiber/fiber/v2"
)

// Handler handles lyrics API requests
type Handler struct {
	service *Service
}

// NewHandler creates a new client handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Search returns scored search results for a query.
func (h *Handler) Search(c *fiber.Ctx) error {
	opts := SearchOptions{
		Limit:           c.QueryInt("limit"),
		IncludeMetadata: c.QueryBool("metadata"),
		PreferSynced:    c.QueryBool("prefer_synced"),
	}

	results, err := h.service.Search(c.Context(), queryFromRequest(c), opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": searchResultsJSON(results)})
}

// GetPlain returns formatted unsynced lyrics.
func (h *Handler) GetPlain(c *fiber.Ctx) error {
	formatted, err := h.service.GetUnsynced(c.Context(), queryFromRequest(c), lyricsOptionsFromRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(formattedJSON(formatted))
}

// GetSynced returns formatted synced lyrics.
func (h *Handler) GetSynced(c *fiber.Ctx) error {
	formatted, err := h.service.GetSynced(c.Context(), queryFromRequest(c), lyricsOptionsFromRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(formattedJSON(formatted))
}

// GetMetadata returns the best matching track record.
func (h *Handler) GetMetadata(c *fiber.Ctx) error {
	md, err := h.service.FindMetadata(c.Context(), queryFromRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(metadataJSON(md))
}

// CacheStats reports the current cache size.
func (h *Handler) CacheStats(c *fiber.Ctx) error {
	return c.JSON(h.service.CacheStats())
}

// CleanCache sweeps expired entries out of the caches.
func (h *Handler) CleanCache(c *fiber.Ctx) error {
	evicted := h.service.CleanCache()
	slog.Info("Cache cleaned via API", "evicted", evicted)
	return c.JSON(fiber.Map{"evicted": evicted})
}

// ClearCache drops all cached entries.
func (h *Handler) ClearCache(c *fiber.Ctx) error {
	h.service.ClearCache()
	slog.Info("Cache cleared via API")
	return c.SendStatus(fiber.StatusNoContent)
}

// RateLimitStatus reports the limiter window snapshot.
func (h *Handler) RateLimitStatus(c *fiber.Ctx) error {
	status := h.service.RateLimitStatus()
	return c.JSON(fiber.Map{
		"count":     status.Count,
		"max":       status.Max,
		"resetTime": status.ResetAt,
		"limited":   status.Limited,
	})
}

// ResetRateLimit zeroes the limiter window.
func (h *Handler) ResetRateLimit(c *fiber.Ctx) error {
	h.service.ResetRateLimit()
	slog.Info("Rate limiter reset via API")
	return c.SendStatus(fiber.StatusNoContent)
}

func queryFromRequest(c *fiber.Ctx) lyrics.Query {
	return lyrics.Query{
		TrackName:  c.Query("track"),
		ArtistName: c.Query("artist"),
		AlbumName:  c.Query("album"),
	}
}

func lyricsOptionsFromRequest(c *fiber.Ctx) LyricsOptions {
	return LyricsOptions{
		IncludeMetadata: c.QueryBool("metadata"),
		Format:          lyrics.Format(c.Query("format")),
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var validation *lyrics.ValidationError
	var rateLimited *lyrics.RateLimitedError
	var timeout *lyrics.TimeoutError
	var provider *lyrics.ProviderError

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, lyrics.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &rateLimited):
		c.Set("Retry-After", strconv.Itoa(int(rateLimited.RetryAfter.Seconds())))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &timeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &provider):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("Unhandled error in lyrics handler", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func searchResultsJSON(results []lyrics.SearchResult) []fiber.Map {
	out := make([]fiber.Map, len(results))
	for i, r := range results {
		out[i] = fiber.Map{
			"metadata":    metadataJSON(&r.Metadata),
			"score":       r.Score,
			"hasSynced":   r.HasSynced,
			"hasUnsynced": r.HasUnsynced,
		}
	}
	return out
}

func formattedJSON(f lyrics.FormattedLyrics) fiber.Map {
	m := fiber.Map{
		"content": f.Content,
		"format":  f.Format,
	}
	if f.Metadata != nil {
		m["metadata"] = metadataJSON(f.Metadata)
	}
	return m
}

func metadataJSON(md *lyrics.TrackMetadata) fiber.Map {
	return fiber.Map{
		"id":           md.ID,
		"trackName":    md.TrackName,
		"artistName":   md.ArtistName,
		"albumName":    md.AlbumName,
		"duration":     md.Duration,
		"instrumental": md.Instrumental,
	}
}
