package client

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the lyrics client routes with the Fiber app.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	lyricsAPI := api.Group("/lyrics")
	lyricsAPI.Get("/search", handler.Search)
	lyricsAPI.Get("/plain", handler.GetPlain)
	lyricsAPI.Get("/synced", handler.GetSynced)
	lyricsAPI.Get("/metadata", handler.GetMetadata)

	api.Get("/cache", handler.CacheStats)
	api.Delete("/cache", handler.ClearCache)
	api.Post("/cache/clean", handler.CleanCache)

	api.Get("/ratelimit", handler.RateLimitStatus)
	api.Post("/ratelimit/reset", handler.ResetRateLimit)
}
