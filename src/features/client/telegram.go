package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/lyrico/src/lyrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// syncedCallbackPrefix tags callback data for the "synced version" button
// attached to plain lyrics replies.
const syncedCallbackPrefix = "lyrics_synced|"

// TelegramHandler handles Telegram commands for the lyrics client
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the lyrics client
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes lyrics-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "lyrics":
		return h.handleLyrics(bot, chatID, args, false)
	case "synced":
		return h.handleLyrics(bot, chatID, args, true)
	case "cache":
		return h.handleCacheStats(bot, chatID)
	case "ratelimit":
		return h.handleRateLimit(bot, chatID)
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown lyrics command. Use /lyrics <artist> - <track>"))
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"lyrics":    "Get lyrics (/lyrics <artist> - <track>)",
		"synced":    "Get synced lyrics in LRC format (/synced <artist> - <track>)",
		"cache":     "Show lyrics cache statistics",
		"ratelimit": "Show outbound rate limiter status",
	}
}

// HandleCallback handles the "synced version" button under plain lyrics
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	args, ok := syncedCallbackArgs(callback.Data)
	if !ok {
		return false
	}
	if err := h.handleLyrics(bot, callback.Message.Chat.ID, args, true); err != nil {
		slog.Error("Failed to handle synced lyrics callback", "error", err)
	}
	return true
}

// syncedCallbackArgs extracts the "<artist> - <track>" arguments from synced
// lyrics callback data.
func syncedCallbackArgs(data string) (string, bool) {
	return strings.CutPrefix(data, syncedCallbackPrefix)
}

func (h *TelegramHandler) handleLyrics(bot *tgbotapi.BotAPI, chatID int64, args string, synced bool) error {
	artist, track, ok := strings.Cut(args, " - ")
	if !ok {
		bot.Send(tgbotapi.NewMessage(chatID, "Usage: <artist> - <track>"))
		return nil
	}

	query := lyrics.Query{TrackName: strings.TrimSpace(track), ArtistName: strings.TrimSpace(artist)}

	var formatted lyrics.FormattedLyrics
	var err error
	if synced {
		formatted, err = h.service.GetSynced(context.Background(), query, LyricsOptions{})
	} else {
		formatted, err = h.service.GetUnsynced(context.Background(), query, LyricsOptions{})
	}
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ "+err.Error()))
		return err
	}

	// Telegram rejects messages over 4096 characters
	content := formatted.Content
	if len(content) > 4000 {
		content = content[:4000] + "\n…"
	}

	msg := tgbotapi.NewMessage(chatID, content)
	// Callback data is capped at 64 bytes, so the button is skipped for
	// queries that would not fit
	if data := syncedCallbackPrefix + args; !synced && len(data) <= 64 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🎼 Synced version", data),
			),
		)
	}
	bot.Send(msg)
	return nil
}

func (h *TelegramHandler) handleCacheStats(bot *tgbotapi.BotAPI, chatID int64) error {
	evicted := h.service.CleanCache()
	stats := h.service.CacheStats()
	msg := fmt.Sprintf("📦 Cache: %d entries (%d expired entries evicted just now)", stats.Size, evicted)
	bot.Send(tgbotapi.NewMessage(chatID, msg))
	return nil
}

func (h *TelegramHandler) handleRateLimit(bot *tgbotapi.BotAPI, chatID int64) error {
	status := h.service.RateLimitStatus()
	msg := fmt.Sprintf("🚦 Requests: %d/%d, window resets at %s", status.Count, status.Max, status.ResetAt.Format("15:04:05"))
	if status.Limited {
		msg += "\n⚠️ Currently limited"
	}
	bot.Send(tgbotapi.NewMessage(chatID, msg))
	return nil
}
