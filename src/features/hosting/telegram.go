package hosting

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/contre95/lyrico/src/features/client"
	"github.com/contre95/lyrico/src/features/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramCommandHandler interface that each feature implements
type TelegramCommandHandler interface {
	HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error
	GetCommands() map[string]string
	HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool
}

// TelegramBot handles Telegram bot operations
type TelegramBot struct {
	bot      *tgbotapi.BotAPI
	config   *config.Manager
	handlers map[string]TelegramCommandHandler
	commands map[string]string // command -> feature
	updates  tgbotapi.UpdatesChannel
	stopChan chan struct{}
}

// NewTelegramBot creates a new Telegram bot instance
func NewTelegramBot(cfg *config.Manager, clientService *client.Service) (*TelegramBot, error) {
	telegramConfig := cfg.Get().Telegram

	if !telegramConfig.Enabled {
		return nil, fmt.Errorf("telegram bot is disabled in configuration")
	}
	if telegramConfig.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	bot, err := tgbotapi.NewBotAPI(telegramConfig.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	slog.Info("Telegram bot initialized", "username", bot.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	telegramBot := &TelegramBot{
		bot:      bot,
		config:   cfg,
		handlers: make(map[string]TelegramCommandHandler),
		commands: make(map[string]string),
		updates:  bot.GetUpdatesChan(updateConfig),
		stopChan: make(chan struct{}),
	}

	telegramBot.RegisterHandler("lyrics", client.NewTelegramHandler(clientService))

	return telegramBot, nil
}

// RegisterHandler registers a feature's command handler and its commands
func (t *TelegramBot) RegisterHandler(feature string, handler TelegramCommandHandler) {
	t.handlers[feature] = handler
	for command := range handler.GetCommands() {
		t.commands[command] = feature
	}
	slog.Debug("Registered Telegram handler", "feature", feature)
}

// Start begins listening for Telegram updates
func (t *TelegramBot) Start() {
	slog.Info("Starting Telegram bot listener")

	for {
		select {
		case update := <-t.updates:
			if update.Message != nil {
				go t.handleMessage(update)
			}
			if update.CallbackQuery != nil {
				go t.handleCallbackQuery(update)
			}
		case <-t.stopChan:
			slog.Info("Stopping Telegram bot listener")
			return
		}
	}
}

// Stop gracefully stops the bot
func (t *TelegramBot) Stop() {
	close(t.stopChan)
}

// handleMessage processes incoming messages
func (t *TelegramBot) handleMessage(update tgbotapi.Update) {
	message := update.Message
	chatID := message.Chat.ID

	allowedUsers := t.config.Get().Telegram.AllowedUsers
	if len(allowedUsers) == 0 {
		slog.Warn("No allowed users configured", "chat_id", chatID)
		t.sendMessage(chatID, "❌ Access denied: No users configured. Please add users to the config.")
		return
	}

	username := message.From.UserName
	if username == "" {
		username = message.From.FirstName
		if message.From.LastName != "" {
			username += " " + message.From.LastName
		}
	}
	if !slices.Contains(allowedUsers, username) {
		slog.Warn("Unauthorized user", "username", username, "chat_id", chatID)
		t.sendMessage(chatID, "Unknown user, please add your user to the config")
		return
	}

	if message.IsCommand() {
		t.handleCommand(update)
		return
	}

	t.sendMessage(chatID, "🤖 Send /help to see available commands")
}

// handleCommand processes bot commands
func (t *TelegramBot) handleCommand(update tgbotapi.Update) {
	message := update.Message
	chatID := message.Chat.ID
	command := message.Command()
	args := message.CommandArguments()

	slog.Debug("Processing command", "command", command, "chat_id", chatID)

	switch command {
	case "help", "start":
		t.handleHelp(chatID)
	default:
		if err := t.routeCommand(command, args, chatID); err != nil {
			slog.Error("Failed to handle command", "command", command, "error", err)
		}
	}
}

// routeCommand routes commands to the appropriate feature handler
func (t *TelegramBot) routeCommand(command, args string, chatID int64) error {
	feature, exists := t.commands[command]
	if !exists {
		t.sendMessage(chatID, "❌ Unknown command. Send /help to see available commands.")
		return nil
	}
	return t.handlers[feature].HandleCommand(t.bot, chatID, command, args)
}

// handleCallbackQuery routes inline keyboard callbacks to feature handlers
func (t *TelegramBot) handleCallbackQuery(update tgbotapi.Update) {
	callback := update.CallbackQuery

	for _, handler := range t.handlers {
		if handler.HandleCallback(t.bot, callback) {
			break
		}
	}

	// Answer the callback to remove the loading state
	if _, err := t.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		slog.Error("Failed to answer callback query", "error", err)
	}
}

// handleHelp lists every registered command
func (t *TelegramBot) handleHelp(chatID int64) {
	var lines []string
	for _, handler := range t.handlers {
		for command, description := range handler.GetCommands() {
			lines = append(lines, fmt.Sprintf("/%s — %s", command, description))
		}
	}
	sort.Strings(lines)
	t.sendMessage(chatID, "🎵 Lyrico commands:\n"+strings.Join(lines, "\n"))
}

func (t *TelegramBot) sendMessage(chatID int64, text string) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("Failed to send Telegram message", "error", err, "chat_id", chatID)
	}
}
