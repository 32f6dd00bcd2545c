package client

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestSyncedCallbackArgs(t *testing.T) {
	args, ok := syncedCallbackArgs("lyrics_synced|Test Artist - Test Song")
	if !ok {
		t.Fatal("expected synced callback data to match")
	}
	if args != "Test Artist - Test Song" {
		t.Errorf("args = %q, want %q", args, "Test Artist - Test Song")
	}

	if _, ok := syncedCallbackArgs("import_confirm|42"); ok {
		t.Error("foreign callback data must not match")
	}
}

func TestHandleCallbackIgnoresForeignData(t *testing.T) {
	provider := &StubProvider{tracks: testTracks()}
	handler := NewTelegramHandler(NewService(provider, testConfig(), nil))

	callback := &tgbotapi.CallbackQuery{Data: "menu_settings"}
	if handler.HandleCallback(nil, callback) {
		t.Error("expected foreign callback to be left for other handlers")
	}
	if provider.lineCalls.Load() != 0 {
		t.Errorf("lineCalls = %d, want 0", provider.lineCalls.Load())
	}
}
