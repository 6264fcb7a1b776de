// Property-based tests for the access-control helpers backing the bot
// middleware.
package bot

import (
	"testing"

	"pgregory.net/rapid"

	"rps-duel-bot/internal/config"
)

// TestAdminCheckProperty verifies a user is recognized as admin exactly when
// their id appears in the configured list.
func TestAdminCheckProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numAdmins := rapid.IntRange(1, 10).Draw(t, "numAdmins")
		adminIDs := make([]int64, numAdmins)
		for i := 0; i < numAdmins; i++ {
			adminIDs[i] = rapid.Int64Range(1, 1000000000).Draw(t, "adminID")
		}

		cfg := &config.Config{
			Admin: config.AdminConfig{IDs: adminIDs},
		}

		userID := rapid.Int64Range(1, 1000000000).Draw(t, "userID")

		expected := false
		for _, id := range adminIDs {
			if id == userID {
				expected = true
				break
			}
		}
		if got := cfg.IsAdmin(userID); got != expected {
			t.Fatalf("IsAdmin(%d) = %v with admins %v, want %v", userID, got, adminIDs, expected)
		}

		// A listed admin is always recognized.
		known := adminIDs[rapid.IntRange(0, numAdmins-1).Draw(t, "adminIndex")]
		if !cfg.IsAdmin(known) {
			t.Fatalf("listed admin %d not recognized, admins %v", known, adminIDs)
		}
	})
}

// TestWhitelistProperty verifies a group chat is allowed exactly when its id
// appears in the whitelist.
func TestWhitelistProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numChats := rapid.IntRange(1, 10).Draw(t, "numChats")
		chatIDs := make([]int64, numChats)
		for i := 0; i < numChats; i++ {
			// Group chat ids are negative
			chatIDs[i] = -rapid.Int64Range(1, 1000000000).Draw(t, "chatID")
		}

		cfg := &config.Config{
			Whitelist: config.WhitelistConfig{Chats: chatIDs},
		}

		testChatID := -rapid.Int64Range(1, 1000000000).Draw(t, "testChatID")

		expected := false
		for _, id := range chatIDs {
			if id == testChatID {
				expected = true
				break
			}
		}
		if got := cfg.IsChatAllowed(testChatID); got != expected {
			t.Fatalf("IsChatAllowed(%d) = %v with whitelist %v, want %v", testChatID, got, chatIDs, expected)
		}

		known := chatIDs[rapid.IntRange(0, numChats-1).Draw(t, "chatIndex")]
		if !cfg.IsChatAllowed(known) {
			t.Fatalf("whitelisted chat %d rejected, whitelist %v", known, chatIDs)
		}
	})
}

// TestEmptyWhitelistAllowsAllChatsProperty verifies the open-by-default case.
func TestEmptyWhitelistAllowsAllChatsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := &config.Config{
			Whitelist: config.WhitelistConfig{Chats: []int64{}},
		}

		chatID := -rapid.Int64Range(1, 1000000000).Draw(t, "chatID")
		if !cfg.IsChatAllowed(chatID) {
			t.Fatalf("empty whitelist rejected chat %d", chatID)
		}
	})
}
