package bot

import (
	"strconv"
	"testing"

	"rps-duel-bot/internal/match"
)

func TestCallbackRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		action string
		param  string
	}{
		{"choice with param", "choice", "rock"},
		{"ban with param", "ban", "4"},
		{"action only", "leave", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, param := DecodeCallback(EncodeCallback(tt.action, tt.param))
			if action != tt.action || param != tt.param {
				t.Errorf("round trip = (%q, %q), want (%q, %q)", action, param, tt.action, tt.param)
			}
		})
	}
}

func TestDecodeCallbackForeignData(t *testing.T) {
	if action, param := DecodeCallback("other_bot_data"); action != "" || param != "" {
		t.Errorf("DecodeCallback on foreign data = (%q, %q), want empty", action, param)
	}
}

func TestChoiceKeyboard(t *testing.T) {
	markup := ChoiceKeyboard()
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 3 {
		t.Fatalf("keyboard layout = %v, want one row of three", markup.InlineKeyboard)
	}
	for _, btn := range markup.InlineKeyboard[0] {
		action, param := DecodeCallback(btn.Data)
		if action != "choice" {
			t.Errorf("button action = %q, want choice", action)
		}
		if _, ok := match.ParseChoice(param); !ok {
			t.Errorf("button param %q does not parse as a choice", param)
		}
	}
}

func TestBanKeyboard(t *testing.T) {
	markup := BanKeyboard()
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != len(match.BanValues) {
		t.Fatalf("keyboard layout = %v, want one row of %d", markup.InlineKeyboard, len(match.BanValues))
	}
	for i, btn := range markup.InlineKeyboard[0] {
		action, param := DecodeCallback(btn.Data)
		if action != "ban" {
			t.Errorf("button action = %q, want ban", action)
		}
		v, err := strconv.Atoi(param)
		if err != nil || !match.ValidBan(v) {
			t.Errorf("button param %q is not a legal ban", param)
		}
		if v != match.BanValues[i] {
			t.Errorf("button %d offers %d, want %d", i, v, match.BanValues[i])
		}
	}
}
