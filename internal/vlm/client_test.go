package vlm

import (
	"strings"
	"testing"
	"time"
)

func TestDecodeFact(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		wantErr bool
	}{
		{
			name:   "bare json",
			answer: `{"date":"2026-01-15","amount":25.0,"merchant":"肯德基","payment_method":"微信","bank_name":"NONE","card_last_four":"0000","transaction_type":"expense","category":"午餐","description":"午餐"}`,
		},
		{
			name:   "string amount",
			answer: `{"date":"2026-01-15","amount":"25.00","merchant":"肯德基","payment_method":"微信","transaction_type":"expense","category":"午餐"}`,
		},
		{
			name: "markdown fenced",
			answer: "```json\n" +
				`{"date":"2026-01-15","amount":25.0,"merchant":"肯德基","payment_method":"微信","transaction_type":"expense","category":"午餐"}` +
				"\n```",
		},
		{
			name:    "not json",
			answer:  "sorry, I could not read the bill",
			wantErr: true,
		},
		{
			name:    "invalid fact",
			answer:  `{"date":"2026-01-15","amount":-5,"payment_method":"微信","transaction_type":"expense"}`,
			wantErr: true,
		},
		{
			name:    "bad transaction type",
			answer:  `{"date":"2026-01-15","amount":25.0,"payment_method":"微信","transaction_type":"refund"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fact, err := DecodeFact(tt.answer)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got fact %+v", fact)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fact.Date != "2026-01-15" || fact.Amount.StringFixed(2) != "25.00" {
				t.Errorf("unexpected fact: %+v", fact)
			}
		})
	}
}

func TestBeijingDate(t *testing.T) {
	// 2026-01-15 23:00 UTC is already the 16th in UTC+8.
	now := time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC)
	if got := BeijingDate(now); got != "2026-01-16" {
		t.Errorf("BeijingDate = %q, expected 2026-01-16", got)
	}
}

func TestPromptsCarryTheDate(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, beijingTZ)
	for name, prompt := range map[string]string{
		"image": ImageParsePrompt(now),
		"text":  TextParsePrompt(now),
	} {
		if !strings.Contains(prompt, "2026-01-15") {
			t.Errorf("%s prompt does not mention today's date", name)
		}
		if !strings.Contains(prompt, "午餐") {
			t.Errorf("%s prompt does not carry the category whitelist", name)
		}
	}
}
