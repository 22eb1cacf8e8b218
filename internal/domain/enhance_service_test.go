package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Vovarama1992/voicescribe/internal/apperr"
	"github.com/Vovarama1992/voicescribe/internal/ports"
)

type fakeChat struct {
	reply    string
	err      error
	messages []ports.ChatMessage
	temp     float64
	calls    int
}

func (f *fakeChat) Complete(ctx context.Context, messages []ports.ChatMessage, temperature float64) (string, error) {
	f.calls++
	f.messages = messages
	f.temp = temperature
	return f.reply, f.err
}

func TestEnhance_EmptyText(t *testing.T) {
	svc := NewEnhanceService(&fakeChat{}, testLogger())

	_, err := svc.Enhance(context.Background(), "   ", "claude", "creative")
	if !apperr.Is(err, apperr.CodeMissingInput) {
		t.Errorf("expected MissingInput, got %v", err)
	}
}

func TestEnhance_TooShort(t *testing.T) {
	chat := &fakeChat{}
	svc := NewEnhanceService(chat, testLogger())

	_, err := svc.Enhance(context.Background(), "  hey  ", "claude", "creative")
	if !apperr.Is(err, apperr.CodeInputTooShort) {
		t.Errorf("expected InputTooShort, got %v", err)
	}
	if chat.calls != 0 {
		t.Errorf("chat must not be called on validation failure")
	}
}

func TestEnhance_ExactlyFiveCharsProceeds(t *testing.T) {
	chat := &fakeChat{reply: `{"enhancedPrompt":"p","summary":"s","suggestedFollowUps":[]}`}
	svc := NewEnhanceService(chat, testLogger())

	_, err := svc.Enhance(context.Background(), " abcde ", "claude", "creative")
	if err != nil {
		t.Fatalf("5 trimmed chars must proceed, got %v", err)
	}
	if chat.calls != 1 {
		t.Errorf("expected exactly one chat call, got %d", chat.calls)
	}
}

func TestEnhance_ValidJSONReply(t *testing.T) {
	chat := &fakeChat{reply: `{"enhancedPrompt":"Write a structured poem","summary":"Added structure","suggestedFollowUps":["a","b"]}`}
	svc := NewEnhanceService(chat, testLogger())

	res, err := svc.Enhance(context.Background(), "write a poem", "claude", "creative")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.EnhancedPrompt != "Write a structured poem" {
		t.Errorf("unexpected enhancedPrompt: %q", res.EnhancedPrompt)
	}
	if res.Summary != "Added structure" {
		t.Errorf("unexpected summary: %q", res.Summary)
	}
	if len(res.SuggestedFollowUps) != 2 || res.SuggestedFollowUps[0] != "a" || res.SuggestedFollowUps[1] != "b" {
		t.Errorf("unexpected followUps: %v", res.SuggestedFollowUps)
	}
	if res.OriginalText != "write a poem" {
		t.Errorf("expected original text echoed, got %q", res.OriginalText)
	}
	if res.TargetAgent != "claude" || res.PromptStyle != "creative" {
		t.Errorf("expected selectors echoed, got %q/%q", res.TargetAgent, res.PromptStyle)
	}
	if chat.temp != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", chat.temp)
	}
}

func TestEnhance_FencedJSONReply(t *testing.T) {
	chat := &fakeChat{reply: "```json\n{\"enhancedPrompt\":\"fenced\",\"summary\":\"s\",\"suggestedFollowUps\":[]}\n```"}
	svc := NewEnhanceService(chat, testLogger())

	res, err := svc.Enhance(context.Background(), "write a poem", "claude", "creative")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EnhancedPrompt != "fenced" {
		t.Errorf("expected fenced json parsed, got %q", res.EnhancedPrompt)
	}
}

func TestEnhance_MalformedReplyFallsBackToRaw(t *testing.T) {
	raw := "Here is your improved prompt: do the thing, but better."
	chat := &fakeChat{reply: raw}
	svc := NewEnhanceService(chat, testLogger())

	res, err := svc.Enhance(context.Background(), "write a poem", "claude", "creative")
	if err != nil {
		t.Fatalf("malformed reply is a degrade path, not an error: %v", err)
	}
	if res.EnhancedPrompt != raw {
		t.Errorf("expected raw reply as enhancedPrompt, got %q", res.EnhancedPrompt)
	}
	if res.Summary != "Prompt enhanced successfully" {
		t.Errorf("expected generic summary, got %q", res.Summary)
	}
	if res.SuggestedFollowUps == nil || len(res.SuggestedFollowUps) != 0 {
		t.Errorf("expected empty follow-up list, got %v", res.SuggestedFollowUps)
	}
}

func TestEnhance_FollowUpsNotAnArrayCoercedToEmpty(t *testing.T) {
	chat := &fakeChat{reply: `{"enhancedPrompt":"p","summary":"s","suggestedFollowUps":"oops"}`}
	svc := NewEnhanceService(chat, testLogger())

	res, err := svc.Enhance(context.Background(), "write a poem", "claude", "creative")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.SuggestedFollowUps) != 0 {
		t.Errorf("expected coerced empty list, got %v", res.SuggestedFollowUps)
	}
}

func TestEnhance_EmptyReplyIsError(t *testing.T) {
	chat := &fakeChat{reply: "   "}
	svc := NewEnhanceService(chat, testLogger())

	_, err := svc.Enhance(context.Background(), "write a poem", "claude", "creative")
	if !apperr.Is(err, apperr.CodeEnhancementFailed) {
		t.Errorf("expected EnhancementFailed, got %v", err)
	}
}

func TestEnhance_ChatErrorSurfaced(t *testing.T) {
	chat := &fakeChat{err: errors.New("zai chat http 500")}
	svc := NewEnhanceService(chat, testLogger())

	_, err := svc.Enhance(context.Background(), "write a poem", "claude", "creative")
	if !apperr.Is(err, apperr.CodeEnhancementFailed) {
		t.Fatalf("expected EnhancementFailed, got %v", err)
	}
	if !strings.Contains(apperr.Message(err), "zai chat http 500") {
		t.Errorf("expected upstream message, got %q", apperr.Message(err))
	}
}

func TestEnhance_AuthError(t *testing.T) {
	chat := &fakeChat{err: ports.ErrAuth}
	svc := NewEnhanceService(chat, testLogger())

	_, err := svc.Enhance(context.Background(), "write a poem", "claude", "creative")
	if !apperr.Is(err, apperr.CodeAuth) {
		t.Errorf("expected AuthError, got %v", err)
	}
}

func TestEnhance_UnknownSelectorsFallBack(t *testing.T) {
	chat := &fakeChat{reply: `{"enhancedPrompt":"p","summary":"s","suggestedFollowUps":[]}`}
	svc := NewEnhanceService(chat, testLogger())

	res, err := svc.Enhance(context.Background(), "write a poem", "unknown-agent", "unknown-style")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	system := chat.messages[0].Content
	if !strings.Contains(system, agentInstructions["general"]) {
		t.Error("expected general agent instruction in system prompt")
	}
	if !strings.Contains(system, styleInstructions["professional"]) {
		t.Error("expected professional style instruction in system prompt")
	}
	// селекторы в ответе отдаются как прислали
	if res.TargetAgent != "unknown-agent" || res.PromptStyle != "unknown-style" {
		t.Errorf("expected raw selectors echoed, got %q/%q", res.TargetAgent, res.PromptStyle)
	}
}

func TestEnhance_UserPromptEmbedsTextVerbatim(t *testing.T) {
	chat := &fakeChat{reply: `{"enhancedPrompt":"p","summary":"s","suggestedFollowUps":[]}`}
	svc := NewEnhanceService(chat, testLogger())

	text := "summarize my meeting notes\nwith line breaks"
	if _, err := svc.Enhance(context.Background(), text, "chatgpt", "professional"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(chat.messages[1].Content, text) {
		t.Error("expected original text embedded verbatim in user prompt")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}

	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
