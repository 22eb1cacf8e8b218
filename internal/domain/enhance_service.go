package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voicescribe/internal/apperr"
	"github.com/Vovarama1992/voicescribe/internal/ports"
)

const minEnhanceLength = 5

const enhanceTemperature = 0.7

type EnhanceResult struct {
	EnhancedPrompt     string    `json:"enhancedPrompt"`
	Summary            string    `json:"summary"`
	SuggestedFollowUps []string  `json:"suggestedFollowUps"`
	OriginalText       string    `json:"originalText"`
	TargetAgent        string    `json:"targetAgent"`
	PromptStyle        string    `json:"promptStyle"`
	Timestamp          time.Time `json:"timestamp"`
}

type EnhanceService struct {
	chat ports.ChatService
	log  *logger.ZapLogger
}

func NewEnhanceService(chat ports.ChatService, log *logger.ZapLogger) *EnhanceService {
	return &EnhanceService{chat: chat, log: log}
}

// Enhance превращает сырой текст в готовый промпт под конкретного агента.
// Один вызов LLM, без ретраев: пользователь ждёт, быстрее отдать ошибку.
func (s *EnhanceService) Enhance(
	ctx context.Context,
	text, targetAgent, promptStyle string,
) (*EnhanceResult, error) {

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperr.MissingInput("No text provided for enhancement")
	}
	if utf8.RuneCountInString(trimmed) < minEnhanceLength {
		return nil, apperr.InputTooShort("Text is too short to enhance (minimum 5 characters)")
	}

	messages := []ports.ChatMessage{
		{Role: "system", Content: buildSystemPrompt(targetAgent, promptStyle)},
		{Role: "user", Content: buildUserPrompt(text, targetAgent, promptStyle)},
	}

	content, err := s.chat.Complete(ctx, messages, enhanceTemperature)
	if err != nil {
		if errors.Is(err, ports.ErrAuth) {
			return nil, apperr.Auth("AI service rejected the credentials").WithCause(err)
		}
		return nil, apperr.EnhancementFailed("AI service error: " + err.Error()).WithCause(err)
	}

	if strings.TrimSpace(content) == "" {
		return nil, apperr.EnhancementFailed("Empty response from AI service")
	}

	result := &EnhanceResult{
		OriginalText: text,
		TargetAgent:  targetAgent,
		PromptStyle:  promptStyle,
		Timestamp:    time.Now().UTC(),
	}

	parsed, ok := parseEnhanceReply(content)
	if !ok {
		// модель ответила прозой вместо JSON — отдаём как есть, это не ошибка
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "enhancement reply is not json, using raw content",
		})
		result.EnhancedPrompt = content
		result.Summary = "Prompt enhanced successfully"
		result.SuggestedFollowUps = []string{}
		return result, nil
	}

	result.EnhancedPrompt = parsed.EnhancedPrompt
	if result.EnhancedPrompt == "" {
		result.EnhancedPrompt = text
	}
	result.Summary = parsed.Summary
	if result.Summary == "" {
		result.Summary = "Prompt enhanced successfully"
	}
	result.SuggestedFollowUps = parsed.followUps()

	return result, nil
}

type enhanceReply struct {
	EnhancedPrompt     string          `json:"enhancedPrompt"`
	Summary            string          `json:"summary"`
	SuggestedFollowUps json.RawMessage `json:"suggestedFollowUps"`
}

// followUps: всё, что не массив строк, схлопывается в пустой список.
func (r *enhanceReply) followUps() []string {
	if len(r.SuggestedFollowUps) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(r.SuggestedFollowUps, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func parseEnhanceReply(content string) (*enhanceReply, bool) {
	jsonStr := stripCodeFence(content)

	var reply enhanceReply
	if err := json.Unmarshal([]byte(jsonStr), &reply); err != nil {
		return nil, false
	}
	return &reply, true
}

// stripCodeFence срезает маркдаун-обёртку ```json ... ```, если модель её добавила.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.ReplaceAll(s, "```json\n", "")
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```\n", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

var agentInstructions = map[string]string{
	"chatgpt":    "Optimize for ChatGPT - use clear, structured prompts with specific instructions. Break complex tasks into steps.",
	"claude":     "Optimize for Claude - use natural language, provide context and examples. Claude works well with detailed instructions.",
	"gemini":     "Optimize for Gemini - be concise and direct. Use bullet points for multiple requirements.",
	"copilot":    "Optimize for GitHub Copilot - use code comments style, specific technical requirements.",
	"midjourney": "Optimize for Midjourney - focus on visual descriptions, artistic style, lighting, and composition.",
	"dalle":      "Optimize for DALL-E - describe the image clearly with style, mood, and details.",
	"general":    "Create a versatile prompt that works well across different AI systems.",
}

var styleInstructions = map[string]string{
	"creative":       "Make the prompt creative and imaginative. Encourage unique and innovative responses.",
	"professional":   "Make the prompt professional and business-oriented. Focus on clarity and actionable outputs.",
	"technical":      "Make the prompt technical and precise. Include specific requirements and constraints.",
	"educational":    "Make the prompt educational and explanatory. Structure it for learning and understanding.",
	"conversational": "Make the prompt conversational and natural. Sound like talking to a helpful assistant.",
}

func agentInstruction(agent string) string {
	if instr, ok := agentInstructions[agent]; ok {
		return instr
	}
	return agentInstructions["general"]
}

func styleInstruction(style string) string {
	if instr, ok := styleInstructions[style]; ok {
		return instr
	}
	return styleInstructions["professional"]
}

func buildSystemPrompt(targetAgent, promptStyle string) string {
	return fmt.Sprintf(`You are an expert prompt engineer who transforms raw text into highly effective prompts for AI systems. Your task is to enhance the given text into a well-structured, optimized prompt.

Guidelines for enhancement:
1. %s
2. %s
3. Create the prompt in English.
4. Preserve the core intent and meaning of the original text
5. Add necessary context and clarity
6. Structure the prompt for optimal AI understanding
7. Remove filler words and improve clarity

IMPORTANT: Respond ONLY with valid JSON, no markdown formatting. Use this exact format:
{
  "enhancedPrompt": "the enhanced prompt text here",
  "summary": "brief explanation of what was improved",
  "suggestedFollowUps": ["suggested follow-up prompt 1", "suggested follow-up prompt 2"]
}`, agentInstruction(targetAgent), styleInstruction(promptStyle))
}

func buildUserPrompt(text, targetAgent, promptStyle string) string {
	return fmt.Sprintf(`Transform this text into an optimized prompt for %s:

Original Text:
"""
%s
"""

Target AI Agent: %s
Preferred Style: %s`, targetAgent, text, targetAgent, promptStyle)
}
