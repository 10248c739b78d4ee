// Package speech turns recorded symptom descriptions into transcripts.
// The transcript is handed verbatim to the assessor; screening treats
// typed and spoken input identically.
package speech

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// SupportedLocales are the speech-input locales the intake UI offers.
// Locales without catalog phrases or message translations (ta, kn, ml)
// still transcribe; their reports fall back to the English message.
var SupportedLocales = []string{"en-IN", "hi-IN", "te-IN", "ta-IN", "kn-IN", "ml-IN"}

// Transcriber transcribes audio files via the Whisper API.
type Transcriber struct {
	client *openai.Client
	model  string
}

// NewTranscriber creates a transcriber. The model defaults to whisper-1.
func NewTranscriber(apiKey, model string) (*Transcriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("speech transcription requires an API key")
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &Transcriber{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Transcribe converts the audio file at path into text. locale is a
// speech-input locale such as "te-IN"; its base language is passed to
// the API as a hint.
func (t *Transcriber) Transcribe(ctx context.Context, path, locale string) (string, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: path,
		Language: BaseLanguage(locale),
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", path, err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// BaseLanguage reduces a speech locale to its language code:
// "te-IN" -> "te". Already-bare codes pass through unchanged.
func BaseLanguage(locale string) string {
	lang, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(strings.TrimSpace(lang))
}
