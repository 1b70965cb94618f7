// Package gemini はGoogle Gemini APIを使用したメッセージ候補生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"whisper_backend/internal/feature/suggestions/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiSuggester はGoogle Gemini APIを使用してメッセージ候補を生成します。
type GeminiSuggester struct {
	client *genai.Client
	model  string
}

// GeminiSuggesterがSuggesterを実装していることをコンパイル時に検証します。
var _ usecase.Suggester = (*GeminiSuggester)(nil)

// NewGeminiSuggester はADCを使用してGeminiSuggesterの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiSuggester(ctx context.Context) (*GeminiSuggester, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSuggester{client: client, model: DefaultModel}, nil
}

// Suggest はプロンプトからデリミタ区切りの候補文字列を生成します。
func (g *GeminiSuggester) Suggest(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
