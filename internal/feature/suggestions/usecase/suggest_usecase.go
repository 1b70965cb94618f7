// Package usecase はsuggestionsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"whisper_backend/internal/shared/ratelimiter"
)

const (
	// SuggestionPrompt は会話のきっかけとなる質問を生成する固定プロンプトです。
	// 3つの質問を'||'区切りの単一文字列として返すようモデルに指示します。
	SuggestionPrompt = "Create a list of three open-ended and engaging questions formatted as a single string. " +
		"Each question should be separated by '||'. These questions are for an anonymous " +
		"social messaging platform and should be suitable for a diverse audience. Avoid personal " +
		"or sensitive topics, focusing instead on universal themes that encourage friendly " +
		"interaction. For example, your output should be structured like this: " +
		"'What's a hobby you've recently started?||If you could have dinner with any historical " +
		"figure, who would it be?||What's a simple thing that makes you happy?'. Ensure the " +
		"questions are intriguing, foster curiosity, and contribute to a positive and welcoming " +
		"conversational environment."

	// suggestionDelimiter は候補同士を区切るデリミタです。
	suggestionDelimiter = "||"
)

// ErrNoSuggestions はモデルの応答から候補を1つも取り出せなかった場合に返されます。
var ErrNoSuggestions = errors.New("no suggestions generated")

// Suggester はプロンプトから候補文字列を生成するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Suggester interface {
	// Suggest はプロンプトからデリミタ区切りの候補文字列を生成します。
	Suggest(ctx context.Context, prompt string) (string, error)
}

// suggestUsecase はメッセージ候補生成のビジネスロジックを提供します。
// 外部AI APIの呼び出し頻度はレートリミッタで制限されます。
type suggestUsecase struct {
	suggester Suggester
	limiter   ratelimiter.RateLimiterInterface
}

// NewSuggestUsecase はsuggestUsecaseの新しいインスタンスを生成します。
func NewSuggestUsecase(s Suggester, limiter ratelimiter.RateLimiterInterface) *suggestUsecase {
	return &suggestUsecase{suggester: s, limiter: limiter}
}

// SuggestMessages は匿名メッセージの候補質問リストを生成します。
// 応答は'||'で分割され、空の要素は取り除かれます。
func (u *suggestUsecase) SuggestMessages(ctx context.Context) ([]string, error) {
	u.limiter.WaitIfNeeded()

	raw, err := u.suggester.Suggest(ctx, SuggestionPrompt)
	if err != nil {
		return nil, fmt.Errorf("suggester failed: %w", err)
	}

	parts := strings.Split(raw, suggestionDelimiter)
	suggestions := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			suggestions = append(suggestions, s)
		}
	}
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestions
	}
	return suggestions, nil
}
