package validator

import (
	"errors"
	"html"
	"strings"
	"unicode/utf8"

	"orderhub/internal/usecase"

	"github.com/microcosm-cc/bluemonday"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000

	// エンティティの多重エンコードはこの回数まで剥がす
	maxSanitizePasses = 8
)

var (
	ErrInvalidRating  = errors.New("rating must be an integer between 1 and 5")
	ErrCommentTooLong = errors.New("comment must be at most 1000 characters")
	ErrCommentMarkup  = errors.New("comment contains unsupported markup")
)

type reviewValidator struct {
	policy *bluemonday.Policy
}

// Usecaseは interface を依存注入
func NewReviewValidator() usecase.ReviewValidator {
	return &reviewValidator{policy: bluemonday.StrictPolicy()}
}

func (v *reviewValidator) ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// HTMLタグは全部落としてプレーンテキストで保存する。空白だけなら nil（コメントなし）
func (v *reviewValidator) NormalizeComment(comment *string) (*string, error) {
	if comment == nil {
		return nil, nil
	}

	// 文字数は入力そのものでチェック
	if utf8.RuneCountInString(*comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	cleaned, err := v.plainText(*comment)
	if err != nil {
		return nil, err
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, nil
	}
	return &cleaned, nil
}

// &lt;script&gt; のようにエスケープされたタグは unescape 後にタグへ戻るので、
// 結果が変わらなくなるまで sanitize + unescape を繰り返す
func (v *reviewValidator) plainText(s string) (string, error) {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(v.policy.Sanitize(s))
		if next == s {
			return s, nil
		}
		s = next
	}
	return "", ErrCommentMarkup
}
