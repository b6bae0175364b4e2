package validator_test

import (
	"html"
	"strings"
	"testing"

	"orderhub/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewValidator_ValidateRating(t *testing.T) {
	v := validator.NewReviewValidator()

	for r := 1; r <= 5; r++ {
		assert.NoError(t, v.ValidateRating(r))
	}
	for _, r := range []int{0, 6, -3} {
		assert.ErrorIs(t, v.ValidateRating(r), validator.ErrInvalidRating)
	}
}

func TestReviewValidator_NormalizeComment(t *testing.T) {
	v := validator.NewReviewValidator()

	cases := []struct {
		name string
		in   *string
		want *string
	}{
		{"nil", nil, nil},
		{"blank", ptr("   "), nil},
		{"plain", ptr("  good value  "), ptr("good value")},
		{"tags removed", ptr("<b>bold</b> text"), ptr("bold text")},
		{"script removed", ptr("<script>alert('x')</script>hello"), ptr("hello")},
		{"entities kept as text", ptr("5 < 6 & 7 > 2"), ptr("5 < 6 & 7 > 2")},
		{"only tags", ptr("<img src=x onerror=alert(1)>"), nil},
		{"escaped script removed", ptr("&lt;script&gt;alert(1)&lt;/script&gt; nice"), ptr("nice")},
		{"escaped tags removed", ptr("&lt;b&gt;bold&lt;/b&gt;"), ptr("bold")},
		{"double escaped script removed", ptr("&amp;lt;script&amp;gt;x&amp;lt;/script&amp;gt;ok"), ptr("ok")},
		{"escaped img removed", ptr("&lt;img src=x onerror=alert(1)&gt;"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := v.NormalizeComment(tc.in)
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

// 保存値をもう一度通しても変わらない（表示側で unescape されてもタグにならない）
func TestReviewValidator_NormalizeComment_Stable(t *testing.T) {
	v := validator.NewReviewValidator()

	inputs := []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&amp;amp;lt;b&amp;amp;gt;deep&amp;amp;lt;/b&amp;amp;gt;",
		"5 < 6 & 7 > 2",
		"<p>para</p>&lt;i&gt;x&lt;/i&gt;",
	}
	for _, in := range inputs {
		got, err := v.NormalizeComment(ptr(in))
		require.NoError(t, err, in)
		if got == nil {
			continue
		}
		assert.NotContains(t, *got, "<script")
		assert.NotContains(t, *got, "<b>")
		assert.NotContains(t, *got, "<i>")

		again, err := v.NormalizeComment(got)
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, *got, *again, in)
	}
}

func TestReviewValidator_NormalizeComment_TooDeeplyEscaped(t *testing.T) {
	v := validator.NewReviewValidator()

	in := "<b>x</b>"
	for i := 0; i < 10; i++ {
		in = html.EscapeString(in)
	}
	_, err := v.NormalizeComment(&in)
	assert.ErrorIs(t, err, validator.ErrCommentMarkup)
}

func TestReviewValidator_NormalizeComment_Length(t *testing.T) {
	v := validator.NewReviewValidator()

	ok := strings.Repeat("あ", 1000)
	got, err := v.NormalizeComment(&ok)
	require.NoError(t, err)
	assert.Equal(t, ok, *got)

	tooLong := strings.Repeat("a", 1001)
	_, err = v.NormalizeComment(&tooLong)
	assert.ErrorIs(t, err, validator.ErrCommentTooLong)
}

func ptr(s string) *string { return &s }
