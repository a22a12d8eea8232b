package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHashtag(t *testing.T) {
	assert.NoError(t, ValidateHashtag("#repost"))
	assert.NoError(t, ValidateHashtag("#репост"))
	assert.NoError(t, ValidateHashtag("#"+strings.Repeat("я", 63)))
	for _, bad := range []string{"repost", "#", "#two words", "#tab\there", "#" + strings.Repeat("a", 64)} {
		assert.ErrorIs(t, ValidateHashtag(bad), ErrInvalidHashtag, bad)
	}
}

func TestValidateEmoji(t *testing.T) {
	assert.NoError(t, ValidateEmoji("👍"))
	assert.ErrorIs(t, ValidateEmoji(""), ErrInvalidEmoji)
	assert.ErrorIs(t, ValidateEmoji("👍 👍"), ErrInvalidEmoji)
	assert.ErrorIs(t, ValidateEmoji(strings.Repeat("👍", 9)), ErrInvalidEmoji)
}
