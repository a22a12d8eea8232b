// Package common: validate.go проверяет хэштег и реакцию-подтверждение.
// Одни и те же правила действуют для дефолтов из конфигурации и для переопределений чата.
package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxHashtagLen = 64
	MaxEmojiBytes = 32 // размер колонки reaction_emoji
)

// ValidateHashtag: начинается с #, без пробелов, не длиннее 64 символов.
func ValidateHashtag(hashtag string) error {
	n := utf8.RuneCountInString(hashtag)
	if !strings.HasPrefix(hashtag, "#") || n < 2 || n > MaxHashtagLen {
		return ErrInvalidHashtag
	}
	if strings.IndexFunc(hashtag, unicode.IsSpace) >= 0 {
		return ErrInvalidHashtag
	}
	return nil
}

// ValidateEmoji: непустая строка без пробелов, влезающая в колонку reaction_emoji.
func ValidateEmoji(emoji string) error {
	if emoji == "" || len(emoji) > MaxEmojiBytes || strings.IndexFunc(emoji, unicode.IsSpace) >= 0 {
		return ErrInvalidEmoji
	}
	return nil
}
