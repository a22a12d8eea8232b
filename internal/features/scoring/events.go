package scoring

// MessageEvent: новое сообщение в группе, уже разобранное транспортом.
type MessageEvent struct {
	ChatID         int64
	MessageID      int64
	ThreadID       int64 // 0 = вне темы форума
	AuthorID       int64 // Telegram ID автора
	AuthorUsername string
	Text           string
	Caption        string
}

// Body возвращает текст сообщения или подпись к медиа.
func (e MessageEvent) Body() string {
	if e.Text != "" {
		return e.Text
	}
	return e.Caption
}

// ReactionEvent: пользователь поставил реакции на сообщение.
type ReactionEvent struct {
	ChatID          int64
	MessageID       int64
	ReactorID       int64 // Telegram ID поставившего реакцию
	ReactorUsername string
	Emojis          []string // Новые (после изменения) эмодзи-реакции
}

// HasEmoji проверяет, что среди новых реакций есть emoji.
func (e ReactionEvent) HasEmoji(emoji string) bool {
	for _, got := range e.Emojis {
		if got == emoji {
			return true
		}
	}
	return false
}
