package common

// Command: разобранная команда бота вместе с контекстом сообщения.
type Command struct {
	Name string   // Имя команды без префикса и @botname, в нижнем регистре
	Args []string // Аргументы через пробел

	ChatID    int64
	ChatTitle string
	IsPrivate bool // Личка с ботом

	UserID   int64
	Username string

	MessageID int
	ThreadID  int64 // Тема форума (0 = вне темы)
}

// Arg возвращает i-й аргумент или "".
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
