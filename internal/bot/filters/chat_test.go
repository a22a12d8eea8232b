package filters

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"
)

func TestAllowMessage(t *testing.T) {
	f := NewChatFilter()
	group := telego.Chat{ID: -100, Type: "supergroup"}
	human := &telego.User{ID: 1, Username: "john"}

	assert.True(t, f.AllowMessage(&telego.Message{Chat: group, From: human}))
	assert.True(t, f.AllowMessage(&telego.Message{Chat: telego.Chat{ID: -5, Type: "group"}, From: human}))

	assert.False(t, f.AllowMessage(nil))
	assert.False(t, f.AllowMessage(&telego.Message{Chat: group}))
	assert.False(t, f.AllowMessage(&telego.Message{Chat: group, From: &telego.User{ID: 2, IsBot: true}}))
	assert.False(t, f.AllowMessage(&telego.Message{Chat: telego.Chat{ID: 1, Type: "private"}, From: human}))
	assert.False(t, f.AllowMessage(&telego.Message{Chat: telego.Chat{ID: -7, Type: "channel"}, From: human}))
}

func TestAllowReaction(t *testing.T) {
	f := NewChatFilter()
	group := telego.Chat{ID: -100, Type: "supergroup"}

	assert.True(t, f.AllowReaction(&telego.MessageReactionUpdated{Chat: group, User: &telego.User{ID: 1}}))

	assert.False(t, f.AllowReaction(nil))
	assert.False(t, f.AllowReaction(&telego.MessageReactionUpdated{Chat: group, ActorChat: &group}))
	assert.False(t, f.AllowReaction(&telego.MessageReactionUpdated{Chat: group, User: &telego.User{ID: 2, IsBot: true}}))
	assert.False(t, f.AllowReaction(&telego.MessageReactionUpdated{
		Chat: telego.Chat{ID: 1, Type: "private"}, User: &telego.User{ID: 1},
	}))
}
