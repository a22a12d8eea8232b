package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsAreOrdered(t *testing.T) {
	for i, m := range Migrations {
		assert.Equal(t, i+1, m.Version, m.Name)
		assert.NotEmpty(t, m.SQL, m.Name)
	}
}

func TestReactionPairIsUniqueInSchema(t *testing.T) {
	assert.Contains(t, migration006Reactions, "UNIQUE (post_id, reactor_user_id)")
	assert.Contains(t, migration005Posts, "UNIQUE (chat_id, message_id)")
	assert.Contains(t, migration004ChatUsers, "CHECK (weight > 0)")
}
