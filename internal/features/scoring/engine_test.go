package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTransferIsAsymmetric(t *testing.T) {
	tests := []struct {
		name          string
		reactorWeight float64
		ownerWeight   float64
		want          Transfer
	}{
		{"равные веса", 1, 1, Transfer{ReactorDelta: 1, OwnerDelta: -1}},
		{"тяжёлый реактор", 2, 1, Transfer{ReactorDelta: 1, OwnerDelta: -2}},
		{"тяжёлый автор", 1, 3, Transfer{ReactorDelta: 3, OwnerDelta: -1}},
		{"дробные веса", 0.5, 1.5, Transfer{ReactorDelta: 1.5, OwnerDelta: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTransfer(tt.reactorWeight, tt.ownerWeight))
		})
	}
}

func TestMessageEventBodyFallsBackToCaption(t *testing.T) {
	assert.Equal(t, "текст", MessageEvent{Text: "текст", Caption: "подпись"}.Body())
	assert.Equal(t, "подпись #repost", MessageEvent{Caption: "подпись #repost"}.Body())
}

func TestReactionEventHasEmoji(t *testing.T) {
	ev := ReactionEvent{Emojis: []string{"🔥", "👍"}}
	assert.True(t, ev.HasEmoji("👍"))
	assert.False(t, ev.HasEmoji("❤"))
	assert.False(t, ReactionEvent{}.HasEmoji("👍"))
}
