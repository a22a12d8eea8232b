package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralizeReposts(t *testing.T) {
	cases := map[int64]string{
		0:   "репостов",
		1:   "репост",
		2:   "репоста",
		4:   "репоста",
		5:   "репостов",
		11:  "репостов",
		12:  "репостов",
		21:  "репост",
		22:  "репоста",
		101: "репост",
		111: "репостов",
		-3:  "репоста",
	}
	for n, want := range cases {
		assert.Equal(t, want, PluralizeReposts(n), "n=%d", n)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "2 350", FormatNumber(2350))
	assert.Equal(t, "1 000 001", FormatNumber(1000001))
	assert.Equal(t, "-12 000", FormatNumber(-12000))
	assert.Equal(t, "3 репоста", FormatReposts(3))
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "1.5", FormatPoints(1.5))
	assert.Equal(t, "0.0", FormatPoints(-0.01))
	assert.Equal(t, "+2.0", FormatPointsDelta(2))
	assert.Equal(t, "-0.5", FormatPointsDelta(-0.5))
	assert.Equal(t, "1.5x", FormatWeight(1.5))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "@john", DisplayName("john", 42))
	assert.Equal(t, "@john", DisplayName("@john", 42))
	assert.Equal(t, "User 42", DisplayName("", 42))
	assert.Equal(t, "john", NormalizeUsername(" @john "))
}
