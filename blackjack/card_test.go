package blackjack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:     "ace king",
			input:    "As Kh",
			expected: []Card{{Rank: Ace, Suit: Spades}, {Rank: King, Suit: Hearts}},
		},
		{
			name:     "ten notations",
			input:    "10d,Tc",
			expected: []Card{{Rank: Ten, Suit: Diamonds}, {Rank: Ten, Suit: Clubs}},
		},
		{
			name:     "case insensitive",
			input:    "qd 7S",
			expected: []Card{{Rank: Queen, Suit: Diamonds}, {Rank: Seven, Suit: Spades}},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
		{
			name:    "invalid rank",
			input:   "Xs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "100s",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCard))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Equal(t, []Card{{Rank: Ace, Suit: Spades}}, MustParseCards("As"))
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardValueAndString(t *testing.T) {
	tests := []struct {
		card  Card
		value int
		str   string
	}{
		{NewCard(Ace, Spades), 11, "A♠"},
		{NewCard(Two, Hearts), 2, "2♥"},
		{NewCard(Ten, Diamonds), 10, "10♦"},
		{NewCard(Jack, Clubs), 10, "J♣"},
		{NewCard(Queen, Spades), 10, "Q♠"},
		{NewCard(King, Hearts), 10, "K♥"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.value, tt.card.Value())
			assert.Equal(t, tt.str, tt.card.String())
		})
	}

	assert.True(t, NewCard(Five, Hearts).IsRed())
	assert.False(t, NewCard(Five, Clubs).IsRed())
}

func TestCardCodeRoundTrip(t *testing.T) {
	for _, c := range BuildDeck() {
		parsed, err := ParseCard(c.Code())
		require.NoError(t, err, c.Code())
		assert.Equal(t, c, parsed)
	}
	assert.Equal(t, "Th", MustParseCards("10h")[0].Code())
	assert.Equal(t, "As", MustParseCards("as")[0].Code())
}
