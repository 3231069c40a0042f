package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSelector_Classification verifies that command-line tokens are
// classified into id, name, regexp and match-all selectors.
func TestParseSelector_Classification(t *testing.T) {
	tests := []struct {
		token string
		// matches/misses are (id, name) pairs probed against the selector.
		matches [][2]string
		misses  [][2]string
	}{
		{
			token:   "",
			matches: [][2]string{{"1", "Office"}, {"99", ""}},
		},
		{
			token:   "7",
			matches: [][2]string{{"7", "anything"}, {"07", "padded id"}},
			misses:  [][2]string{{"8", "7"}, {"x", "7"}},
		},
		{
			token:   "Office Window",
			matches: [][2]string{{"3", "office window"}, {"4", "OFFICE WINDOW"}},
			misses:  [][2]string{{"3", "Office"}, {"3", "Office Window 2"}},
		},
		{
			token:   "/^Entrance.*$/",
			matches: [][2]string{{"1", "Entrance spot"}, {"2", "entrance ceiling"}},
			misses:  [][2]string{{"1", "Main entrance"}},
		},
		{
			token:   "/office/",
			matches: [][2]string{{"1", "Office Window"}, {"2", "Back office"}},
			misses:  [][2]string{{"1", "Kitchen"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			sel, err := ParseSelector(tt.token)
			require.NoError(t, err)

			for _, m := range tt.matches {
				assert.True(t, sel.Matches(m[0], m[1]),
					"selector %q should match id=%q name=%q", tt.token, m[0], m[1])
			}
			for _, m := range tt.misses {
				assert.False(t, sel.Matches(m[0], m[1]),
					"selector %q should not match id=%q name=%q", tt.token, m[0], m[1])
			}
		})
	}
}

// TestParseSelector_InvalidRegexp verifies that a malformed regular
// expression is reported instead of degrading to a name match.
func TestParseSelector_InvalidRegexp(t *testing.T) {
	_, err := ParseSelector("/[unclosed/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selector regexp")
}

// TestSelector_IsAll verifies the match-everything selector is detected
// for both the empty token and the All value.
func TestSelector_IsAll(t *testing.T) {
	assert.True(t, All.IsAll())

	sel, err := ParseSelector("")
	require.NoError(t, err)
	assert.True(t, sel.IsAll())

	named, err := ParseSelector("kitchen")
	require.NoError(t, err)
	assert.False(t, named.IsAll())
}

// TestSelector_String verifies the diagnostic representation used in
// warnings keeps the original token.
func TestSelector_String(t *testing.T) {
	assert.Equal(t, "<all>", All.String())
	assert.Equal(t, "/Office.*/", MustSelector("/Office.*/").String())
	assert.Equal(t, "12", MustSelector("12").String())
}
