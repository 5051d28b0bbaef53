package moderation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	blackWord = regexp.MustCompile(`(?i)\bblack\b`) //nolint:gochecknoglobals
	whiteWord = regexp.MustCompile(`(?i)\bwhite\b`) //nolint:gochecknoglobals
)

// SanitizeNote trims the note and replaces each whole word "black" or "white", in any case, with the
// player id playing that colour so the note stays unambiguous if colours are later swapped or relabeled.
// Each colour is replaced in a single pass. A zero player id means the player is unknown, that colour is then
// left as written rather than replaced with "player 0".
func SanitizeNote(note string, engine EngineConfig) string {
	note = strings.TrimSpace(note)
	note = replaceColour(note, blackWord, engine.Players.Black.ID)

	return replaceColour(note, whiteWord, engine.Players.White.ID)
}

func replaceColour(note string, word *regexp.Regexp, playerID int64) string {
	if playerID <= 0 {
		return note
	}

	return word.ReplaceAllLiteralString(note, "player "+strconv.FormatInt(playerID, 10))
}
