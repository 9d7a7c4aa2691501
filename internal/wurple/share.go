// internal/wurple/share.go
//
// Shareable output for finished games.
// Responsibilities:
//   - ShareText: emoji grid, long runs collapsed, rating line for challenge wins.
//   - TargetSVG: the target color as a small SVG swatch.

package wurple

import (
	"fmt"
	"strings"
)

var tileEmoji = map[TileStatus]string{
	TileCorrect: "🟩",
	TilePresent: "🟨",
	TileAbsent:  "⬛",
}

// ShareOptions feeds ShareText.
type ShareOptions struct {
	Date    string
	Mode    Mode
	Status  Status
	Max     *int
	History []GuessFeedback
	GameURL string
}

// ShareText renders the spoiler-free result grid players paste elsewhere.
// Histories longer than six rows keep the first and last three.
func ShareText(o ShareOptions) string {
	modeLabel := string(o.Mode)
	if modeLabel != "" {
		modeLabel = strings.ToUpper(modeLabel[:1]) + modeLabel[1:]
	}

	var header string
	if o.Max != nil {
		attempts := "X"
		if o.Status == StatusWon {
			attempts = fmt.Sprint(len(o.History))
		}
		header = fmt.Sprintf("Wurple %s (%s) %s/%d", o.Date, modeLabel, attempts, *o.Max)
	} else {
		header = fmt.Sprintf("Wurple %s (%s) %d guesses", o.Date, modeLabel, len(o.History))
	}

	rows := make([]string, 0, len(o.History))
	for _, fb := range o.History {
		if len(fb.Tiles) == 0 {
			continue
		}
		var b strings.Builder
		for _, t := range fb.Tiles {
			b.WriteString(tileEmoji[t])
		}
		rows = append(rows, b.String())
	}
	if len(o.History) > 6 && len(rows) >= 6 {
		more := fmt.Sprintf("... (%d more)", len(o.History)-6)
		rows = append(append(append([]string{}, rows[:3]...), more), rows[len(rows)-3:]...)
	}

	var b strings.Builder
	b.WriteString(header)
	if o.Status == StatusWon && o.Mode == ModeChallenge {
		b.WriteString("\nRating: ")
		b.WriteString(challengeRating(len(o.History)))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	if o.GameURL != "" {
		b.WriteString("\n\n")
		b.WriteString(o.GameURL)
	}
	return b.String()
}

func challengeRating(guesses int) string {
	switch {
	case guesses <= 5:
		return "Chromatic Savant 🧠✨"
	case guesses <= 8:
		return "Color Whisperer 🎯"
	case guesses <= 12:
		return "Dialed In 🔥"
	case guesses <= 18:
		return "Steady Solver 🧩"
	case guesses <= 30:
		return "Persistent 💪"
	case guesses <= 50:
		return "Unstoppable 🏃"
	}
	return "You Refused to Quit 🫡"
}

// TargetSVG renders the color swatch players are guessing.
// hex must already be validated; it is interpolated verbatim.
func TargetSVG(hex string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100">
  <rect x="0" y="0" width="200" height="100" fill="#` + hex + `" />
</svg>`
}
