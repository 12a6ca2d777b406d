package chat

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Ayash-Bera/highlights/internal/highlights"
)

// Seconds prints a timestamp in its shortest form: 10, 10.5.
func Seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MatchHeadline is "Video #2 · [10s–20s] · score 0.500".
func MatchHeadline(m highlights.Match) string {
	return fmt.Sprintf("Video #%d · [%ss–%ss] · score %.3f", m.VideoID, Seconds(m.TSStartSec), Seconds(m.TSEndSec), m.Score)
}

// FormatMatch is the full display line of a match.
func FormatMatch(m highlights.Match) string {
	return MatchHeadline(m) + " · " + m.Summary()
}

// Render writes the view as plain text.
func Render(w io.Writer, v View) error {
	if v.Error != "" {
		if _, err := fmt.Fprintf(w, "Error: %s\n", v.Error); err != nil {
			return err
		}
	}

	if v.Answer != "" {
		if _, err := fmt.Fprintf(w, "Answer\n%s\n", v.Answer); err != nil {
			return err
		}
	}

	if len(v.Matches) > 0 {
		if v.Answer != "" {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "Matched Highlights\n"); err != nil {
			return err
		}
		for _, m := range v.Matches {
			if _, err := fmt.Fprintf(w, "  - %s\n", FormatMatch(m)); err != nil {
				return err
			}
		}
	}

	return nil
}
