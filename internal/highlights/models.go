package highlights

import (
	"encoding/json"
	"strings"

	"github.com/samber/mo"
)

// Request models
type QueryRequest struct {
	Question string `json:"question"`
}

// Response models
type AnswerResult struct {
	Answer  string  `json:"answer"`
	Matches []Match `json:"matches,omitempty"`
}

// Match is a scored segment of a source video returned for a question.
type Match struct {
	ID          int64             `json:"id"`
	VideoID     int64             `json:"video_id"`
	TSStartSec  float64           `json:"ts_start_sec"`
	TSEndSec    float64           `json:"ts_end_sec"`
	Score       float64           `json:"score"`
	Description string            `json:"description"`
	LLMSummary  mo.Option[string] `json:"-"`
}

// matchWire mirrors Match on the wire; llm_summary may be absent or null.
type matchWire struct {
	ID          int64   `json:"id"`
	VideoID     int64   `json:"video_id"`
	TSStartSec  float64 `json:"ts_start_sec"`
	TSEndSec    float64 `json:"ts_end_sec"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
	LLMSummary  *string `json:"llm_summary,omitempty"`
}

func (m *Match) UnmarshalJSON(data []byte) error {
	var w matchWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = Match{
		ID:          w.ID,
		VideoID:     w.VideoID,
		TSStartSec:  w.TSStartSec,
		TSEndSec:    w.TSEndSec,
		Score:       w.Score,
		Description: w.Description,
		LLMSummary:  mo.PointerToOption(w.LLMSummary),
	}
	return nil
}

func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(matchWire{
		ID:          m.ID,
		VideoID:     m.VideoID,
		TSStartSec:  m.TSStartSec,
		TSEndSec:    m.TSEndSec,
		Score:       m.Score,
		Description: m.Description,
		LLMSummary:  m.LLMSummary.ToPointer(),
	})
}

// Summary returns the preferred summary when the backend supplied a non-blank
// one, and the plain description otherwise.
func (m Match) Summary() string {
	if s, ok := m.LLMSummary.Get(); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return m.Description
}
