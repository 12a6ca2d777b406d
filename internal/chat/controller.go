package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Ayash-Bera/highlights/internal/highlights"
)

var (
	// ErrEmptyQuery is returned when Submit is called with a blank query.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrInFlight is returned when Submit is called while a request is pending.
	ErrInFlight = errors.New("a question is already being answered")
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSettled:
		return "settled"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "loading":
		*s = StateLoading
	case "settled":
		*s = StateSettled
	default:
		return fmt.Errorf("unknown state %q", text)
	}
	return nil
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	default:
		return "none"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*o = OutcomeNone
	case "success":
		*o = OutcomeSuccess
	case "error":
		*o = OutcomeError
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// Asker answers a single question.
type Asker interface {
	Ask(ctx context.Context, question string) (*highlights.AnswerResult, error)
}

// Controller holds the transient state of one question box.
type Controller struct {
	asker Asker

	mu      sync.Mutex
	query   string
	answer  string
	matches []highlights.Match
	loading bool
	errText string
	state   State
	outcome Outcome
}

func NewController(asker Asker) *Controller {
	return &Controller{asker: asker}
}

func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}

// CanSubmit mirrors the submit control: enabled only for a non-blank query
// while nothing is in flight.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Controller) canSubmitLocked() bool {
	return !c.loading && strings.TrimSpace(c.query) != ""
}

// Submit sends the current query and settles the controller with the outcome.
// The returned error is the backend failure, already reflected in View.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrInFlight
	}
	if strings.TrimSpace(c.query) == "" {
		c.mu.Unlock()
		return ErrEmptyQuery
	}
	question := c.query
	c.errText = ""
	c.loading = true
	c.state = StateLoading
	c.mu.Unlock()

	settled := false
	defer func() {
		if settled {
			return
		}
		// The asker panicked; leave the box usable.
		c.mu.Lock()
		c.loading = false
		c.state = StateSettled
		c.outcome = OutcomeError
		c.errText = "Error"
		c.answer = ""
		c.matches = nil
		c.mu.Unlock()
	}()

	res, err := c.asker.Ask(ctx, question)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.state = StateSettled
	settled = true

	if err != nil {
		c.outcome = OutcomeError
		c.errText = err.Error()
		if c.errText == "" {
			c.errText = "Error"
		}
		c.answer = ""
		c.matches = nil
		return err
	}

	c.outcome = OutcomeSuccess
	c.answer = ""
	c.matches = nil
	if res != nil {
		c.answer = res.Answer
		c.matches = append([]highlights.Match(nil), res.Matches...)
	}
	return nil
}

// View is an immutable snapshot for rendering.
type View struct {
	Query       string             `json:"query"`
	Answer      string             `json:"answer"`
	Matches     []highlights.Match `json:"matches"`
	Loading     bool               `json:"loading"`
	Error       string             `json:"error,omitempty"`
	State       State              `json:"state"`
	Outcome     Outcome            `json:"outcome"`
	CanSubmit   bool               `json:"can_submit"`
	ButtonLabel string             `json:"button_label"`
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	label := "Ask"
	if c.loading {
		label = "Searching..."
	}

	matches := make([]highlights.Match, len(c.matches))
	copy(matches, c.matches)

	return View{
		Query:       c.query,
		Answer:      c.answer,
		Matches:     matches,
		Loading:     c.loading,
		Error:       c.errText,
		State:       c.state,
		Outcome:     c.outcome,
		CanSubmit:   c.canSubmitLocked(),
		ButtonLabel: label,
	}
}
