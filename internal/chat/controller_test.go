package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Ayash-Bera/highlights/internal/highlights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAsker struct {
	mu        sync.Mutex
	questions []string
	result    *highlights.AnswerResult
	err       error
	block     chan struct{}
	started   chan struct{}
	panicWith interface{}
}

func (f *fakeAsker) Ask(ctx context.Context, question string) (*highlights.AnswerResult, error) {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.result, f.err
}

func (f *fakeAsker) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.questions...)
}

func sampleResult() *highlights.AnswerResult {
	return &highlights.AnswerResult{
		Answer: "A",
		Matches: []highlights.Match{
			{ID: 1, VideoID: 2, TSStartSec: 10, TSEndSec: 20, Score: 0.5, Description: "d"},
		},
	}
}

func TestController_InitialView(t *testing.T) {
	c := NewController(&fakeAsker{})
	v := c.View()

	assert.Equal(t, StateIdle, v.State)
	assert.Equal(t, OutcomeNone, v.Outcome)
	assert.False(t, v.Loading)
	assert.False(t, v.CanSubmit)
	assert.Equal(t, "Ask", v.ButtonLabel)
	assert.Empty(t, v.Matches)
}

func TestController_SubmitSuccess(t *testing.T) {
	asker := &fakeAsker{result: sampleResult()}
	c := NewController(asker)
	c.SetQuery("What happened after the person got out of the car?")
	require.True(t, c.CanSubmit())

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []string{"What happened after the person got out of the car?"}, asker.calls())
	v := c.View()
	assert.Equal(t, StateSettled, v.State)
	assert.Equal(t, OutcomeSuccess, v.Outcome)
	assert.False(t, v.Loading)
	assert.Empty(t, v.Error)
	assert.Equal(t, "A", v.Answer)
	require.Len(t, v.Matches, 1)
	assert.Equal(t, "Video #2 · [10s–20s] · score 0.500 · d", FormatMatch(v.Matches[0]))
}

func TestController_SubmitSendsUntrimmedQuery(t *testing.T) {
	asker := &fakeAsker{result: &highlights.AnswerResult{Answer: "x"}}
	c := NewController(asker)
	c.SetQuery("  padded  ")

	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, []string{"  padded  "}, asker.calls())
}

func TestController_SubmitEmptyQuery(t *testing.T) {
	asker := &fakeAsker{result: sampleResult()}
	c := NewController(asker)

	for _, q := range []string{"", "   ", "\n\t"} {
		c.SetQuery(q)
		assert.False(t, c.CanSubmit())
		assert.ErrorIs(t, c.Submit(context.Background()), ErrEmptyQuery)
	}

	assert.Empty(t, asker.calls())
	assert.Equal(t, StateIdle, c.View().State)
}

func TestController_MissingMatches(t *testing.T) {
	c := NewController(&fakeAsker{result: &highlights.AnswerResult{Answer: "only text"}})
	c.SetQuery("q?")

	require.NoError(t, c.Submit(context.Background()))

	v := c.View()
	assert.Equal(t, "only text", v.Answer)
	assert.NotNil(t, v.Matches)
	assert.Empty(t, v.Matches)
}

func TestController_SubmitErrorClearsResults(t *testing.T) {
	asker := &fakeAsker{result: sampleResult()}
	c := NewController(asker)
	c.SetQuery("first")
	require.NoError(t, c.Submit(context.Background()))
	require.Equal(t, "A", c.View().Answer)

	asker.result = nil
	asker.err = &highlights.RequestError{StatusCode: 500, Body: "boom"}
	c.SetQuery("second")

	err := c.Submit(context.Background())
	require.Error(t, err)

	v := c.View()
	assert.Equal(t, OutcomeError, v.Outcome)
	assert.Contains(t, v.Error, "500")
	assert.Contains(t, v.Error, "boom")
	assert.Empty(t, v.Answer)
	assert.Empty(t, v.Matches)
	assert.False(t, v.Loading)
}

func TestController_ErrorWithoutMessage(t *testing.T) {
	c := NewController(&fakeAsker{err: errors.New("")})
	c.SetQuery("q")

	require.Error(t, c.Submit(context.Background()))
	assert.Equal(t, "Error", c.View().Error)
}

func TestController_SuccessClearsPreviousError(t *testing.T) {
	asker := &fakeAsker{err: errors.New("dial tcp: connection refused")}
	c := NewController(asker)
	c.SetQuery("q")
	require.Error(t, c.Submit(context.Background()))
	require.NotEmpty(t, c.View().Error)

	asker.err = nil
	asker.result = sampleResult()
	require.NoError(t, c.Submit(context.Background()))

	v := c.View()
	assert.Empty(t, v.Error)
	assert.Equal(t, "A", v.Answer)
}

func TestController_LoadingWhileInFlight(t *testing.T) {
	asker := &fakeAsker{
		result:  sampleResult(),
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	c := NewController(asker)
	c.SetQuery("slow question")

	done := make(chan error, 1)
	go func() {
		done <- c.Submit(context.Background())
	}()
	<-asker.started

	v := c.View()
	assert.True(t, v.Loading)
	assert.Equal(t, StateLoading, v.State)
	assert.False(t, v.CanSubmit)
	assert.Equal(t, "Searching...", v.ButtonLabel)

	// A second submission while loading never reaches the backend.
	assert.ErrorIs(t, c.Submit(context.Background()), ErrInFlight)

	close(asker.block)
	require.NoError(t, <-done)

	v = c.View()
	assert.False(t, v.Loading)
	assert.True(t, v.CanSubmit)
	assert.Equal(t, "Ask", v.ButtonLabel)
	assert.Len(t, asker.calls(), 1)
}

func TestController_PanicClearsLoading(t *testing.T) {
	c := NewController(&fakeAsker{panicWith: "renderer exploded"})
	c.SetQuery("q")

	assert.Panics(t, func() {
		_ = c.Submit(context.Background())
	})

	v := c.View()
	assert.False(t, v.Loading)
	assert.Equal(t, StateSettled, v.State)
	assert.True(t, v.CanSubmit)
}

func TestController_RepeatedQueryIsIdempotent(t *testing.T) {
	asker := &fakeAsker{result: sampleResult()}
	c := NewController(asker)
	c.SetQuery("same")

	require.NoError(t, c.Submit(context.Background()))
	first := c.View()
	require.NoError(t, c.Submit(context.Background()))
	second := c.View()

	assert.Equal(t, first, second)
	assert.Len(t, second.Matches, 1)
	assert.Len(t, asker.calls(), 2)
}

func TestController_ViewIsSnapshot(t *testing.T) {
	c := NewController(&fakeAsker{result: sampleResult()})
	c.SetQuery("q")
	require.NoError(t, c.Submit(context.Background()))

	v := c.View()
	v.Matches[0].Description = "mutated"

	assert.Equal(t, "d", c.View().Matches[0].Description)
}
