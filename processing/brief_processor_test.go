package processing

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coreybb/boardroom/llm"
	"github.com/coreybb/boardroom/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply  string
	err    error
	calls  atomic.Int32
	prompt llm.Prompt
}

func (f *fakeCompleter) Complete(ctx context.Context, p llm.Prompt) (string, error) {
	f.calls.Add(1)
	f.prompt = p
	return f.reply, f.err
}

func (f *fakeCompleter) Model() string { return "fake-model" }

func replyFor(t *testing.T, items ...models.BriefItem) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{"items": items})
	require.NoError(t, err)
	return string(b)
}

func newProcessor(c llm.Completer, cacheSize int) *BriefProcessor {
	return NewBriefProcessor(c, BriefOptions{
		CacheSize: cacheSize,
		CacheTTL:  time.Minute,
		Now:       func() time.Time { return fixedNow },
	})
}

func TestGenerate_FourInTwoBack(t *testing.T) {
	inputs := fourInputs()
	fake := &fakeCompleter{reply: "```json\n" + replyFor(t,
		models.BriefItem{Title: inputs[0].Title, Theme: "Policy & Trade", Priority: "High", Region: "EU", Category: "regulations"},
		models.BriefItem{Title: inputs[2].Title, Theme: "Competitors/Finance/Governance", Priority: "Low", Region: "USA", Category: "competitors"},
	) + "\n```"}

	out, err := newProcessor(fake, 0).Generate(context.Background(), inputs, models.FilterSelection{Categories: []string{"Regulations"}})
	require.NoError(t, err)
	require.Len(t, out, 4)

	placeholders := 0
	for _, item := range out {
		if item.Theme == models.ThemeGeneralNews {
			assert.Equal(t, models.PriorityMedium, item.Priority)
			placeholders++
		}
	}
	assert.Equal(t, 2, placeholders)

	assert.InDelta(t, DefaultTemperature, fake.prompt.Temperature, 1e-9)
	assert.Equal(t, DefaultMaxTokens, fake.prompt.MaxTokens)
	assert.Contains(t, fake.prompt.System, "exactly 4 items")
	assert.Contains(t, fake.prompt.System, "Regulations & Compliance")
	assert.Contains(t, fake.prompt.User, inputs[3].Title)
}

func TestGenerate_LLMErrorDegrades(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("openai API 500")}
	out, err := newProcessor(fake, 0).Generate(context.Background(), fourInputs(), models.FilterSelection{})
	require.NoError(t, err)
	require.Len(t, out, 4)
	for _, item := range out {
		assert.Equal(t, PlaceholderWhyItMatters, item.WhyItMatters)
	}
}

func TestGenerate_GarbageReplyDegrades(t *testing.T) {
	fake := &fakeCompleter{reply: "Sorry, I can't help with that."}
	out, err := newProcessor(fake, 0).Generate(context.Background(), fourInputs(), models.FilterSelection{})
	require.NoError(t, err)
	assert.Len(t, out, 4)
}

func TestGenerate_NoLLM(t *testing.T) {
	out, err := newProcessor(nil, 0).Generate(context.Background(), fourInputs()[:1], models.FilterSelection{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.CategoryGeneral, out[0].Category)
}

func TestGenerate_EmptyInput(t *testing.T) {
	_, err := newProcessor(nil, 0).Generate(context.Background(), nil, models.FilterSelection{})
	assert.ErrorIs(t, err, ErrNoInputItems)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake := &fakeCompleter{err: context.Canceled}
	_, err := newProcessor(fake, 0).Generate(ctx, fourInputs(), models.FilterSelection{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_CachesByPrompt(t *testing.T) {
	inputs := fourInputs()[:1]
	fake := &fakeCompleter{reply: replyFor(t, models.BriefItem{Title: inputs[0].Title, Priority: "High"})}
	bp := newProcessor(fake, 8)

	first, err := bp.Generate(context.Background(), inputs, models.FilterSelection{})
	require.NoError(t, err)
	second, err := bp.Generate(context.Background(), inputs, models.FilterSelection{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fake.calls.Load())

	_, err = bp.Generate(context.Background(), inputs, models.FilterSelection{Regions: []string{"eu"}})
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.calls.Load())
}

func TestGenerate_PlaceholderOnlyBriefsAreNotCached(t *testing.T) {
	fake := &fakeCompleter{reply: `{"items":[]}`}
	bp := newProcessor(fake, 8)
	inputs := fourInputs()[:1]

	_, _ = bp.Generate(context.Background(), inputs, models.FilterSelection{})
	_, _ = bp.Generate(context.Background(), inputs, models.FilterSelection{})
	assert.Equal(t, int32(2), fake.calls.Load())
}
