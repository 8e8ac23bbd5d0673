package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/internal/model"
)

type fakeAnswerer struct {
	answer string
	err    error
	called bool
	seen   []model.SourceInfo
}

func (f *fakeAnswerer) Generate(_ context.Context, _ string, sources []model.SourceInfo) (string, error) {
	f.called = true
	f.seen = sources
	return f.answer, f.err
}

type fakePublisher struct {
	exchanges []model.ChatExchange
}

func (f *fakePublisher) Publish(_ context.Context, exchange model.ChatExchange) error {
	f.exchanges = append(f.exchanges, exchange)
	return nil
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	service := NewChatService(newFakeIndex(), &fakeAnswerer{}, nil, 5)

	_, err := service.Ask(context.Background(), "   ", nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAskWithNoSourcesSkipsGenerator(t *testing.T) {
	answerer := &fakeAnswerer{answer: "should not be used"}
	service := NewChatService(newFakeIndex(), answerer, nil, 5)

	resp, err := service.Ask(context.Background(), "what is alpha?", nil, 0)
	require.NoError(t, err)

	assert.Equal(t, NoRelevantInfoAnswer, resp.Answer)
	assert.Empty(t, resp.Sources)
	assert.False(t, answerer.called, "generator must not run without grounding")
}

func TestAskReturnsGroundedAnswer(t *testing.T) {
	index := newFakeIndex()
	index.results = []model.SourceInfo{
		{DocumentID: "doc-1", DocumentName: "a.pdf", ChunkContent: "alpha beta", RelevanceScore: 0.9},
		{DocumentID: "doc-2", DocumentName: "b.pdf", ChunkContent: "gamma delta", RelevanceScore: 0.4},
	}
	answerer := &fakeAnswerer{answer: "Alpha is the first letter."}
	publisher := &fakePublisher{}
	service := NewChatService(index, answerer, publisher, 5)

	resp, err := service.Ask(context.Background(), "what is alpha?", nil, 0)
	require.NoError(t, err)

	assert.Equal(t, "Alpha is the first letter.", resp.Answer)
	require.Len(t, resp.Sources, 2)
	assert.Equal(t, "doc-1", resp.Sources[0].DocumentID)
	assert.Equal(t, index.results, answerer.seen, "ranked sources are the sole grounding context")
	assert.False(t, resp.Timestamp.IsZero())

	require.Len(t, publisher.exchanges, 1)
	assert.Equal(t, "what is alpha?", publisher.exchanges[0].Question)
	assert.Equal(t, 2, publisher.exchanges[0].SourceCount)
}

func TestAskDegradesOnGeneratorFailure(t *testing.T) {
	index := newFakeIndex()
	index.results = []model.SourceInfo{
		{DocumentID: "doc-1", DocumentName: "a.pdf", ChunkContent: "alpha", RelevanceScore: 0.8},
	}
	answerer := &fakeAnswerer{err: errors.New("llm timeout")}
	service := NewChatService(index, answerer, nil, 5)

	resp, err := service.Ask(context.Background(), "what is alpha?", nil, 0)
	require.NoError(t, err, "generator failure must not surface as an error")

	assert.Contains(t, resp.Answer, "llm timeout")
	assert.Empty(t, resp.Sources)
}

func TestAskHonorsTopKLimit(t *testing.T) {
	index := newFakeIndex()
	index.results = []model.SourceInfo{
		{DocumentID: "doc-1"}, {DocumentID: "doc-2"}, {DocumentID: "doc-3"},
	}
	service := NewChatService(index, &fakeAnswerer{answer: "ok"}, nil, 5)

	resp, err := service.Ask(context.Background(), "anything", nil, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Sources, 2)
}
