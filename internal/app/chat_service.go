package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"docuchat/internal/model"
)

const defaultTopK = 5

// NoRelevantInfoAnswer is returned without consulting the answer generator
// when retrieval finds nothing; answering from no grounding invites
// hallucination.
const NoRelevantInfoAnswer = "I couldn't find any relevant information in the uploaded documents to answer your question. Please make sure you have uploaded relevant PDF documents."

// ChatService converts a question into ranked source passages and hands
// them to the answer generator.
type ChatService struct {
	index     VectorIndex
	answerer  AnswerGenerator
	publisher ExchangePublisher // optional
	topK      int
}

func NewChatService(index VectorIndex, answerer AnswerGenerator, publisher ExchangePublisher, topK int) *ChatService {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &ChatService{
		index:     index,
		answerer:  answerer,
		publisher: publisher,
		topK:      topK,
	}
}

// Ask retrieves the most relevant chunks for the question, optionally
// restricted to documentIDs, and generates an answer grounded on them. A
// generator failure degrades into a textual answer rather than an error.
func (s *ChatService) Ask(ctx context.Context, question string, documentIDs []string, topK int) (*model.ChatResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrInvalidInput
	}
	if topK <= 0 {
		topK = s.topK
	}

	sources := s.index.Search(ctx, question, topK, documentIDs)

	resp := &model.ChatResponse{
		Sources:   sources,
		Timestamp: time.Now(),
	}
	if len(sources) == 0 {
		resp.Answer = NoRelevantInfoAnswer
		resp.Sources = []model.SourceInfo{}
		s.publishExchange(ctx, question, resp)
		return resp, nil
	}

	answer, err := s.answerer.Generate(ctx, question, sources)
	if err != nil {
		log.Printf("answer generation failed: %v", err)
		resp.Answer = fmt.Sprintf("I apologize, but I encountered an error while processing your question: %v", err)
		resp.Sources = []model.SourceInfo{}
		s.publishExchange(ctx, question, resp)
		return resp, nil
	}

	resp.Answer = answer
	s.publishExchange(ctx, question, resp)
	return resp, nil
}

func (s *ChatService) publishExchange(ctx context.Context, question string, resp *model.ChatResponse) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, model.ChatExchange{
		Question:    question,
		Answer:      resp.Answer,
		SourceCount: len(resp.Sources),
		CreatedAt:   resp.Timestamp,
	})
	if err != nil {
		log.Printf("publish chat exchange failed: %v", err)
	}
}
