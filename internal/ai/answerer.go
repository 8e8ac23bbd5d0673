package ai

import (
	"context"
	"fmt"
	"strings"

	"docuchat/internal/model"
)

// Answerer turns a question plus ranked source passages into a
// natural-language answer.
type Answerer interface {
	Generate(ctx context.Context, question string, sources []model.SourceInfo) (string, error)
}

// ChatAnswerer generates answers through the chat-completions API, grounding
// the model on the retrieved passages.
type ChatAnswerer struct {
	client *Client
	cfg    ChatConfig
}

func NewChatAnswerer(client *Client, cfg ChatConfig) *ChatAnswerer {
	return &ChatAnswerer{client: client, cfg: cfg}
}

func (a *ChatAnswerer) Generate(ctx context.Context, question string, sources []model.SourceInfo) (string, error) {
	messages := []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(question, sources)},
	}
	answer, err := a.client.Complete(ctx, a.cfg, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

const systemPrompt = `You are a helpful research assistant. Answer the user's question based on the provided source documents.

IMPORTANT INSTRUCTIONS:
1. Base your answer primarily on the information provided in the sources
2. If the sources don't contain enough information to fully answer the question, say so
3. Be specific and cite which sources support your statements
4. Keep your response concise but comprehensive
5. If you need to make inferences, clearly distinguish them from facts stated in the sources`

func buildUserPrompt(question string, sources []model.SourceInfo) string {
	var b strings.Builder
	b.WriteString("CONTEXT FROM DOCUMENTS:\n")
	if len(sources) == 0 {
		b.WriteString("No relevant documents found.\n")
	}
	for i, src := range sources {
		fmt.Fprintf(&b, "\nSource %d (from %s):\n%s\n---\n", i+1, src.DocumentName, src.ChunkContent)
	}
	b.WriteString("\nUSER QUESTION: ")
	b.WriteString(question)
	b.WriteString("\n\nPlease provide a helpful and accurate response based on the source documents provided.")
	return b.String()
}
