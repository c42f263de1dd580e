package services

import (
	"context"
	"fmt"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/platform/gemini"
)

// summaryState is the mutable state threaded through the summary graph.
type summaryState struct {
	ChatName        string
	ChatDescription string
	Messages        []*chat.Message
	Prompt          string
	Summary         string
}

type graphNodeFunc func(ctx context.Context, state *summaryState) error

const graphEnd = ""

// summaryGraph is a minimal linear workflow: named nodes with a single edge
// out of each. Today it holds one node; the shape leaves room for
// pre/post-processing steps without changing the service.
type summaryGraph struct {
	entry string
	nodes map[string]graphNodeFunc
	edges map[string]string
}

func newSummaryGraph(model gemini.Client) *summaryGraph {
	g := &summaryGraph{
		entry: "summarize",
		nodes: map[string]graphNodeFunc{},
		edges: map[string]string{},
	}
	g.addNode("summarize", graphEnd, func(ctx context.Context, state *summaryState) error {
		state.Prompt = renderSummaryPrompt(state.ChatName, state.ChatDescription, state.Messages)
		text, err := model.GenerateText(ctx, state.Prompt)
		if err != nil {
			return err
		}
		state.Summary = text
		return nil
	})
	return g
}

func (g *summaryGraph) addNode(name, next string, fn graphNodeFunc) {
	g.nodes[name] = fn
	g.edges[name] = next
}

func (g *summaryGraph) Invoke(ctx context.Context, state *summaryState) error {
	for name := g.entry; name != graphEnd; name = g.edges[name] {
		fn, ok := g.nodes[name]
		if !ok {
			return fmt.Errorf("summary graph: unknown node %q", name)
		}
		if err := fn(ctx, state); err != nil {
			return fmt.Errorf("summary graph node %q: %w", name, err)
		}
	}
	return nil
}
