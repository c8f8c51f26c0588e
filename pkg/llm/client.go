package llm

import "context"

type Action string

const (
	ActionPrice        Action = "price"
	ActionMarketCap    Action = "market_cap"
	ActionVolume       Action = "volume"
	ActionTopGainers   Action = "top_gainers"
	ActionTopLosers    Action = "top_losers"
	ActionHistorical   Action = "historical"
	ActionChat         Action = "chat"
	ActionUnrecognized Action = "unrecognized"
)

// parseAction maps a model-produced action string onto the closed set.
// Anything outside the set becomes ActionUnrecognized rather than an error.
func parseAction(s string) Action {
	switch Action(s) {
	case ActionPrice, ActionMarketCap, ActionVolume,
		ActionTopGainers, ActionTopLosers, ActionHistorical, ActionChat:
		return Action(s)
	default:
		return ActionUnrecognized
	}
}

// Classification is the structured intent extracted from one user message.
// Symbol is set for symbol-bound actions, Response for ActionChat.
type Classification struct {
	Action   Action
	Symbol   string
	Response string
}

type Message struct {
	Role    string
	Content string
}

type ChatClient interface {
	// Classify maps a raw user message onto a Classification.
	Classify(ctx context.Context, message string) (*Classification, error)
	// Reply runs an unconstrained completion over the full transcript.
	Reply(ctx context.Context, history []Message) (string, error)
}
