package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"satoshigpt/internal/model"
	"satoshigpt/pkg/llm"
	"satoshigpt/pkg/market"
)

const (
	marketApology = "Sorry, I couldn't fetch that market data right now. Please try again in a moment."
	genericReply  = "Sorry, something went wrong while answering that. Please try again."

	topMoversLimit = 5
)

// Assistant turns one user message into a reply: it classifies the message,
// dispatches market-data actions, and falls back to a free-form completion
// for everything else. Respond never returns an error; upstream failures are
// logged and absorbed into user-facing text.
type Assistant struct {
	chat   llm.ChatClient
	market market.MarketClient
}

func New(chat llm.ChatClient, m market.MarketClient) *Assistant {
	return &Assistant{chat: chat, market: m}
}

// Respond handles one chat turn. history is the full transcript including
// the message being answered.
func (a *Assistant) Respond(ctx context.Context, history []model.Turn, message string) string {
	cls, err := a.chat.Classify(ctx, message)
	if err != nil {
		slog.Error("classification failed", "error", err)
		return a.freeChat(ctx, history)
	}

	switch cls.Action {
	case llm.ActionChat:
		if cls.Response != "" {
			return cls.Response
		}
	case llm.ActionPrice:
		if cls.Symbol != "" {
			return a.priceReply(ctx, cls.Symbol)
		}
	case llm.ActionMarketCap:
		if cls.Symbol != "" {
			return a.marketCapReply(ctx, cls.Symbol)
		}
	case llm.ActionVolume:
		if cls.Symbol != "" {
			return a.volumeReply(ctx, cls.Symbol)
		}
	case llm.ActionTopGainers:
		return a.topMoversReply(ctx, market.DirectionDesc)
	case llm.ActionTopLosers:
		return a.topMoversReply(ctx, market.DirectionAsc)
	case llm.ActionHistorical:
		if cls.Symbol != "" {
			return a.historicalReply(ctx, cls.Symbol)
		}
	}

	// Unrecognized action, or a recognized one missing its symbol.
	return a.freeChat(ctx, history)
}

func (a *Assistant) priceReply(ctx context.Context, symbol string) string {
	price, err := a.market.Price(ctx, symbol)
	if err != nil {
		return apology("price", symbol, err)
	}
	return fmt.Sprintf("The current price of %s is $%.2f.", symbol, price)
}

func (a *Assistant) marketCapReply(ctx context.Context, symbol string) string {
	marketCap, err := a.market.MarketCap(ctx, symbol)
	if err != nil {
		return apology("market_cap", symbol, err)
	}
	return fmt.Sprintf("The market capitalization of %s is $%s.", symbol, formatGroupedUSD(marketCap))
}

func (a *Assistant) volumeReply(ctx context.Context, symbol string) string {
	volume, err := a.market.Volume24h(ctx, symbol)
	if err != nil {
		return apology("volume", symbol, err)
	}
	return fmt.Sprintf("The 24h trading volume of %s is $%s.", symbol, formatGroupedUSD(volume))
}

func (a *Assistant) topMoversReply(ctx context.Context, dir market.Direction) string {
	movers, err := a.market.TopMovers(ctx, dir, topMoversLimit)
	if err != nil {
		return apology("top_movers", string(dir), err)
	}
	if len(movers) > topMoversLimit {
		movers = movers[:topMoversLimit]
	}

	lines := make([]string, 0, len(movers))
	for _, m := range movers {
		lines = append(lines, fmt.Sprintf("%s: %.2f%%", m.Symbol, m.ChangePct))
	}
	return strings.Join(lines, "\n")
}

func (a *Assistant) historicalReply(ctx context.Context, symbol string) string {
	price, err := a.market.HistoricalPrice(ctx, symbol)
	if err != nil {
		return apology("historical", symbol, err)
	}
	return fmt.Sprintf("Price of %s a week ago: $%.2f", symbol, price)
}

// freeChat replays the full transcript through an unconstrained completion.
func (a *Assistant) freeChat(ctx context.Context, history []model.Turn) string {
	messages := make([]llm.Message, len(history))
	for i, t := range history {
		messages[i] = llm.Message{Role: t.Role, Content: t.Content}
	}

	reply, err := a.chat.Reply(ctx, messages)
	if err != nil {
		slog.Error("fallback reply failed", "error", err)
		return genericReply
	}
	if strings.TrimSpace(reply) == "" {
		return genericReply
	}
	return reply
}

func apology(action, subject string, err error) string {
	slog.Error("market data request failed", "action", action, "subject", subject, "error", err)
	return marketApology
}
