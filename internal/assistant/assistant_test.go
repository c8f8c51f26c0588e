package assistant

import (
	"context"
	"errors"
	"testing"

	"satoshigpt/internal/model"
	"satoshigpt/pkg/llm"
	"satoshigpt/pkg/market"

	"github.com/go-playground/assert/v2"
)

type fakeChat struct {
	classification *llm.Classification
	classifyErr    error
	reply          string
	replyErr       error
	replyHistory   []llm.Message
}

func (f *fakeChat) Classify(ctx context.Context, message string) (*llm.Classification, error) {
	return f.classification, f.classifyErr
}

func (f *fakeChat) Reply(ctx context.Context, history []llm.Message) (string, error) {
	f.replyHistory = history
	return f.reply, f.replyErr
}

type fakeMarket struct {
	price      float64
	marketCap  float64
	volume     float64
	movers     []market.Mover
	historical float64
	dir        market.Direction
	err        error
}

func (f *fakeMarket) Price(ctx context.Context, symbol string) (float64, error) {
	return f.price, f.err
}

func (f *fakeMarket) MarketCap(ctx context.Context, symbol string) (float64, error) {
	return f.marketCap, f.err
}

func (f *fakeMarket) Volume24h(ctx context.Context, symbol string) (float64, error) {
	return f.volume, f.err
}

func (f *fakeMarket) TopMovers(ctx context.Context, dir market.Direction, limit int) ([]market.Mover, error) {
	f.dir = dir
	return f.movers, f.err
}

func (f *fakeMarket) HistoricalPrice(ctx context.Context, symbol string) (float64, error) {
	return f.historical, f.err
}

func respond(chat *fakeChat, m *fakeMarket, message string) string {
	a := New(chat, m)
	history := []model.Turn{{Role: model.RoleUser, Content: message}}
	return a.Respond(context.Background(), history, message)
}

func TestRespond_Price(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionPrice, Symbol: "BTC"}}
	m := &fakeMarket{price: 65000.1234}

	got := respond(chat, m, "how much is bitcoin?")
	assert.Equal(t, "The current price of BTC is $65000.12.", got)
}

func TestRespond_MarketCap(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionMarketCap, Symbol: "BTC"}}
	m := &fakeMarket{marketCap: 1280000000000.0}

	got := respond(chat, m, "bitcoin market cap")
	assert.Equal(t, "The market capitalization of BTC is $1,280,000,000,000.00.", got)
}

func TestRespond_Volume(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionVolume, Symbol: "ETH"}}
	m := &fakeMarket{volume: 12345678.9}

	got := respond(chat, m, "eth 24h volume")
	assert.Equal(t, "The 24h trading volume of ETH is $12,345,678.90.", got)
}

func TestRespond_TopGainers(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionTopGainers}}
	m := &fakeMarket{movers: []market.Mover{
		{Symbol: "FOO", ChangePct: 12.345},
		{Symbol: "BAR", ChangePct: 9.1},
	}}

	got := respond(chat, m, "top gainers today")
	assert.Equal(t, "FOO: 12.35%\nBAR: 9.10%", got)
	assert.Equal(t, market.DirectionDesc, m.dir)
}

func TestRespond_TopLosersUsesAscending(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionTopLosers}}
	m := &fakeMarket{movers: []market.Mover{{Symbol: "BAZ", ChangePct: -8.2}}}

	got := respond(chat, m, "biggest losers")
	assert.Equal(t, "BAZ: -8.20%", got)
	assert.Equal(t, market.DirectionAsc, m.dir)
}

func TestRespond_TopMoversTruncatedToFive(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionTopGainers}}
	m := &fakeMarket{movers: []market.Mover{
		{Symbol: "A", ChangePct: 6}, {Symbol: "B", ChangePct: 5},
		{Symbol: "C", ChangePct: 4}, {Symbol: "D", ChangePct: 3},
		{Symbol: "E", ChangePct: 2}, {Symbol: "F", ChangePct: 1},
	}}

	got := respond(chat, m, "top gainers")
	assert.Equal(t, "A: 6.00%\nB: 5.00%\nC: 4.00%\nD: 3.00%\nE: 2.00%", got)
}

func TestRespond_Historical(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionHistorical, Symbol: "BTC"}}
	m := &fakeMarket{historical: 60000.0}

	got := respond(chat, m, "btc price last week")
	assert.Equal(t, "Price of BTC a week ago: $60000.00", got)
}

func TestRespond_CannedChatResponse(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionChat, Response: "Satoshi Nakamoto created Bitcoin."}}

	got := respond(chat, &fakeMarket{}, "who made bitcoin?")
	assert.Equal(t, "Satoshi Nakamoto created Bitcoin.", got)
}

func TestRespond_MarketErrorBecomesApology(t *testing.T) {
	chat := &fakeChat{classification: &llm.Classification{Action: llm.ActionPrice, Symbol: "BTC"}}
	m := &fakeMarket{err: errors.New("status 429")}

	got := respond(chat, m, "btc price")
	assert.Equal(t, marketApology, got)
}

func TestRespond_UnrecognizedFallsBackToFreeChat(t *testing.T) {
	chat := &fakeChat{
		classification: &llm.Classification{Action: llm.ActionUnrecognized},
		reply:          "Let me explain that differently.",
	}

	got := respond(chat, &fakeMarket{}, "something odd")
	assert.Equal(t, "Let me explain that differently.", got)
}

func TestRespond_MissingSymbolFallsBackToFreeChat(t *testing.T) {
	chat := &fakeChat{
		classification: &llm.Classification{Action: llm.ActionPrice},
		reply:          "Which coin did you mean?",
	}

	got := respond(chat, &fakeMarket{}, "what's the price?")
	assert.Equal(t, "Which coin did you mean?", got)
}

func TestRespond_ClassifyErrorFallsBackToFreeChat(t *testing.T) {
	chat := &fakeChat{
		classifyErr: errors.New("timeout"),
		reply:       "Here's my best answer.",
	}

	got := respond(chat, &fakeMarket{}, "hello")
	assert.Equal(t, "Here's my best answer.", got)
}

func TestRespond_FallbackErrorBecomesGenericReply(t *testing.T) {
	chat := &fakeChat{
		classifyErr: errors.New("timeout"),
		replyErr:    errors.New("also down"),
	}

	got := respond(chat, &fakeMarket{}, "hello")
	assert.Equal(t, genericReply, got)
}

func TestRespond_FallbackSeesFullHistory(t *testing.T) {
	chat := &fakeChat{
		classification: &llm.Classification{Action: llm.ActionUnrecognized},
		reply:          "ok",
	}
	a := New(chat, &fakeMarket{})

	history := []model.Turn{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello"},
		{Role: model.RoleUser, Content: "tell me more"},
	}
	a.Respond(context.Background(), history, "tell me more")

	assert.Equal(t, 3, len(chat.replyHistory))
	assert.Equal(t, llm.Message{Role: "assistant", Content: "hello"}, chat.replyHistory[1])
}
