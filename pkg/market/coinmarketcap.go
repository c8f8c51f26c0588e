package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const cmcBaseURL = "https://pro-api.coinmarketcap.com"

type CoinMarketCapClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewCoinMarketCapClient(apiKey string) *CoinMarketCapClient {
	return &CoinMarketCapClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CoinMarketCapClient) Name() string {
	return "CoinMarketCap"
}

func (c *CoinMarketCapClient) Price(ctx context.Context, symbol string) (float64, error) {
	quote, err := c.latestQuote(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return quote.field("price", quote.Price)
}

func (c *CoinMarketCapClient) MarketCap(ctx context.Context, symbol string) (float64, error) {
	quote, err := c.latestQuote(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return quote.field("market_cap", quote.MarketCap)
}

func (c *CoinMarketCapClient) Volume24h(ctx context.Context, symbol string) (float64, error) {
	quote, err := c.latestQuote(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return quote.field("volume_24h", quote.Volume24h)
}

func (c *CoinMarketCapClient) TopMovers(ctx context.Context, dir Direction, limit int) ([]Mover, error) {
	params := url.Values{}
	params.Set("sort", "percent_change_24h")
	params.Set("sort_dir", string(dir))
	params.Set("limit", fmt.Sprint(limit))

	var raw cmcListingsResponse
	if err := c.get(ctx, "/v1/cryptocurrency/listings/latest", params, &raw); err != nil {
		return nil, err
	}

	movers := make([]Mover, 0, len(raw.Data))
	for _, coin := range raw.Data {
		if coin.Quote.USD.PercentChange24h == nil {
			return nil, fmt.Errorf("coinmarketcap listings: missing percent_change_24h for %s", coin.Symbol)
		}
		movers = append(movers, Mover{
			Symbol:    coin.Symbol,
			ChangePct: *coin.Quote.USD.PercentChange24h,
		})
	}

	return movers, nil
}

func (c *CoinMarketCapClient) HistoricalPrice(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("time_start", time.Now().AddDate(0, 0, -7).Format(time.RFC3339))

	var raw cmcHistoricalResponse
	if err := c.get(ctx, "/v1/cryptocurrency/quotes/historical", params, &raw); err != nil {
		return 0, err
	}

	if len(raw.Data.Quotes) == 0 {
		return 0, fmt.Errorf("coinmarketcap historical: no quotes for %s", symbol)
	}

	usd := raw.Data.Quotes[0].Quote.USD
	return usd.field("price", usd.Price)
}

func (c *CoinMarketCapClient) latestQuote(ctx context.Context, symbol string) (cmcQuoteUSD, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var raw cmcQuotesResponse
	if err := c.get(ctx, "/v1/cryptocurrency/quotes/latest", params, &raw); err != nil {
		return cmcQuoteUSD{}, err
	}

	entry, ok := raw.Data[symbol]
	if !ok {
		return cmcQuoteUSD{}, fmt.Errorf("coinmarketcap quotes: no data for symbol %s", symbol)
	}

	return entry.Quote.USD, nil
}

func (c *CoinMarketCapClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cmcBaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("coinmarketcap request: %w", err)
	}
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("coinmarketcap fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("coinmarketcap fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("coinmarketcap decode: %w", err)
	}
	return nil
}

// Fields are pointers so an absent field is distinguishable from zero.
type cmcQuoteUSD struct {
	Price            *float64 `json:"price"`
	MarketCap        *float64 `json:"market_cap"`
	Volume24h        *float64 `json:"volume_24h"`
	PercentChange24h *float64 `json:"percent_change_24h"`
}

func (q cmcQuoteUSD) field(name string, value *float64) (float64, error) {
	if value == nil {
		return 0, fmt.Errorf("coinmarketcap quotes: missing field %s", name)
	}
	return *value, nil
}

type cmcQuotesResponse struct {
	Data map[string]struct {
		Quote struct {
			USD cmcQuoteUSD `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}

type cmcListingsResponse struct {
	Data []struct {
		Symbol string `json:"symbol"`
		Quote  struct {
			USD cmcQuoteUSD `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}

type cmcHistoricalResponse struct {
	Data struct {
		Quotes []struct {
			Quote struct {
				USD cmcQuoteUSD `json:"USD"`
			} `json:"quote"`
		} `json:"quotes"`
	} `json:"data"`
}
