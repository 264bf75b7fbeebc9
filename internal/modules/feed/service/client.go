package service

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/parker-ryan1/tradestation/internal/models"
	"github.com/parker-ryan1/tradestation/internal/modules/config"
)

// Client — WebSocket-стример закрытых свечей. Один сокет на весь
// watchlist, подписка пачкой в args.
type Client struct {
	cfg      *config.Config
	wsDialer *websocket.Dialer

	// ограничитель реконнектов, чтобы при лежащем аптриме не молотить dial в цикле
	reconnects *rate.Limiter

	barIndex map[string]int // symbol -> порядковый номер бара
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		wsDialer:   &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		reconnects: rate.NewLimiter(rate.Every(time.Second), 3),
		barIndex:   make(map[string]int),
	}
}

// Start стримит закрытые свечи по всем символам watchlist'a в out.
// Блокируется до отмены ctx.
func (c *Client) Start(ctx context.Context, out chan<- models.Bar) {
	symbols := c.cfg.Feed.Symbols
	if len(symbols) == 0 || c.cfg.Feed.URL == "" {
		log.Printf("[FEED] watchlist пустой или не задан FEED_URL — стример не запущен")
		return
	}

	log.Printf("[FEED] ▶️ стрим %s: %d символов", c.cfg.Feed.Timeframe, len(symbols))
	c.streamCandles(ctx, symbols, c.cfg.Feed.Timeframe, out)
}
