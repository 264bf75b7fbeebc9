package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/parker-ryan1/tradestation/internal/models"
)

// candleFrame — кадр апстрима: data-строки вида
// [ts, o, h, l, c, vol, ..., confirm], confirm последним элементом.
type candleFrame struct {
	Arg struct {
		Channel string `json:"channel"`
		InstID  string `json:"instId"`
	} `json:"arg"`
	Data [][]string `json:"data"`
}

// streamCandles — один WebSocket на таймфрейм с пачкой инструментов в args.
// Реконнект навсегда, пока жив ctx.
func (c *Client) streamCandles(ctx context.Context, symbols []string, timeframe string, out chan<- models.Bar) {
	channel := "candle" + timeframe // "1m" -> "candle1m"
	tfDur := timeframeToDuration(timeframe)

	args := make([]map[string]string, 0, len(symbols))
	for _, s := range symbols {
		args = append(args, map[string]string{
			"channel": channel,
			"instId":  s,
		})
	}

	for {
		if err := c.reconnects.Wait(ctx); err != nil {
			return
		}

		log.Printf("[WS] connect %s, %d symbols", channel, len(symbols))
		conn, _, err := c.wsDialer.DialContext(ctx, c.cfg.Feed.URL, nil)
		if err != nil {
			log.Printf("[WS] dial error %s: %v", channel, err)
			continue
		}

		sub := map[string]any{
			"op":   "subscribe",
			"args": args,
		}
		if err := conn.WriteJSON(sub); err != nil {
			log.Printf("[WS] subscribe error %s: %v", channel, err)
			_ = conn.Close()
			continue
		}

		// keepalive ping каждые 20s — иначе апстрим рвёт соединение
		stopPing := make(chan struct{})
		go func() {
			t := time.NewTicker(20 * time.Second)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-stopPing:
					return
				case <-t.C:
					_ = conn.WriteJSON(map[string]string{"op": "ping"})
				}
			}
		}()

		c.readLoop(ctx, conn, channel, tfDur, out)
		close(stopPing)
		_ = conn.Close()

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, channel string, tfDur time.Duration, out chan<- models.Bar) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[WS] read error %s: %v", channel, err)
			return
		}

		var frame candleFrame
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Arg.Channel != channel || len(frame.Data) == 0 {
			continue
		}

		for _, row := range frame.Data {
			if len(row) < 6 {
				continue
			}
			// confirm всегда в последнем элементе, не хардкодим индекс
			if row[len(row)-1] != "1" {
				continue // ждём закрытую свечу
			}

			bar, ok := c.parseBar(frame.Arg.InstID, row, tfDur)
			if !ok {
				continue
			}

			select {
			case out <- bar:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (c *Client) parseBar(symbol string, row []string, tfDur time.Duration) (models.Bar, bool) {
	tsMs, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return models.Bar{}, false
	}

	vals := make([]float64, 5) // o, h, l, c, vol
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return models.Bar{}, false
		}
		vals[i] = v
	}

	c.barIndex[symbol]++
	start := time.UnixMilli(tsMs)

	return models.Bar{
		Symbol: symbol,
		Index:  c.barIndex[symbol],
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
		Start:  start,
		End:    start.Add(tfDur),
	}, true
}

func timeframeToDuration(tf string) time.Duration {
	switch tf {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "1H":
		return time.Hour
	case "1D":
		return 24 * time.Hour
	default:
		return 0
	}
}
