package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/util"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	orderreaderv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/order-reader/v1"
	matchpublisher "github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/match-publisher"
)

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "orders", "Kafka topic name")
		file        = flag.String("file", "", "JSON file with commands (optional, generates commands if not provided)")
		symbols     = flag.String("symbols", "BTC-USD", "Symbols to generate commands for (comma-separated)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending commands")
		count       = flag.Int("count", 1000, "Number of commands to generate")
		seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Generator seed")
		tickSize    = flag.Float64("tick-size", 0.01, "Tick size of the symbols")
		basePrice   = flag.Float64("base-price", 3945.5, "Base price for orders")
		spreadTicks = flag.Int64("spread-ticks", 2000, "Ticks away from the base price limit orders are placed")
		marketRatio = flag.Float64("market-ratio", 0.3, "Share of market orders")
		maxQuantity = flag.Float64("max-quantity", 10, "Largest order quantity")
	)
	flag.Parse()

	log, err := logger.NewLogger(logger.WithName("command-producer"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var commands []*orderreaderv1.Command
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Error(err, logger.NewField("action", "read_file"), logger.NewField("file", *file))
			return
		}
		if err := json.Unmarshal(data, &commands); err != nil {
			log.Error(err, logger.NewField("action", "parse_file"), logger.NewField("file", *file))
			return
		}
		log.Info("Loaded commands from file", logger.NewField("count", len(commands)), logger.NewField("file", *file))
	} else {
		tick, err := orderbookv1.NewTickSize(*tickSize)
		if err != nil {
			log.Error(err, logger.NewField("action", "parse_tick_size"))
			return
		}
		gen, ok := newGenerator(*seed, strings.Split(*symbols, ","), tick, *basePrice, *spreadTicks, *marketRatio, *maxQuantity)
		if !ok {
			log.Warn("Base price must be a tick multiple above the spread", logger.NewField("basePrice", *basePrice))
			return
		}
		commands = make([]*orderreaderv1.Command, *count)
		for i := range commands {
			commands[i] = gen.next(i)
		}
		log.Info("Generated commands", logger.NewField("count", len(commands)), logger.NewField("seed", *seed))
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	log.Info("Sending commands", logger.NewField("brokers", *brokers), logger.NewField("topic", *topic), logger.NewField("delay", delay.String()))

	sent := 0
	for i, cmd := range commands {
		if cmd.RequestID == "" {
			cmd.RequestID = util.GetRequestID(util.WithRequestID(ctx, ""))
		}
		payload, err := json.Marshal(cmd)
		if err != nil {
			log.Error(err, logger.NewField("index", i))
			continue
		}

		msg := kafka.Message{
			Key:   []byte(cmd.Symbol),
			Value: payload,
			Headers: []kafka.Header{
				{Key: matchpublisher.RequestIDHeader, Value: []byte(cmd.RequestID)},
			},
			Time: time.Now(),
		}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Error(err, logger.NewField("index", i), logger.NewField("requestID", cmd.RequestID))
			continue
		}
		sent++

		if sent%100 == 0 || i == len(commands)-1 {
			log.Info("Sent commands", logger.NewField("sent", sent), logger.NewField("total", len(commands)))
		}

		if i < len(commands)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(*delay):
			}
			if ctx.Err() != nil {
				break
			}
		}
	}

	log.Info("Summary", summarize(commands)...)
}

func summarize(commands []*orderreaderv1.Command) []logger.Field {
	var market, limit, buy, sell int
	for _, cmd := range commands {
		if cmd.Order == nil {
			continue
		}
		if cmd.Order.Type == orderbookv1.OrderTypeMarket {
			market++
		} else {
			limit++
		}
		if cmd.Order.Side == orderbookv1.SideBuy {
			buy++
		} else {
			sell++
		}
	}
	return []logger.Field{
		logger.NewField("total", len(commands)),
		logger.NewField("market", market),
		logger.NewField("limit", limit),
		logger.NewField("buy", buy),
		logger.NewField("sell", sell),
	}
}
