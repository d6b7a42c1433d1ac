package processor

import (
	"context"
	"sync"
	"time"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/util"
	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
	matchpublisherv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/match-publisher/v1"
	orderreaderv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/order-reader/v1"
	snapshotv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/snapshot/v1"
	"github.com/segmentio/kafka-go"
)

// Processor feeds order commands from Kafka into the executor. Every symbol
// has its own worker so one symbol's commands run in arrival order while
// different symbols run in parallel.
type Processor struct {
	executor      executionv1.Executor
	orderReader   orderreaderv1.OrderReader
	publisher     matchpublisherv1.Publisher
	snapshotStore snapshotv1.Store
	logger        *logger.Logger
	symbols       []string
	options       *Options

	workers map[string]chan *orderreaderv1.Command

	mu     sync.RWMutex
	offset int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProcessor creates a processor with default options.
func NewProcessor(
	executor executionv1.Executor,
	orderReader orderreaderv1.OrderReader,
	publisher matchpublisherv1.Publisher,
	snapshotStore snapshotv1.Store,
	log *logger.Logger,
	symbols []string,
) *Processor {
	return NewProcessorWithOptions(executor, orderReader, publisher, snapshotStore, log, symbols, DefaultProcessorOptions())
}

// NewProcessorWithOptions creates a processor with custom options.
func NewProcessorWithOptions(
	executor executionv1.Executor,
	orderReader orderreaderv1.OrderReader,
	publisher matchpublisherv1.Publisher,
	snapshotStore snapshotv1.Store,
	log *logger.Logger,
	symbols []string,
	options *Options,
) *Processor {
	if options == nil {
		options = DefaultProcessorOptions()
	}
	return &Processor{
		executor:      executor,
		orderReader:   orderReader,
		publisher:     publisher,
		snapshotStore: snapshotStore,
		logger:        log,
		symbols:       symbols,
		options:       options,
		offset:        -1,
	}
}

// Start spawns the reader, one worker per symbol and the snapshot manager.
func (p *Processor) Start(ctx context.Context) error {
	if err := p.orderReader.SetOffset(p.options.StartOffset); err != nil {
		return err
	}

	p.ctx, p.cancel = context.WithCancel(ctx)

	p.workers = make(map[string]chan *orderreaderv1.Command, len(p.symbols))
	for _, symbol := range p.symbols {
		ch := make(chan *orderreaderv1.Command, max(p.options.QueueSize, 1))
		p.workers[symbol] = ch

		p.wg.Add(1)
		go p.runWorker(symbol, ch)
	}

	p.wg.Add(1)
	go p.runOrderReader()

	if p.options.SnapshotInterval > 0 {
		p.wg.Add(1)
		go p.runSnapshotManager()
	}

	p.logger.Info("Processor started",
		logger.NewField("symbols", p.symbols),
		logger.NewField("queueSize", p.options.QueueSize),
	)
	return nil
}

// Stop gracefully shuts down the processor. Queued commands that have not
// started are dropped.
func (p *Processor) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if err := p.orderReader.Close(); err != nil {
			p.logger.Error(err, logger.NewField("action", "close_order_reader"))
		}
		p.logger.Info("Processor stopped gracefully")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Processor stop timeout exceeded")
		return ctx.Err()
	}
}

// Offset returns the offset of the last dispatched command.
func (p *Processor) Offset() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.offset
}

func (p *Processor) setOffset(offset int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offset = offset
}

// runOrderReader reads commands and hands them to the symbol workers.
func (p *Processor) runOrderReader() {
	defer p.wg.Done()

	p.logger.Info("Starting order reader")

	for {
		msg, cmd, err := p.orderReader.ReadMessage(p.ctx)
		if p.ctx.Err() != nil {
			p.logger.Info("Order reader shutting down")
			return
		}
		if err != nil {
			if cmd == nil && msg.Value != nil {
				// Undecodable message: reject it and move past it.
				p.publish(p.ctx, matchpublisherv1.NewRejectedEvent("", "", "", err, time.Now().UnixNano()))
				p.commit(msg)
				continue
			}
			p.logger.ErrorContext(p.ctx, err, logger.NewField("action", "read_order_message"))
			select {
			case <-p.ctx.Done():
				return
			case <-time.After(p.options.ReadBackoff):
			}
			continue
		}

		if !p.dispatch(cmd) {
			return
		}
		p.commit(msg)
		p.setOffset(msg.Offset)
	}
}

// dispatch queues cmd on its symbol's worker. Commands without a symbol
// are cancels and run inline. It returns false once the processor is
// stopping.
func (p *Processor) dispatch(cmd *orderreaderv1.Command) bool {
	if cmd.Symbol == "" && cmd.Type != orderreaderv1.CommandPlace {
		p.handle(p.ctx, cmd)
		return true
	}

	ch, ok := p.workers[cmd.Symbol]
	if !ok {
		ctx := util.WithRequestID(p.ctx, cmd.RequestID)
		err := errors.NewErrorDetailsWithObject("no worker for symbol", string(errors.UnknownSymbolError), "symbol", cmd.Symbol)
		p.publish(ctx, matchpublisherv1.NewRejectedEvent(cmd.RequestID, cmd.Symbol, cmd.OrderID, err, time.Now().UnixNano()))
		return true
	}

	select {
	case ch <- cmd:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *Processor) commit(msg kafka.Message) {
	if err := p.orderReader.CommitMessages(p.ctx, msg); err != nil {
		p.logger.ErrorContext(p.ctx, err, logger.NewField("action", "commit_order_message"))
	}
}

// runWorker executes the commands of one symbol in order.
func (p *Processor) runWorker(symbol string, ch <-chan *orderreaderv1.Command) {
	defer p.wg.Done()

	p.logger.Debug("Worker started", logger.NewField("symbol", symbol))

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("Worker shutting down", logger.NewField("symbol", symbol))
			return
		case cmd := <-ch:
			p.handle(p.ctx, cmd)
		}
	}
}

// handle executes one command and publishes its outcome.
func (p *Processor) handle(ctx context.Context, cmd *orderreaderv1.Command) {
	ctx = util.WithSymbol(util.WithRequestID(ctx, cmd.RequestID), cmd.Symbol)
	requestID := util.GetRequestID(ctx)

	switch cmd.Type {
	case orderreaderv1.CommandPlace:
		result, err := p.executor.ExecuteOrder(ctx, cmd.Order, cmd.Snapshot)
		if err != nil {
			p.reject(ctx, cmd, err)
			return
		}
		p.publish(ctx, matchpublisherv1.NewExecutionEvent(requestID, result))

	case orderreaderv1.CommandCancel:
		ok, err := p.executor.CancelOrder(ctx, cmd.OrderID)
		if err != nil {
			p.reject(ctx, cmd, err)
			return
		}
		cancelled := 0
		if ok {
			cancelled = 1
		}
		p.publish(ctx, matchpublisherv1.NewCancelEvent(requestID, cmd.Symbol, cmd.OrderID, cancelled, time.Now().UnixNano()))

	case orderreaderv1.CommandCancelAll:
		n, err := p.executor.CancelAllOrders(ctx, cmd.Symbol)
		if err != nil {
			p.reject(ctx, cmd, err)
			return
		}
		p.publish(ctx, matchpublisherv1.NewCancelEvent(requestID, cmd.Symbol, "", n, time.Now().UnixNano()))
	}
}

func (p *Processor) reject(ctx context.Context, cmd *orderreaderv1.Command, err error) {
	if errors.ErrorCodeEquals(err, string(errors.InvariantViolationError)) || errors.ErrorCodeEquals(err, string(errors.SymbolHaltedError)) {
		p.logger.ErrorContext(ctx, err, logger.NewField("action", string(cmd.Type)))
	} else {
		p.logger.DebugContext(ctx, "Command rejected",
			logger.NewField("type", cmd.Type),
			logger.NewField("code", errors.CodeOf(err)),
		)
	}
	p.publish(ctx, matchpublisherv1.NewRejectedEvent(util.GetRequestID(ctx), cmd.Symbol, cmd.OrderID, err, time.Now().UnixNano()))
}

func (p *Processor) publish(ctx context.Context, event *matchpublisherv1.Event) {
	if err := p.publisher.PublishEvent(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, err, logger.NewField("action", "publish_event"))
	}
}

// runSnapshotManager handles periodic snapshots
func (p *Processor) runSnapshotManager() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.options.SnapshotInterval)
	defer ticker.Stop()

	p.logger.Info("Starting snapshot manager")

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Info("Snapshot manager shutting down")
			return
		case <-ticker.C:
			p.storeSnapshots()
		}
	}
}

// storeSnapshots writes every symbol's book to the snapshot store.
func (p *Processor) storeSnapshots() {
	for _, symbol := range p.symbols {
		ctx := util.WithSymbol(p.ctx, symbol)
		book, err := p.executor.GetOrderBook(ctx, symbol)
		if err != nil {
			p.logger.ErrorContext(ctx, err, logger.NewField("action", "get_order_book"))
			continue
		}
		if err := p.snapshotStore.Store(ctx, book); err != nil {
			p.logger.ErrorContext(ctx, err, logger.NewField("action", "store_snapshot"))
		}
	}
}
