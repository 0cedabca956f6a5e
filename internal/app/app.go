// Package app holds the capabilities and consumers of the injectdemo service.
package app

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/config"
	"github.com/rs/zerolog"
)

// Greeter produces a greeting. Every resolution yields a new Greeter.
type Greeter interface {
	Greet() string
}

// Clock identifies the process-wide clock through a random token. The
// registry hands out a single Clock.
type Clock interface {
	Token() string
	Started() time.Time
}

// GreeterFactory numbers the greeters it builds: prefix-0, prefix-1, ...
type GreeterFactory struct {
	prefix string
	next   atomic.Int64
}

// NewGreeterFactory creates a factory whose counter starts at zero.
func NewGreeterFactory(prefix string) *GreeterFactory {
	return &GreeterFactory{prefix: prefix}
}

// New builds the next Greeter.
func (f *GreeterFactory) New() Greeter {
	n := f.next.Add(1) - 1
	return greeting(fmt.Sprintf("%s-%d", f.prefix, n))
}

type greeting string

func (g greeting) Greet() string {
	return string(g)
}

type clock struct {
	token   string
	started time.Time

	mu      sync.Mutex
	stopped bool
}

// NewClock creates a Clock with a fresh token.
func NewClock() Clock {
	return &clock{
		token:   uuid.NewString(),
		started: time.Now(),
	}
}

func (c *clock) Token() string {
	return c.token
}

func (c *clock) Started() time.Time {
	return c.started
}

// Close stops the clock when the registry is torn down.
func (c *clock) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return fmt.Errorf("clock %s already stopped", c.token)
	}
	c.stopped = true
	return nil
}

// Module registers Greeter as Unique and Clock as Shared.
func Module(cfg config.Greeting) *inject.Module {
	greeters := NewGreeterFactory(cfg.Prefix)

	return inject.NewModule("app",
		inject.AddUnique(greeters.New),
		inject.AddShared(NewClock),
	)
}

// Report is what a consumer observed.
type Report struct {
	Consumer string
	Greeting string
	Token    string
}

// Consumer declares its dependencies as lazy handles. Nothing is resolved
// until Report is first called.
type Consumer struct {
	name    string
	greeter *inject.Lazy[Greeter]
	clock   *inject.Lazy[Clock]
	logger  *inject.OptionalLazy[zerolog.Logger]
}

// NewConsumer creates a consumer resolving from r, or from the default
// registry when r is nil.
func NewConsumer(name string, r *inject.Registry) *Consumer {
	return &Consumer{
		name:    name,
		greeter: inject.NewLazy[Greeter](r),
		clock:   inject.NewLazy[Clock](r),
		logger:  inject.NewOptionalLazy[zerolog.Logger](r),
	}
}

// Name returns the consumer name.
func (c *Consumer) Name() string {
	return c.name
}

// Report resolves the consumer's dependencies and describes them.
func (c *Consumer) Report() (Report, error) {
	greeter, err := c.greeter.Get()
	if err != nil {
		return Report{}, fmt.Errorf("consumer %s: %w", c.name, err)
	}

	clk, err := c.clock.Get()
	if err != nil {
		return Report{}, fmt.Errorf("consumer %s: %w", c.name, err)
	}

	report := Report{
		Consumer: c.name,
		Greeting: greeter.Greet(),
		Token:    clk.Token(),
	}

	if logger, ok := c.logger.Get(); ok {
		logger.Debug().
			Str("consumer", report.Consumer).
			Str("greeting", report.Greeting).
			Msg("consumer reported")
	}

	return report, nil
}

// Run creates n consumers named A, B, ... and collects their reports in order.
func Run(r *inject.Registry, n int) ([]Report, error) {
	reports := make([]Report, 0, n)
	for i := range n {
		consumer := NewConsumer(consumerName(i), r)

		report, err := consumer.Report()
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// consumerName maps 0 to "A", 25 to "Z", 26 to "AA", and so on.
func consumerName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
