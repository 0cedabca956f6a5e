package inject_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests that exercise modules, registry and handles together

type scenarioConsumer struct {
	greeter *inject.Lazy[testutil.TestGreeter]
	clock   *inject.Lazy[testutil.TestClock]
	audit   *inject.OptionalLazy[testutil.TestLogger]
}

func newScenarioConsumer(r *inject.Registry) *scenarioConsumer {
	return &scenarioConsumer{
		greeter: inject.NewLazy[testutil.TestGreeter](r),
		clock:   inject.NewLazy[testutil.TestClock](r),
		audit:   inject.NewOptionalLazy[testutil.TestLogger](r, inject.Name("audit")),
	}
}

func (c *scenarioConsumer) describe() string {
	line := fmt.Sprintf("%s@%s", c.greeter.MustGet().Greet(), c.clock.MustGet().Token())
	if audit, ok := c.audit.Get(); ok {
		audit.Log(line)
	}
	return line
}

func TestIntegration_GreeterClockScenario(t *testing.T) {
	t.Run("unique greeter per consumer and shared clock", func(t *testing.T) {
		t.Parallel()

		greeters := testutil.NewCountingGreeterFactory("hello")
		appModule := inject.NewModule("app",
			inject.AddUnique(greeters.New),
			inject.AddShared(testutil.NewTestClock),
		)

		registry := testutil.NewRegistryBuilder(t).WithModule(appModule).Build()

		a := newScenarioConsumer(registry)
		b := newScenarioConsumer(registry)

		assert.Equal(t, "hello-0", a.greeter.MustGet().Greet())
		assert.Equal(t, "hello-1", b.greeter.MustGet().Greet())
		assert.Equal(t, "hello-0", a.greeter.MustGet().Greet(), "handles cache their first value")

		assert.Equal(t, a.clock.MustGet().Token(), b.clock.MustGet().Token())
		testutil.AssertSameInstance(t, a.clock.MustGet(), b.clock.MustGet())

		_, ok := a.audit.Get()
		assert.False(t, ok)
	})

	t.Run("optional capability registered by a later module", func(t *testing.T) {
		t.Parallel()

		greeters := testutil.NewCountingGreeterFactory("hi")
		appModule := inject.NewModule("app",
			inject.AddUnique(greeters.New),
			inject.AddShared(testutil.NewTestClock),
		)
		auditModule := inject.NewModule("audit",
			inject.AddShared(testutil.NewTestLoggerNamed("audit"), inject.Name("audit")),
		)

		registry := testutil.NewRegistryBuilder(t).
			WithModule(appModule).
			WithModule(auditModule).
			Build()

		consumers := []*scenarioConsumer{newScenarioConsumer(registry), newScenarioConsumer(registry)}
		lines := make([]string, len(consumers))
		for i, c := range consumers {
			lines[i] = c.describe()
		}

		audit := testutil.AssertResolvable[testutil.TestLogger](t, registry, inject.Name("audit"))
		assert.Equal(t, lines, audit.GetLogs())
	})

	t.Run("concurrent consumers", func(t *testing.T) {
		t.Parallel()

		greeters := testutil.NewCountingGreeterFactory("c")
		registry := testutil.NewRegistryBuilder(t).
			WithModule(inject.NewModule("app",
				inject.AddUnique(greeters.New),
				inject.AddShared(testutil.NewTestClock),
			)).
			Build()

		const consumers = 40
		greetings := make([]string, consumers)
		tokens := make([]string, consumers)

		var wg sync.WaitGroup
		for i := range consumers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c := newScenarioConsumer(registry)
				greetings[i] = c.greeter.MustGet().Greet()
				tokens[i] = c.clock.MustGet().Token()
			}()
		}
		wg.Wait()

		seen := map[string]bool{}
		for i := range consumers {
			assert.False(t, seen[greetings[i]], "greeting %s handed out twice", greetings[i])
			seen[greetings[i]] = true
			assert.Equal(t, tokens[0], tokens[i])
		}
		assert.Equal(t, consumers, greeters.Calls())
	})
}

func TestIntegration_ResourceTeardown(t *testing.T) {
	t.Parallel()

	var closed []string
	var mu sync.Mutex
	onClose := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		closed = append(closed, name)
	}

	registry := inject.NewRegistry()
	registry.AddModules(
		inject.NewModule("storage",
			inject.AddShared(testutil.NewTestDatabaseWith("primary", nil, onClose), inject.Name("primary")),
			inject.AddShared(testutil.NewTestDatabaseWith("replica", testutil.ErrDisposal, onClose), inject.Name("replica")),
			inject.AddUnique(testutil.NewTestDatabaseWith("scratch", nil, onClose), inject.Name("scratch")),
		),
	)

	// Resolution order determines teardown order
	replica := testutil.AssertResolvable[testutil.TestDatabase](t, registry, inject.Name("replica"))
	primary := testutil.AssertResolvable[testutil.TestDatabase](t, registry, inject.Name("primary"))
	scratch := testutil.AssertResolvable[testutil.TestDatabase](t, registry, inject.Name("scratch"))

	err := registry.CloseContext(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, testutil.ErrDisposal))

	assert.Equal(t, []string{"primary", "replica"}, closed)
	assert.True(t, primary.IsClosed())
	assert.True(t, replica.IsClosed())
	assert.False(t, scratch.IsClosed(), "unique instances belong to the caller")

	// The registry is empty but usable after teardown
	assert.Equal(t, 0, registry.Count())
	testutil.AssertNotFound[testutil.TestDatabase](t, registry, inject.Name("primary"))

	inject.Register(registry, inject.Shared, testutil.NewTestDatabase)
	fresh := testutil.AssertResolvable[testutil.TestDatabase](t, registry)
	assert.False(t, fresh.IsClosed())
	require.NoError(t, registry.Close())
	assert.True(t, fresh.IsClosed())
}
