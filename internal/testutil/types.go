package testutil

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Common test errors
var (
	ErrTest          = errors.New("test error")
	ErrIntentional   = errors.New("intentional error")
	ErrFactory       = errors.New("factory error")
	ErrDisposal      = errors.New("disposal error")
	ErrAlreadyClosed = errors.New("already closed")
)

// TestService is a basic test service
type TestService struct {
	ID        string
	CreatedAt time.Time
	Data      string
}

// NewTestService creates a new test service
func NewTestService() *TestService {
	return &TestService{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Data:      "test",
	}
}

// TestLogger is a test logger interface
type TestLogger interface {
	Log(msg string)
	GetLogs() []string
	Name() string
}

// TestLoggerImpl implements TestLogger
type TestLoggerImpl struct {
	name string
	logs []string
	mu   sync.Mutex
}

func NewTestLogger() TestLogger {
	return &TestLoggerImpl{name: "default"}
}

func NewTestLoggerNamed(name string) func() TestLogger {
	return func() TestLogger {
		return &TestLoggerImpl{name: name}
	}
}

func (l *TestLoggerImpl) Name() string {
	return l.name
}

func (l *TestLoggerImpl) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

func (l *TestLoggerImpl) GetLogs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]string, len(l.logs))
	copy(result, l.logs)
	return result
}

// TestDatabase is a test database interface
type TestDatabase interface {
	Query(sql string) string
	Close() error
	IsClosed() bool
}

// TestDatabaseImpl implements TestDatabase
type TestDatabaseImpl struct {
	name     string
	closed   bool
	closeMu  sync.Mutex
	closeErr error
	onClose  func(name string)
}

func NewTestDatabase() TestDatabase {
	return &TestDatabaseImpl{name: "testdb"}
}

// NewTestDatabaseWith returns a factory for a database that reports its
// closing through onClose and fails with closeErr.
func NewTestDatabaseWith(name string, closeErr error, onClose func(name string)) func() TestDatabase {
	return func() TestDatabase {
		return &TestDatabaseImpl{name: name, closeErr: closeErr, onClose: onClose}
	}
}

func (d *TestDatabaseImpl) Query(sql string) string {
	return fmt.Sprintf("%s: %s", d.name, sql)
}

func (d *TestDatabaseImpl) Close() error {
	d.closeMu.Lock()
	defer d.closeMu.Unlock()

	if d.closed {
		return ErrAlreadyClosed
	}
	d.closed = true
	if d.onClose != nil {
		d.onClose(d.name)
	}
	return d.closeErr
}

func (d *TestDatabaseImpl) IsClosed() bool {
	d.closeMu.Lock()
	defer d.closeMu.Unlock()
	return d.closed
}

// TestGreeter is the greeting capability used by scenario tests
type TestGreeter interface {
	Greet() string
}

type testGreeting string

func (g testGreeting) Greet() string {
	return string(g)
}

// CountingGreeterFactory builds greeters named prefix-0, prefix-1, ...
// Each factory owns its counter, so tests never share state.
type CountingGreeterFactory struct {
	prefix string
	calls  atomic.Int64
}

func NewCountingGreeterFactory(prefix string) *CountingGreeterFactory {
	return &CountingGreeterFactory{prefix: prefix}
}

// New is the factory function to register.
func (f *CountingGreeterFactory) New() TestGreeter {
	n := f.calls.Add(1) - 1
	return testGreeting(fmt.Sprintf("%s-%d", f.prefix, n))
}

// Calls returns how many greeters were built.
func (f *CountingGreeterFactory) Calls() int {
	return int(f.calls.Load())
}

// TestClock is the shared token capability used by scenario tests
type TestClock interface {
	Token() string
}

// TestClockImpl implements TestClock with a random token
type TestClockImpl struct {
	token string
}

func NewTestClock() TestClock {
	return &TestClockImpl{token: uuid.NewString()}
}

func (c *TestClockImpl) Token() string {
	return c.token
}

// CallCounter wraps a factory and counts its invocations
type CallCounter[T any] struct {
	factory func() T
	delay   time.Duration
	calls   atomic.Int64
}

// NewCallCounter wraps factory. A non-zero delay widens race windows in
// concurrency tests.
func NewCallCounter[T any](factory func() T, delay time.Duration) *CallCounter[T] {
	return &CallCounter[T]{factory: factory, delay: delay}
}

// New invokes the wrapped factory.
func (c *CallCounter[T]) New() T {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.factory()
}

// Calls returns how many times New ran.
func (c *CallCounter[T]) Calls() int {
	return int(c.calls.Load())
}
