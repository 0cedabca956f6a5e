package inject

import (
	"fmt"
	"sync"
	"testing"
)

// Benchmark capability types
type BenchService struct {
	Name string
}

type BenchDep struct{ Value int }

func NewBenchService() *BenchService {
	return &BenchService{Name: "bench"}
}

// setupBenchRegistry registers BenchService with the given lifetime, plus
// filler entries so lookups run against a populated map.
func setupBenchRegistry(b *testing.B, lifetime Lifetime, filler int) *Registry {
	b.Helper()

	r := NewRegistry()
	for i := range filler {
		n := i
		Register(r, Shared, func() *BenchDep { return &BenchDep{Value: n} }, Name(fmt.Sprintf("dep-%d", i)))
	}
	Register(r, lifetime, NewBenchService)

	b.Cleanup(func() {
		r.Close()
	})

	return r
}

// BenchmarkResolution tests resolution performance for each lifetime and registry size
func BenchmarkResolution(b *testing.B) {
	cases := []struct {
		name     string
		lifetime Lifetime
		filler   int
	}{
		{"Unique_Empty", Unique, 0},
		{"Unique_100", Unique, 100},
		{"Shared_Empty", Shared, 0},
		{"Shared_100", Shared, 100},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			r := setupBenchRegistry(b, tc.lifetime, tc.filler)

			// Warm up
			_, _ = Resolve[*BenchService](r)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = Resolve[*BenchService](r)
			}
		})
	}
}

// BenchmarkConcurrentResolution tests shared resolution under contention
func BenchmarkConcurrentResolution(b *testing.B) {
	r := setupBenchRegistry(b, Shared, 10)
	_, _ = Resolve[*BenchService](r)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = Resolve[*BenchService](r)
		}
	})
}

// BenchmarkOptionalMiss tests the cost of an absent optional dependency
func BenchmarkOptionalMiss(b *testing.B) {
	r := setupBenchRegistry(b, Shared, 10)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Optional[*BenchDep](r)
	}
}

// BenchmarkLazy compares a cached handle with direct resolution
func BenchmarkLazy(b *testing.B) {
	b.Run("Cached", func(b *testing.B) {
		r := setupBenchRegistry(b, Unique, 0)
		handle := NewLazy[*BenchService](r)
		handle.MustGet()

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = handle.MustGet()
		}
	})

	b.Run("Direct", func(b *testing.B) {
		r := setupBenchRegistry(b, Unique, 0)

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = MustResolve[*BenchService](r)
		}
	})
}

// BenchmarkRegister tests registration throughput
func BenchmarkRegister(b *testing.B) {
	r := NewRegistry()
	defer r.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Register(r, Shared, NewBenchService)
	}
}

// BenchmarkKeyOf tests key derivation
func BenchmarkKeyOf(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = KeyOf[*BenchService]("named")
	}
}

// BenchmarkMapVsSyncMap compares the registry's RWMutex map with sync.Map
func BenchmarkMapVsSyncMap(b *testing.B) {
	key := KeyOf[*BenchService]()

	b.Run("RWMutexMap", func(b *testing.B) {
		var mu sync.RWMutex
		m := map[Key]int{key: 1}

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				mu.RLock()
				_ = m[key]
				mu.RUnlock()
			}
		})
	})

	b.Run("SyncMap", func(b *testing.B) {
		var m sync.Map
		m.Store(key, 1)

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_, _ = m.Load(key)
			}
		})
	})
}
