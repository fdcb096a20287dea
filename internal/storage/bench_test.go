package storage

import (
	"fmt"
	"testing"
)

func createBenchStorage(b *testing.B) *Storage {
	b.Helper()
	s, err := New(b.TempDir())
	if err != nil {
		b.Fatalf("failed to create bench storage: %v", err)
	}
	return s
}

func benchTasks(n int) *TaskStore {
	store := &TaskStore{Tasks: make([]Task, n)}
	for i := range store.Tasks {
		store.Tasks[i] = Task{
			ID:        fmt.Sprintf("t%d", i),
			Text:      fmt.Sprintf("Task %d", i),
			Emoji:     "📝",
			Completed: i%3 == 0,
			Date:      fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1),
		}
	}
	return store
}

// BenchmarkSaveTasks measures an atomic write with backup at varying sizes.
func BenchmarkSaveTasks(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			s := createBenchStorage(b)
			store := benchTasks(size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := s.SaveTasks(store); err != nil {
					b.Fatalf("SaveTasks failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkLoadTasks measures decoding at varying sizes.
func BenchmarkLoadTasks(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			s := createBenchStorage(b)
			if err := s.SaveTasks(benchTasks(size)); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.LoadTasks(); err != nil {
					b.Fatalf("LoadTasks failed: %v", err)
				}
			}
		})
	}
}
