package loigen

import (
	"context"
	"runtime"
	"sync"
	"testing"
)

// Compile-time interface check.
var _ interface {
	Acquire() *Service
	Release(*Service)
	Size() int
	Close() error
} = (*ServicePool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestServicePool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(2, withRenderer(&mockRenderer{}), WithLogger(discardLogger))
	defer pool.Close()

	if pool.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", pool.Size())
	}

	a := pool.Acquire()
	b := pool.Acquire()
	if a == nil || b == nil {
		t.Fatal("Acquire() returned nil service")
	}
	if a == b {
		t.Error("pool handed out the same service twice without release")
	}

	pool.Release(a)
	if c := pool.Acquire(); c != a {
		t.Error("released service not reused")
	}
}

func TestServicePool_MinimumSize(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(0, withRenderer(&mockRenderer{}))
	defer pool.Close()

	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want clamped minimum 1", pool.Size())
	}
}

func TestServicePool_RenderPDF(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(2, withRenderer(&mockRenderer{output: []byte("%PDF pooled")}), WithLogger(discardLogger))
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := pool.RenderPDF(context.Background(), "<p>x</p>")
			if err != nil {
				t.Errorf("RenderPDF() error = %v", err)
				return
			}
			if string(got) != "%PDF pooled" {
				t.Errorf("RenderPDF() = %q", got)
			}
		}()
	}
	wg.Wait()
}

func TestServicePool_GenerateLetter(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(1,
		withRenderer(&mockRenderer{}),
		withEncoder(&mockEncoder{output: []byte("docx")}),
		WithLogger(discardLogger),
	)
	defer pool.Close()

	got, err := pool.GenerateLetter(context.Background(), LetterRequest{})
	if err != nil {
		t.Fatalf("GenerateLetter() error = %v", err)
	}
	if string(got) != "docx" {
		t.Errorf("GenerateLetter() = %q", got)
	}
}

func TestServicePool_ReleaseDuringClose(t *testing.T) {
	t.Parallel()

	// Release racing Close must either hand the service back or drop
	// it on the closed pool; it must never panic on a closed channel.
	for i := 0; i < 200; i++ {
		pool := NewServicePool(1, withRenderer(&mockRenderer{}), WithLogger(discardLogger))
		svc := pool.Acquire()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Release(svc)
		}()

		if err := pool.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		wg.Wait()
	}
}

func TestServicePool_CloseIdempotent(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(1, withRenderer(&mockRenderer{}))
	pool.Acquire()

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
