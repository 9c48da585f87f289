package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32
	var shared int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			out, err, dup := g.Do("/bootstrap-static/", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return []byte(`{"events":[]}`), nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if _, ok := out.([]byte); !ok {
				t.Errorf("unexpected payload type %T", out)
			}
			if dup {
				atomic.AddInt32(&shared, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := atomic.LoadInt32(&shared); got == 0 {
		t.Fatalf("expected callers to share the result")
	}
}

func TestSingleFlight_ForgetStartsFreshCall(t *testing.T) {
	var g SingleFlight
	var counter int32

	for i := 0; i < 2; i++ {
		if _, err, _ := g.Do("/entry/1/history/", func() (any, error) {
			atomic.AddInt32(&counter, 1)
			return nil, nil
		}); err != nil {
			t.Fatalf("singleflight call failed: %v", err)
		}
		g.Forget("/entry/1/history/")
	}

	if got := atomic.LoadInt32(&counter); got != 2 {
		t.Fatalf("expected sequential calls to run separately, got %d", got)
	}
}
