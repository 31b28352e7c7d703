package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignal_StopIsIdempotent(t *testing.T) {
	s := New()
	assert.False(t, s.Stopped())
	s.Stop()
	s.Stop()
	assert.True(t, s.Stopped())
}

func TestSignal_SleepCompletesNormally(t *testing.T) {
	s := New()
	start := time.Now()
	ok := s.Sleep(10 * time.Millisecond)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestSignal_SleepInterruptedByStop(t *testing.T) {
	s := New()
	go func() {
		time.Sleep(5 * time.Millisecond)
		s.Stop()
	}()
	ok := s.Sleep(time.Hour)
	assert.False(t, ok)
}

func TestSignal_DoneClosesOnStop(t *testing.T) {
	s := New()
	select {
	case <-s.Done():
		t.Fatal("done channel closed before Stop")
	default:
	}
	s.Stop()
	select {
	case <-s.Done():
	default:
		t.Fatal("done channel not closed after Stop")
	}
}

func TestSignal_TenSubTicksObserveStopPromptly(t *testing.T) {
	s := New()
	go func() {
		time.Sleep(15 * time.Millisecond)
		s.Stop()
	}()

	ticks := 0
	for i := 0; i < 10; i++ {
		if !s.Sleep(100 * time.Millisecond) {
			break
		}
		ticks++
	}
	assert.Less(t, ticks, 10, "stop should interrupt the sub-tick loop well before it completes")
}
