package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolDeliversEveryJob(t *testing.T) {
	p := NewPool(3)

	var mu sync.Mutex
	sent := map[string]bool{}
	recipients := []string{"a@b.c", "b@b.c", "c@b.c", "d@b.c", "e@b.c"}
	for _, to := range recipients {
		to := to
		p.Submit(func() {
			mu.Lock()
			sent[to] = true
			mu.Unlock()
		})
	}
	p.Stop()

	require.Len(t, sent, len(recipients))
	for _, to := range recipients {
		require.True(t, sent[to], "welcome mail for %s never ran", to)
	}
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(0)
	done := false
	p.Submit(func() { done = true })
	p.Stop()
	require.True(t, done)
}

func TestPoolIgnoresNilJobs(t *testing.T) {
	p := NewPool(1)
	p.Submit(nil)
	ran := false
	p.Submit(func() { ran = true })
	p.Stop()
	require.True(t, ran)
}
