package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifierCoalescesBursts(t *testing.T) {
	var n notifier
	updates := n.Subscribe()

	for range 5 {
		n.notify()
	}

	// A burst collapses into a single pending signal.
	select {
	case <-updates:
	default:
		t.Fatal("expected a pending notification")
	}
	select {
	case <-updates:
		t.Fatal("expected the burst to coalesce")
	default:
	}
}

func TestNotifierFansOut(t *testing.T) {
	var n notifier
	first := n.Subscribe()
	second := n.Subscribe()

	n.notify()

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}
