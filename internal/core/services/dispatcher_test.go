package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

func TestEventDispatcher_DeliversInOrder(t *testing.T) {
	d := NewEventDispatcher()
	var got []string

	d.Subscribe(func(domain.Event) bool { got = append(got, "first"); return false })
	d.Subscribe(func(domain.Event) bool { got = append(got, "second"); return true })

	handled := d.Dispatch(domain.KeyEvent{Key: domain.KeyDown})

	assert.True(t, handled)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestEventDispatcher_NotHandled(t *testing.T) {
	d := NewEventDispatcher()
	d.Subscribe(func(domain.Event) bool { return false })

	assert.False(t, d.Dispatch(domain.PointerEvent{X: 1, Y: 1}))
}

func TestEventDispatcher_Unsubscribe(t *testing.T) {
	d := NewEventDispatcher()
	calls := 0
	unsubscribe := d.Subscribe(func(domain.Event) bool { calls++; return true })
	d.Subscribe(func(domain.Event) bool { return false })
	assert.Equal(t, 2, d.Len())

	unsubscribe()
	unsubscribe()

	assert.Equal(t, 1, d.Len())
	assert.False(t, d.Dispatch(domain.KeyEvent{Key: domain.KeyEnter}))
	assert.Zero(t, calls)
}

func TestEventDispatcher_UnsubscribeDuringDispatch(t *testing.T) {
	d := NewEventDispatcher()
	var unsubscribe func()
	unsubscribe = d.Subscribe(func(domain.Event) bool {
		unsubscribe()
		return true
	})

	assert.NotPanics(t, func() {
		d.Dispatch(domain.KeyEvent{Key: domain.KeyEscape})
	})
	assert.Zero(t, d.Len())
}
