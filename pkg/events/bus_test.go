package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesListenersInOrder(t *testing.T) {
	bus := NewBus[string]()
	var got []string

	bus.Subscribe(func(v string) { got = append(got, "a:"+v) })
	bus.Subscribe(func(v string) { got = append(got, "b:"+v) })

	bus.Publish("42")

	assert.Equal(t, []string{"a:42", "b:42"}, got)
}

func TestUnsubscribeRemovesOnlyThatListener(t *testing.T) {
	bus := NewBus[int]()
	var a, b int

	unsubA := bus.Subscribe(func(v int) { a += v })
	bus.Subscribe(func(v int) { b += v })

	bus.Publish(1)
	unsubA()
	unsubA()
	bus.Publish(1)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, bus.Len())
}

func TestListenerMayUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus[int]()
	calls := 0

	var unsub func()
	unsub = bus.Subscribe(func(int) {
		calls++
		unsub()
	})

	bus.Publish(1)
	bus.Publish(2)

	assert.Equal(t, 1, calls)
	assert.Zero(t, bus.Len())
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	bus := NewBus[int]()
	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := bus.Subscribe(func(v int) {
				mu.Lock()
				total += v
				mu.Unlock()
			})
			bus.Publish(1)
			unsub()
		}()
	}
	wg.Wait()

	assert.Zero(t, bus.Len())
	assert.Positive(t, total)
}
