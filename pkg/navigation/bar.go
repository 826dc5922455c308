package navigation

import (
	"sync"

	"github.com/zfogg/resep/pkg/events"
)

// AddressBar holds the current URL fragment
type AddressBar interface {
	Fragment() string
	SetFragment(fragment string)
}

// FragmentNotifier is implemented by address bars that can report fragment
// changes made outside the machine, such as a followed link
type FragmentNotifier interface {
	OnFragmentChange(fn func(fragment string)) func()
}

var (
	_ AddressBar       = (*MemoryBar)(nil)
	_ FragmentNotifier = (*MemoryBar)(nil)
)

// MemoryBar is an in-process address bar
type MemoryBar struct {
	mu       sync.RWMutex
	fragment string
	bus      *events.Bus[string]
}

// NewMemoryBar creates an address bar showing fragment
func NewMemoryBar(fragment string) *MemoryBar {
	return &MemoryBar{fragment: fragment, bus: events.NewBus[string]()}
}

func (b *MemoryBar) Fragment() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fragment
}

// SetFragment replaces the fragment without notifying listeners
func (b *MemoryBar) SetFragment(fragment string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fragment = fragment
}

// Follow replaces the fragment as if the user followed a link and notifies
// listeners
func (b *MemoryBar) Follow(fragment string) {
	b.SetFragment(fragment)
	b.bus.Publish(fragment)
}

func (b *MemoryBar) OnFragmentChange(fn func(fragment string)) func() {
	return b.bus.Subscribe(fn)
}
