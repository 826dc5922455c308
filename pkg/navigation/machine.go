// Package navigation holds the view state of a browsing session and keeps it
// in sync with the URL fragment used for deep links.
package navigation

import (
	"sync"

	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/events"
	"github.com/zfogg/resep/pkg/logger"
)

// Page is a top-level section of the catalog
type Page string

const (
	PageHome    Page = "home"
	PageMakanan Page = api.CategoryMakanan
	PageMinuman Page = api.CategoryMinuman
	PageProfile Page = "profile"
)

// Pages lists every top-level page in menu order
var Pages = []Page{PageHome, PageMakanan, PageMinuman, PageProfile}

// Valid reports whether p is a known page
func (p Page) Valid() bool {
	for _, known := range Pages {
		if p == known {
			return true
		}
	}
	return false
}

// Mode is what the main view is showing
type Mode string

const (
	ModeList   Mode = "list"
	ModeDetail Mode = "detail"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ViewState is the whole navigation state. Page only applies in list mode.
type ViewState struct {
	Page             Page
	Mode             Mode
	SelectedRecipeID *string
	SelectedCategory string
	EditingRecipeID  *string
}

func (v ViewState) clone() ViewState {
	if v.SelectedRecipeID != nil {
		id := *v.SelectedRecipeID
		v.SelectedRecipeID = &id
	}
	if v.EditingRecipeID != nil {
		id := *v.EditingRecipeID
		v.EditingRecipeID = &id
	}
	return v
}

// Machine applies navigation transitions and mirrors detail views into the
// address bar. It is safe for concurrent use.
type Machine struct {
	mu     sync.Mutex
	bar    AddressBar
	state  ViewState
	bus    *events.Bus[ViewState]
	unwire func()
}

// New creates a machine whose initial state comes from the bar's current
// fragment: a recipe link opens that recipe, anything else starts on the
// home list. If bar implements FragmentNotifier, later fragment changes are
// applied as they happen until Close.
func New(bar AddressBar) *Machine {
	m := &Machine{
		bar: bar,
		state: ViewState{
			Page:             PageHome,
			Mode:             ModeList,
			SelectedCategory: DefaultCategory,
		},
		bus: events.NewBus[ViewState](),
	}

	if v, ok := ParseFragment(bar.Fragment()); ok {
		m.state.followLink(v)
		m.state.dropStaleIDs()
	}

	if n, ok := bar.(FragmentNotifier); ok {
		m.unwire = n.OnFragmentChange(func(fragment string) {
			m.HandleFragmentChange(fragment)
		})
	}
	return m
}

// Close stops following address bar changes
func (m *Machine) Close() {
	m.mu.Lock()
	unwire := m.unwire
	m.unwire = nil
	m.mu.Unlock()

	if unwire != nil {
		unwire()
	}
}

// OnChange registers fn to run after every transition
func (m *Machine) OnChange(fn func(ViewState)) func() {
	return m.bus.Subscribe(fn)
}

// State returns a copy of the current state
func (m *Machine) State() ViewState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Fragment returns the address bar's current fragment
func (m *Machine) Fragment() string {
	return m.bar.Fragment()
}

// transition runs fn under the lock, mirrors the result into the address
// bar when syncBar is set, then notifies listeners
func (m *Machine) transition(syncBar bool, fn func(s *ViewState)) {
	m.mu.Lock()
	fn(&m.state)
	m.state.dropStaleIDs()
	next := m.state.clone()
	if syncBar {
		m.bar.SetFragment(ToFragment(next))
	}
	m.mu.Unlock()

	logger.Debug("Navigation", "page", next.Page, "mode", next.Mode)
	m.bus.Publish(next)
}

// dropStaleIDs keeps the selected recipe only in detail mode and the
// edited recipe only in edit mode
func (v *ViewState) dropStaleIDs() {
	if v.Mode != ModeDetail {
		v.SelectedRecipeID = nil
	}
	if v.Mode != ModeEdit {
		v.EditingRecipeID = nil
	}
}

func (v *ViewState) followLink(link ViewState) {
	v.Mode = ModeDetail
	v.SelectedRecipeID = link.SelectedRecipeID
	v.SelectedCategory = link.SelectedCategory
}

// NavigateTo shows the list for page
func (m *Machine) NavigateTo(page Page) {
	m.transition(true, func(s *ViewState) {
		s.Mode = ModeList
		s.Page = page
		s.SelectedRecipeID = nil
		s.EditingRecipeID = nil
	})
}

// OpenCreate shows the new recipe form
func (m *Machine) OpenCreate() {
	m.transition(true, func(s *ViewState) {
		s.Mode = ModeCreate
	})
}

// OpenRecipe shows recipe id. An empty category falls back to the active
// page. The fragment is set so the view can be shared.
func (m *Machine) OpenRecipe(id, category string) {
	m.transition(true, func(s *ViewState) {
		if category == "" {
			category = string(s.Page)
		}
		s.Mode = ModeDetail
		s.SelectedRecipeID = &id
		s.SelectedCategory = category
	})
}

// OpenEdit shows the edit form for recipe id. Edit views have no deep link,
// so the fragment is left alone.
func (m *Machine) OpenEdit(id string) {
	m.transition(false, func(s *ViewState) {
		s.Mode = ModeEdit
		s.EditingRecipeID = &id
	})
}

// GoBack returns to the active page's list
func (m *Machine) GoBack() {
	m.transition(true, func(s *ViewState) {
		s.Mode = ModeList
		s.SelectedRecipeID = nil
		s.EditingRecipeID = nil
	})
}

// OnCreateSuccess returns to the list, switching to the new recipe's
// category when it names a known page
func (m *Machine) OnCreateSuccess(created *api.Recipe) {
	m.transition(true, func(s *ViewState) {
		s.Mode = ModeList
		if created != nil && Page(created.Category).Valid() {
			s.Page = Page(created.Category)
		}
	})
}

// OnEditSuccess returns to the list
func (m *Machine) OnEditSuccess(_ *api.Recipe) {
	m.transition(true, func(s *ViewState) {
		s.Mode = ModeList
	})
}

// HandleFragmentChange applies a fragment changed outside the machine. A
// recipe link forces the detail view whatever the current state; any other
// fragment is ignored. It reports whether a transition happened.
func (m *Machine) HandleFragmentChange(fragment string) bool {
	v, ok := ParseFragment(fragment)
	if !ok {
		logger.Debug("Ignoring fragment", "fragment", fragment)
		return false
	}

	m.transition(false, func(s *ViewState) {
		s.followLink(v)
	})
	return true
}
