package tricount

import (
	"fmt"
	"time"
)

// screenNone marks a fake that renders no known screen at all.
const screenNone = Screen(-1)

// fakeSite simulates the target site as seen through the Driver port: a
// current screen, the persistent iframe scaffolding, and the fixed forward
// transitions. Counters record every side effect so tests can assert on
// exactly which navigation actions ran.
type fakeSite struct {
	cat    *Catalog
	url    string
	screen Screen

	// html is what HTML() serves per screen.
	html map[Screen]string

	navigations int
	frameEnters int
	clicked     []string
	typed       map[string]string

	failClicks map[string]error
	failType   map[string]error
}

func newFakeSite(cat *Catalog, at Screen) *fakeSite {
	return &fakeSite{
		cat:        cat,
		url:        "https://tricount.example/group/abc",
		screen:     at,
		html:       make(map[Screen]string),
		typed:      make(map[string]string),
		failClicks: make(map[string]error),
		failType:   make(map[string]error),
	}
}

func (f *fakeSite) actions() int {
	return f.navigations + f.frameEnters + len(f.clicked)
}

func (f *fakeSite) CurrentURL() (string, error) {
	return f.url, nil
}

func (f *fakeSite) Navigate(url string) error {
	f.navigations++
	f.url = url
	f.screen = ScreenPreUsersList
	return nil
}

func (f *fakeSite) EnterFrame(frameID string, _ time.Duration) error {
	f.frameEnters++
	if f.screen == screenNone {
		return fmt.Errorf("%w: iframe #%s", ErrElementNotLoaded, frameID)
	}
	// Entering the frame on a fresh page lands on the users list; entering
	// it again on a later screen changes nothing.
	if f.screen == ScreenPreUsersList {
		f.screen = ScreenUsersList
	}
	return nil
}

func (f *fakeSite) WaitPresent(loc Locator, _ time.Duration) error {
	if f.present(loc) {
		return nil
	}
	return fmt.Errorf("%w: %s %q", ErrElementNotLoaded, loc.By, loc.Query)
}

// present mirrors the real site: the current screen's markers are visible,
// and the iframe scaffolding persists across every on-site screen.
func (f *fakeSite) present(loc Locator) bool {
	if f.screen == screenNone {
		return false
	}
	if loc.By == ByID && loc.Query == f.cat.FrameID {
		return true
	}
	spec := f.cat.Screens[f.screen]
	if loc.By != spec.By {
		return false
	}
	for _, query := range spec.Probes {
		if query == loc.Query {
			return true
		}
	}
	return false
}

func (f *fakeSite) Click(loc Locator, _ time.Duration) error {
	f.clicked = append(f.clicked, loc.Query)
	if err, ok := f.failClicks[loc.Query]; ok {
		return err
	}
	switch {
	case f.screen == ScreenUsersList && loc.Query == f.cat.Screens[ScreenUsersList].Probes[0]:
		f.screen = ScreenExpensesList
	case f.screen == ScreenExpensesList && loc.Query == f.cat.Screens[ScreenExpensesList].Probes[0]:
		f.screen = ScreenExpenseForm
	case f.screen == ScreenExpenseForm && loc.Query == f.cat.Save.Query:
		f.screen = ScreenExpensesList
	}
	return nil
}

func (f *fakeSite) Type(loc Locator, text string, _ time.Duration) error {
	if err, ok := f.failType[loc.Query]; ok {
		return err
	}
	f.typed[loc.Query] = text
	return nil
}

func (f *fakeSite) HTML() (string, error) {
	return f.html[f.screen], nil
}
