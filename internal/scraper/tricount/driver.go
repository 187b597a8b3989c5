package tricount

import "time"

// Driver is the slice of browser capability this package consumes. The rod
// implementation lives in internal/scraper/browser; tests substitute a fake.
//
// All element-taking methods block up to the given timeout for the element
// to be present and return an error wrapping ErrElementNotLoaded when it
// never appears.
type Driver interface {
	// CurrentURL returns the session's current address.
	CurrentURL() (string, error)

	// WaitPresent probes for the element without interacting with it.
	WaitPresent(loc Locator, timeout time.Duration) error

	// Click clicks the element.
	Click(loc Locator, timeout time.Duration) error

	// Type sends text into the element. Pre-existing content is not
	// cleared; the target site's form fields start empty.
	Type(loc Locator, text string, timeout time.Duration) error

	// Navigate loads the URL in the outer page and resets the active
	// context out of any previously entered frame.
	Navigate(url string) error

	// EnterFrame switches the active context into the iframe with the
	// given id. Subsequent element operations and HTML run inside it.
	EnterFrame(frameID string, timeout time.Duration) error

	// HTML returns the serialized document of the active context.
	HTML() (string, error)
}
