package browser

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/tricount-tools/tricount-sync/internal/scraper/tricount"
)

// Driver implements tricount.Driver on a rod page. Entering an iframe swaps
// the active context; navigating swaps it back to the outer page.
type Driver struct {
	browser     *rod.Browser
	page        *rod.Page // outer page
	active      *rod.Page // outer page or the entered iframe
	humanTyping bool
}

var _ tricount.Driver = (*Driver)(nil)

// Close shuts down the browser process. Safe to defer right after New.
func (d *Driver) Close() error {
	return d.browser.Close()
}

func (d *Driver) CurrentURL() (string, error) {
	info, err := d.page.Info()
	if err != nil {
		return "", fmt.Errorf("reading page info: %w", err)
	}
	return info.URL, nil
}

func (d *Driver) Navigate(url string) error {
	d.active = d.page
	if err := d.page.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return d.page.WaitLoad()
}

func (d *Driver) EnterFrame(frameID string, timeout time.Duration) error {
	el, err := d.page.Timeout(timeout).Element("#" + frameID)
	if err != nil {
		return fmt.Errorf("%w: iframe #%s: %v", tricount.ErrElementNotLoaded, frameID, err)
	}
	frame, err := el.Frame()
	if err != nil {
		return fmt.Errorf("entering iframe #%s: %w", frameID, err)
	}
	if err := frame.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for iframe #%s document: %w", frameID, err)
	}
	d.active = frame
	return nil
}

func (d *Driver) WaitPresent(loc tricount.Locator, timeout time.Duration) error {
	_, err := d.element(loc, timeout)
	return err
}

func (d *Driver) Click(loc tricount.Locator, timeout time.Duration) error {
	el, err := d.element(loc, timeout)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("clicking %s %q: %w", loc.By, loc.Query, err)
	}
	return nil
}

func (d *Driver) Type(loc tricount.Locator, text string, timeout time.Duration) error {
	el, err := d.element(loc, timeout)
	if err != nil {
		return err
	}
	typeText := TypeFast
	if d.humanTyping {
		typeText = TypeHuman
	}
	if err := typeText(el, text); err != nil {
		return fmt.Errorf("typing into %s %q: %w", loc.By, loc.Query, err)
	}
	return nil
}

func (d *Driver) HTML() (string, error) {
	return d.active.HTML()
}

// element resolves a locator inside the active context, blocking up to
// timeout for it to appear.
func (d *Driver) element(loc tricount.Locator, timeout time.Duration) (*rod.Element, error) {
	ctx := d.active.Timeout(timeout)

	var el *rod.Element
	var err error
	switch loc.By {
	case tricount.ByID:
		el, err = ctx.Element("#" + loc.Query)
	case tricount.ByXPath:
		el, err = ctx.ElementX(loc.Query)
	default:
		return nil, fmt.Errorf("unknown locator mechanism %q", loc.By)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", tricount.ErrElementNotLoaded, loc.By, loc.Query, err)
	}
	return el, nil
}
