// Package browser provides the rod-backed implementation of the tricount
// Driver port: one browser process, one stealth page, with frame switching
// and bounded element waits.
package browser

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Options configures the launched browser.
type Options struct {
	Headless bool
	// HumanTyping adds keystroke delays when filling form fields. Slower,
	// but closer to what the site's bot heuristics expect.
	HumanTyping bool
}

// New launches a Chromium instance and opens a stealth page on it. The
// returned Driver owns the browser process; Close releases it.
func New(opts Options) (*Driver, error) {
	// The target site silently degrades when it detects automation, so the
	// automation switches are stripped the same way the original headless
	// setup did.
	url, err := launcher.New().
		Headless(opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("exclude-switches", "enable-automation").
		Set("no-first-run").
		Set("no-default-browser-check").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("opening stealth page: %w", err)
	}

	return &Driver{browser: b, page: page, active: page, humanTyping: opts.HumanTyping}, nil
}
