package tricount

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultProbeTimeout bounds each individual element probe. The GWT frontend
// renders in bursts, so a few seconds is enough to tell "still loading" from
// "not this screen".
const DefaultProbeTimeout = 5 * time.Second

// Classifier decides which screen the session currently displays.
type Classifier struct {
	cat          *Catalog
	probeTimeout time.Duration
	log          *zap.Logger
}

func NewClassifier(cat *Catalog, probeTimeout time.Duration, log *zap.Logger) *Classifier {
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	return &Classifier{cat: cat, probeTimeout: probeTimeout, log: log}
}

// Classify returns the screen the driver currently displays. The address
// must contain the catalog's URL fragment, otherwise the result is the
// invalid_url sentinel with an *InvalidURLError. On-site pages matching no
// known screen return the sentinel with ErrUnrecognizedPage.
func (c *Classifier) Classify(d Driver) (Screen, error) {
	addr, err := d.CurrentURL()
	if err != nil {
		return ScreenInvalidURL, fmt.Errorf("reading session address: %w", err)
	}
	if !strings.Contains(addr, c.cat.URLContains) {
		return ScreenInvalidURL, &InvalidURLError{Expected: c.cat.URLContains, Actual: addr}
	}

	for _, screen := range classifyOrder {
		if err := c.probeScreen(d, screen); err != nil {
			c.log.Debug("screen probe failed",
				zap.Stringer("screen", screen),
				zap.Error(err))
			continue
		}
		c.log.Debug("screen classified", zap.Stringer("screen", screen))
		return screen, nil
	}

	return ScreenInvalidURL, ErrUnrecognizedPage
}

// probeScreen checks every proof element of the screen's spec, sequentially.
// One timed-out probe fails the whole screen check.
func (c *Classifier) probeScreen(d Driver, screen Screen) error {
	spec, ok := c.cat.Screens[screen]
	if !ok {
		return fmt.Errorf("no locator spec for screen %s", screen)
	}
	for _, query := range spec.Probes {
		if err := d.WaitPresent(Locator{By: spec.By, Query: query}, c.probeTimeout); err != nil {
			return err
		}
	}
	return nil
}
