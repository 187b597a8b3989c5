package tricount

import (
	"time"

	"go.uber.org/zap"
)

// DefaultStepBudget bounds how many forward steps and resets a single
// BrowseTo may spend before giving up.
const DefaultStepBudget = 10

// Navigator drives the session toward a target screen. All browser
// navigation and frame switches happen here; callers never touch the
// session's address or frame state directly.
type Navigator struct {
	classifier  *Classifier
	cat         *Catalog
	waitTimeout time.Duration
	log         *zap.Logger
}

func NewNavigator(classifier *Classifier, cat *Catalog, waitTimeout time.Duration, log *zap.Logger) *Navigator {
	if waitTimeout <= 0 {
		waitTimeout = DefaultProbeTimeout
	}
	return &Navigator{classifier: classifier, cat: cat, waitTimeout: waitTimeout, log: log}
}

// BrowseTo steers the session to the target screen, spending at most budget
// steps. A forward action costs one step, and so does a reset to the base
// URL. Budget exhaustion is a normal failure, not an error: the caller gets
// false and a session in whatever state the last step left it.
func (n *Navigator) BrowseTo(d Driver, baseURL string, target Screen, budget int) bool {
	for steps := budget; ; steps-- {
		current, err := n.classifier.Classify(d)
		if err != nil {
			// Off-site and unrecognized pages both collapse into the
			// sentinel, which the step below answers with a reset.
			n.log.Debug("classification failed", zap.Error(err))
			current = ScreenInvalidURL
		}

		if current == target {
			return true
		}
		if steps <= 0 {
			n.log.Warn("step budget exhausted",
				zap.Stringer("current", current),
				zap.Stringer("target", target),
				zap.Int("budget", budget))
			return false
		}

		if current.Before(target) {
			n.log.Info("advancing",
				zap.Stringer("from", current),
				zap.Stringer("target", target))
			if err := n.advance(d, current); err != nil {
				// Transient load delay; the next iteration reclassifies
				// and resets if the page is genuinely stuck.
				n.log.Warn("forward step failed", zap.Stringer("from", current), zap.Error(err))
			}
		} else {
			// At or past the target, or in an unknown state. The site has
			// no reliable back action, so escape via the front door.
			n.reset(d, baseURL)
		}
	}
}

// advance performs the single forward action out of the given screen: wait
// for its proof elements, then click the first one. The start screen is the
// exception; it advances by switching into the application iframe.
func (n *Navigator) advance(d Driver, from Screen) error {
	if from == ScreenPreUsersList {
		return d.EnterFrame(n.cat.FrameID, n.waitTimeout)
	}

	spec := n.cat.Screens[from]
	for _, query := range spec.Probes {
		if err := d.WaitPresent(Locator{By: spec.By, Query: query}, n.waitTimeout); err != nil {
			return err
		}
	}
	return d.Click(Locator{By: spec.By, Query: spec.Probes[0]}, n.waitTimeout)
}

// reset loads the base URL and re-enters the application iframe. Confirming
// that the users list actually rendered is best effort; a failure here only
// logs, the next classification decides what happens.
func (n *Navigator) reset(d Driver, baseURL string) {
	n.log.Info("resetting to base url", zap.String("url", baseURL))

	if err := d.Navigate(baseURL); err != nil {
		n.log.Warn("reset navigation failed", zap.Error(err))
		return
	}
	if err := d.WaitPresent(Locator{By: ByID, Query: n.cat.FrameID}, n.waitTimeout); err != nil {
		n.log.Warn("iframe marker not loaded after reset", zap.String("iframe", n.cat.FrameID), zap.Error(err))
		return
	}
	if err := d.EnterFrame(n.cat.FrameID, n.waitTimeout); err != nil {
		n.log.Warn("could not enter iframe after reset", zap.String("iframe", n.cat.FrameID), zap.Error(err))
		return
	}

	spec := n.cat.Screens[ScreenUsersList]
	for _, query := range spec.Probes {
		if err := d.WaitPresent(Locator{By: spec.By, Query: query}, n.waitTimeout); err != nil {
			n.log.Warn("users list not confirmed after reset", zap.Error(err))
			return
		}
	}
}
