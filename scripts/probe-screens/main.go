// probe-screens opens a visible browser on the Tricount and reports which
// screen locators currently match. Run it whenever the site's markup drifts
// and the classifier starts reporting unrecognized pages.
//
// Usage:
//
//	go run ./scripts/probe-screens -url=https://... -user="alice"
//
// Navigate manually through the flow; after each ENTER the tool probes every
// screen's locators inside the module-web iframe and prints a report.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/tricount-tools/tricount-sync/internal/scraper/tricount"
)

var stops = []struct {
	Name         string
	Instructions string
}{
	{"pre_users_list", "Let the outer page finish loading (stay outside the app)"},
	{"users_list", "Wait for the user tiles to render inside the frame"},
	{"expenses_list", "Click your user to open the expenses list"},
	{"expense_form", "Click 'Add an expense' to open the form (don't save)"},
}

func main() {
	url := flag.String("url", os.Getenv("TRICOUNT_URL"), "Tricount URL")
	user := flag.String("user", os.Getenv("USER_NAME"), "display name used in the users-list locator")
	flag.Parse()

	if *url == "" || *user == "" {
		fmt.Println("Usage: go run ./scripts/probe-screens -url=https://... -user=alice")
		os.Exit(1)
	}

	cat := tricount.DefaultCatalog(*user)

	controlURL := launcher.New().
		Headless(false).
		Set("disable-blink-features", "AutomationControlled").
		Set("exclude-switches", "enable-automation").
		Set("no-first-run").
		Set("no-default-browser-check").
		MustLaunch()

	browser := rod.New().ControlURL(controlURL).MustConnect()
	defer browser.MustClose()

	page := stealth.MustPage(browser)
	page.MustNavigate(*url)

	reader := bufio.NewReader(os.Stdin)

	for _, stop := range stops {
		fmt.Println("----------------------------------------------------------------")
		fmt.Printf("STOP: %s\n", stop.Name)
		fmt.Printf("  -> %s\n", stop.Instructions)
		fmt.Print("  Press ENTER when ready (or 'skip'/'quit'): ")

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))
		if input == "quit" {
			break
		}
		if input == "skip" {
			continue
		}

		probeAll(page, cat)
		fmt.Println()
	}

	fmt.Println("Done. Update internal/scraper/tricount/locators.go for any MISS above.")
}

// probeAll checks every screen's locators, both on the outer page and inside
// the module-web iframe when it is reachable.
func probeAll(page *rod.Page, cat *tricount.Catalog) {
	frame := page
	if el, err := page.Timeout(2 * time.Second).Element("#" + cat.FrameID); err == nil {
		if f, err := el.Frame(); err == nil {
			frame = f
			fmt.Printf("  (probing inside iframe #%s)\n", cat.FrameID)
		}
	} else {
		fmt.Printf("  MISS  iframe #%s not present, probing outer page\n", cat.FrameID)
	}

	for _, screen := range []tricount.Screen{
		tricount.ScreenPreUsersList,
		tricount.ScreenUsersList,
		tricount.ScreenExpensesList,
		tricount.ScreenExpenseForm,
	} {
		spec := cat.Screens[screen]
		for _, query := range spec.Probes {
			target := frame
			if spec.By == tricount.ByID {
				target = page
			}
			if found(target, spec.By, query) {
				fmt.Printf("  FOUND %-14s  %s\n", screen, truncate(query, 90))
			} else {
				fmt.Printf("  MISS  %-14s  %s\n", screen, truncate(query, 90))
			}
		}
	}
}

func found(page *rod.Page, by tricount.By, query string) bool {
	ctx := page.Timeout(1500 * time.Millisecond)
	var err error
	if by == tricount.ByID {
		_, err = ctx.Element("#" + query)
	} else {
		_, err = ctx.ElementX(query)
	}
	return err == nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
