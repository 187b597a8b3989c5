// capture-screens saves the iframe document of each Tricount screen as an
// HTML fixture for the parser tests, with display names redacted so real
// group data never lands in the repo.
//
// Usage:
//
//	go run ./scripts/capture-screens -url=https://... -redact="alice,bob"
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

var captures = []struct {
	Name         string
	Instructions string
}{
	{"users_list", "Enter the app and wait for the user tiles"},
	{"expenses_list", "Click your user to open the expenses list"},
	{"expense_form", "Click 'Add an expense' (don't save)"},
}

func main() {
	url := flag.String("url", os.Getenv("TRICOUNT_URL"), "Tricount URL")
	outputDir := flag.String("output", filepath.Join("internal", "scraper", "tricount", "testdata", "fixtures"), "fixture output directory")
	redact := flag.String("redact", "", "comma-separated display names to replace with placeholders")
	flag.Parse()

	if *url == "" {
		fmt.Println("Usage: go run ./scripts/capture-screens -url=https://... -redact=alice,bob")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

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

	for _, capture := range captures {
		fmt.Println("----------------------------------------------------------------")
		fmt.Printf("Capturing: %s.html\n", capture.Name)
		fmt.Printf("  -> %s\n", capture.Instructions)
		fmt.Print("  Press ENTER when ready (or 'skip'/'quit'): ")

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))
		if input == "quit" {
			break
		}
		if input == "skip" {
			continue
		}

		html, err := frameHTML(page)
		if err != nil {
			fmt.Printf("  capture failed: %v\n", err)
			continue
		}

		html = redactNames(html, *redact)

		path := filepath.Join(*outputDir, capture.Name+".html")
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			fmt.Printf("  write failed: %v\n", err)
			continue
		}
		fmt.Printf("  saved %s (%d bytes)\n", path, len(html))
	}
}

// frameHTML returns the module-web iframe document, falling back to the
// outer page when the frame is not reachable.
func frameHTML(page *rod.Page) (string, error) {
	el, err := page.Element("#module-web")
	if err != nil {
		return page.HTML()
	}
	frame, err := el.Frame()
	if err != nil {
		return page.HTML()
	}
	return frame.HTML()
}

// redactNames replaces each listed display name with a stable placeholder
// (user1, user2, ...) so fixtures stay anonymous but still parse.
func redactNames(html, names string) string {
	if names == "" {
		return html
	}
	var pairs []string
	for i, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		pairs = append(pairs, name, fmt.Sprintf("user%d", i+1))
	}
	return strings.NewReplacer(pairs...).Replace(html)
}
