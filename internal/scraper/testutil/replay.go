// Package testutil lets scraper tests run against recorded pages instead of
// the live site.
package testutil

import (
	"encoding/json"
	"log"
	"net/url"
	"os"
	"testing"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Recording is a set of captured documents keyed by URL. The target site is
// one outer document plus one iframe document per screen, so a full
// HAR-style request log is not needed; a page-per-URL map covers it.
type Recording struct {
	Pages []RecordedPage `json:"pages"`
}

// RecordedPage is one captured document.
type RecordedPage struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Body     string `json:"body"`
}

// LoadRecording reads a recording JSON produced by scripts/capture-screens.
func LoadRecording(t *testing.T, path string) *Recording {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to load recording %s: %v", path, err)
	}

	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("Failed to parse recording %s: %v", path, err)
	}
	return &rec
}

// Middleware returns a rod hijack handler serving the recorded documents.
// Matching is by scheme+host+path so query-string noise from the GWT client
// does not break replay. Unmatched requests get an empty 404.
//
// Use with router.MustAdd("*", rec.Middleware(verbose)).
func (rec *Recording) Middleware(verbose bool) func(*rod.Hijack) {
	index := make(map[string]*RecordedPage, len(rec.Pages))
	for i := range rec.Pages {
		page := &rec.Pages[i]
		index[pathKey(page.URL)] = page
	}

	return func(ctx *rod.Hijack) {
		key := pathKey(ctx.Request.URL().String())

		page, found := index[key]
		if !found {
			if verbose {
				log.Printf("[replay] no recording for: %s", key)
			}
			ctx.Response.Payload().ResponseCode = 404
			return
		}

		if verbose {
			log.Printf("[replay] serving: %s", key)
		}
		payload := ctx.Response.Payload()
		payload.ResponseCode = 200
		payload.Body = []byte(page.Body)
		mime := page.MimeType
		if mime == "" {
			mime = "text/html"
		}
		payload.ResponseHeaders = append(payload.ResponseHeaders,
			&proto.FetchHeaderEntry{Name: "Content-Type", Value: mime})
	}
}

func pathKey(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return parsed.Scheme + "://" + parsed.Host + parsed.Path
}
