// Package sitemap maps component descriptors to canonical site URLs with
// change-frequency and priority metadata, and renders them as sitemaps.org
// XML or as JSON records for the hosting platform.
package sitemap

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/educlopez/smoothui-sub003/internal/docs"
)

// Change frequencies used by the emitter.
const (
	ChangeYearly  = "yearly"
	ChangeMonthly = "monthly"
	ChangeWeekly  = "weekly"
)

// Priorities used by the emitter.
const (
	PriorityRoot      = 1.0
	PriorityDocsIndex = 0.9
	PriorityComponent = 0.8
)

// DocsPath is the docs index path; component pages live beneath it.
const DocsPath = "/doc"

// Entry is one sitemap record.
type Entry struct {
	URL             string    `json:"url"`
	LastModified    time.Time `json:"lastModified"`
	ChangeFrequency string    `json:"changeFrequency"`
	Priority        float64   `json:"priority"`
}

// Emit returns the site root and docs index entries followed by one entry
// per descriptor, in input order. The result always has len(descriptors)+2
// entries.
func Emit(descriptors []docs.Descriptor, baseURL string, buildTime time.Time) []Entry {
	base := strings.TrimRight(baseURL, "/")
	buildTime = buildTime.UTC()

	entries := make([]Entry, 0, len(descriptors)+2)
	entries = append(entries,
		Entry{URL: base, LastModified: buildTime, ChangeFrequency: ChangeYearly, Priority: PriorityRoot},
		Entry{URL: base + DocsPath, LastModified: buildTime, ChangeFrequency: ChangeWeekly, Priority: PriorityDocsIndex},
	)

	for _, d := range descriptors {
		entries = append(entries, Entry{
			URL:             base + DocsPath + "/" + d.Slug,
			LastModified:    buildTime,
			ChangeFrequency: ChangeMonthly,
			Priority:        PriorityComponent,
		})
	}

	return entries
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// WriteXML renders entries as a sitemaps.org urlset document.
func WriteXML(w io.Writer, entries []Entry) error {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, e := range entries {
		set.URLs = append(set.URLs, xmlURL{
			Loc:        e.URL,
			LastMod:    e.LastModified.Format(time.RFC3339),
			ChangeFreq: e.ChangeFrequency,
			Priority:   fmt.Sprintf("%.1f", e.Priority),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encoding sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteJSON renders entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding sitemap: %w", err)
	}
	return nil
}
