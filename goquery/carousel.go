// Package goquery implements carousel extraction over rendered search
// results markup using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carousel"
	"golang.org/x/net/html"
)

// Origin is prepended to carousel entry hrefs, which are site-relative.
const Origin = "https://www.google.com"

// FieldSelectors pairs the item-name selector of one markup generation with
// the extension selector of the same generation. The extension selector is
// only tried when its row's name selector matched.
type FieldSelectors struct {
	Name      string
	Extension string
}

// Default selector tables, ordered from the preferred markup generation to
// older fallbacks.
var (
	DefaultCarouselSelectors = []string{
		"g-scrolling-carousel",
		`div[jsname="yRioIc"]`,
	}

	DefaultListNameSelectors = []string{
		"span.kxbc",
		"span.Wkr6U.z4P7Tc",
	}

	DefaultFieldSelectors = []FieldSelectors{
		{Name: ".kltat", Extension: ".ellip.klmeta"},
		{Name: ".jEmWnc", Extension: ".b7VT4c"},
	}
)

// Ensure Extractor implements carousel.Extractor at compile time.
var _ carousel.Extractor = (*Extractor)(nil)

// Extractor extracts a carousel list from rendered markup.
// The zero value is not usable; create one with NewExtractor.
type Extractor struct {
	carousels []string
	labels    []string
	fields    []FieldSelectors
	origin    string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCarouselSelectors replaces the carousel selector table.
func WithCarouselSelectors(selectors ...string) Option {
	return func(e *Extractor) {
		e.carousels = selectors
	}
}

// WithListNameSelectors replaces the list label selector table.
func WithListNameSelectors(selectors ...string) Option {
	return func(e *Extractor) {
		e.labels = selectors
	}
}

// WithFieldSelectors replaces the item field selector table.
func WithFieldSelectors(rows ...FieldSelectors) Option {
	return func(e *Extractor) {
		e.fields = rows
	}
}

// WithOrigin sets the origin prepended to item links.
func WithOrigin(origin string) Option {
	return func(e *Extractor) {
		e.origin = origin
	}
}

// NewExtractor creates a new Extractor using the default selector tables.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		carousels: DefaultCarouselSelectors,
		labels:    DefaultListNameSelectors,
		fields:    DefaultFieldSelectors,
		origin:    Origin,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses markup and returns the carousel list it contains.
// The carousel is located before the list name so a page without a
// carousel reports ECAROUSEL even when its label is missing too.
func (e *Extractor) Extract(markup string) (*carousel.Result, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}

	container, err := e.FindCarousel(doc)
	if err != nil {
		return nil, err
	}

	name, err := e.FindListName(doc)
	if err != nil {
		return nil, err
	}

	anchors := container.Find("a")
	items := make([]*carousel.Item, 0, anchors.Length())
	for i := range anchors.Length() {
		item, err := e.ParseItem(anchors.Eq(i))
		if err != nil {
			return nil, carousel.Errorf(carousel.EPARSE, "carousel item %d: %s", i, carousel.ErrorMessage(err))
		}
		items = append(items, item)
	}

	return &carousel.Result{ListName: name, Items: items}, nil
}

// FindCarousel returns the first element matched by the first carousel
// selector that matches anything.
// Returns ECAROUSEL if no selector matches.
func (e *Extractor) FindCarousel(doc *goquery.Document) (*goquery.Selection, error) {
	sel, idx := firstMatch(doc.Selection, e.carousels, atLeast(1))
	if idx < 0 {
		return nil, carousel.Errorf(carousel.ECAROUSEL, "no carousel found in the HTML content")
	}
	return sel.First(), nil
}

// FindListName returns the lower-cased text of the second element matched by
// the first label selector that matches at least two elements. The whole
// document is searched since the label sits outside the carousel container.
// Returns ELISTNAME if no selector matches twice.
func (e *Extractor) FindListName(doc *goquery.Document) (string, error) {
	sel, idx := firstMatch(doc.Selection, e.labels, atLeast(2))
	if idx < 0 {
		return "", carousel.Errorf(carousel.ELISTNAME, "could not find list name in the HTML content")
	}
	return strings.ToLower(normalizeSpace(sel.Eq(1).Text())), nil
}

// ParseItem parses one carousel anchor into an item.
//
// The image and extension are optional. The link and a matching name
// element are required; their absence is reported as EPARSE. A name element
// with blank text yields an empty name.
func (e *Extractor) ParseItem(a *goquery.Selection) (*carousel.Item, error) {
	item := &carousel.Item{}

	if src, ok := a.Find("img").First().Attr("src"); ok {
		item.Image = &src
	}

	href, ok := a.Attr("href")
	if !ok {
		return nil, carousel.Errorf(carousel.EPARSE, "item has no link")
	}
	item.Link = e.origin + href

	row := e.nameRow(a)
	if row < 0 {
		return nil, carousel.Errorf(carousel.EPARSE, "item %s has no name", item.Link)
	}
	item.Name = strings.TrimSpace(a.Find(e.fields[row].Name).First().Text())

	// The extension selector is taken from the same row as the name.
	if ext := a.Find(e.fields[row].Extension).First(); ext.Length() > 0 {
		item.Extensions = []string{strings.TrimSpace(ext.Text())}
	}

	return item, nil
}

// nameRow returns the index of the first field row whose name selector
// matches within a, or -1.
func (e *Extractor) nameRow(a *goquery.Selection) int {
	names := make([]string, len(e.fields))
	for i, row := range e.fields {
		names[i] = row.Name
	}
	_, idx := firstMatch(a, names, atLeast(1))
	return idx
}

// firstMatch runs selectors against root in order and returns the first
// selection accepted by ok together with the index of its selector.
// Returns (nil, -1) if no selection is accepted.
func firstMatch(root *goquery.Selection, selectors []string, ok func(*goquery.Selection) bool) (*goquery.Selection, int) {
	for i, selector := range selectors {
		if sel := root.Find(selector); ok(sel) {
			return sel, i
		}
	}
	return nil, -1
}

func atLeast(n int) func(*goquery.Selection) bool {
	return func(sel *goquery.Selection) bool {
		return sel.Length() >= n
	}
}

// parseDocument parses markup into a queryable document.
func parseDocument(markup string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, carousel.Errorf(carousel.EINVALID, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// normalizeSpace trims s and collapses internal runs of whitespace.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
