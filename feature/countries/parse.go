package countries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrFetch is returned when the country page cannot be downloaded.
	ErrFetch = errors.New("failed to download country list")
	// ErrNoCountries is returned when the page parses but lists no countries.
	// Syncing an empty list would empty the target, so it is treated as a failure.
	ErrNoCountries = errors.New("no countries found on page")
)

const subdivisionLink = "/wiki/ISO_3166-2:"

// Country is one row of the ISO 3166-2 list.
type Country struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Code string `gorm:"column:code;type:varchar(8);not null"`
	Name string `gorm:"column:name;type:varchar(255);not null"`
}

// Fetch downloads url and parses the country list from it.
func Fetch(ctx context.Context, client *http.Client, url, userAgent string) ([]Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
	}

	return Parse(resp.Body)
}

// Parse reads the first table of an HTML document and returns every row
// whose cells link to an ISO 3166-2 subdivision page. The first cell is the
// code and the second the name.
func Parse(r io.Reader) ([]Country, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse country page: %w", err)
	}

	table := findFirst(doc, atom.Table)
	if table == nil {
		return nil, ErrNoCountries
	}

	var countries []Country
	for row := range descendants(table, atom.Tr) {
		cells := children(row, atom.Td)
		if len(cells) < 2 || !linksToSubdivision(cells) {
			continue
		}
		countries = append(countries, Country{
			Code: strings.TrimSpace(text(cells[0])),
			Name: strings.TrimSpace(text(cells[1])),
		})
	}

	if len(countries) == 0 {
		return nil, ErrNoCountries
	}
	return countries, nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// descendants yields element nodes of type a below n, skipping nested tables.
func descendants(n *html.Node, a atom.Atom) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(n *html.Node) bool {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				if c.DataAtom == a {
					if !yield(c) {
						return false
					}
					continue
				}
				if c.DataAtom == atom.Table {
					continue
				}
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(n)
	}
}

func children(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, c)
		}
	}
	return out
}

// linksToSubdivision reports whether a cell holds a direct link to a subdivision page.
func linksToSubdivision(cells []*html.Node) bool {
	for _, cell := range cells {
		for _, link := range children(cell, atom.A) {
			for _, attr := range link.Attr {
				if attr.Key == "href" && strings.HasPrefix(attr.Val, subdivisionLink) {
					return true
				}
			}
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
