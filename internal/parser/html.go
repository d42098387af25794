package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dkarlsen/notedoc/internal/notes"
	"golang.org/x/net/html"
)

// HTMLParser lowers HTML exports of notes to paragraph records: h1-h3,
// ul/li nesting, checkbox inputs inside list items, hr separators, and
// plain paragraphs.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]notes.Paragraph, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []notes.Paragraph
	inFooter := false

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "header":
				return
			case "h1", "h2", "h3":
				out = appendHeading(out, int(n.Data[1]-'0'), textContent(n))
				return
			case "h4", "h5", "h6":
				out = appendHeading(out, 3, textContent(n))
				return
			case "hr":
				out = append(out, notes.Paragraph{Kind: notes.KindHR})
				inFooter = true
				return
			case "ul", "ol":
				out = lowerHTMLList(out, n, 0, inFooter)
				return
			case "p", "blockquote":
				t := textContent(n)
				if t != "" {
					kind := notes.KindText
					if inFooter {
						kind = notes.KindFooter
					}
					out = append(out, notes.Paragraph{Kind: kind, Text: t, Mentions: MentionSpans(t)})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	if out == nil {
		out = []notes.Paragraph{}
	}
	return out, nil
}

// lowerHTMLList emits one record per li at the given level, recursing into
// nested lists one level deeper.
func lowerHTMLList(out []notes.Paragraph, list *html.Node, level int, inFooter bool) []notes.Paragraph {
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}

		var itemText strings.Builder
		var nested []*html.Node
		task := false

		var collect func(*html.Node)
		collect = func(n *html.Node) {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode {
					switch c.Data {
					case "ul", "ol":
						nested = append(nested, c)
						continue
					case "input":
						if attrVal(c, "type") == "checkbox" {
							task = true
						}
						continue
					}
				}
				if c.Type == html.TextNode {
					itemText.WriteString(c.Data)
				}
				collect(c)
			}
		}
		collect(li)

		txt := strings.Join(strings.Fields(itemText.String()), " ")
		if txt != "" {
			kind := notes.KindBullet
			if task {
				kind = notes.KindCheckbox
			} else if inFooter {
				kind = notes.KindFooter
			}
			out = append(out, notes.Paragraph{
				Kind:     kind,
				Text:     txt,
				Level:    level,
				Mentions: MentionSpans(txt),
			})
		}

		for _, sub := range nested {
			out = lowerHTMLList(out, sub, level+1, inFooter)
		}
	}
	return out
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
