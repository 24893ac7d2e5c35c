package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
	"github.com/SlavaShagalov/user-list/internal/userlist/view"
)

// Bootstrap is what a client needs from the rendered page to take over the list.
type Bootstrap struct {
	Endpoint string
	Form     *view.Form
	Options  view.Options
	Roles    []string
}

// LoadPage fetches the rendered page at pageURL and parses it.
func LoadPage(ctx context.Context, httpClient *http.Client, pageURL string) (Bootstrap, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Bootstrap{}, errors.Wrap(err, "build page request")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return Bootstrap{}, errors.Wrap(err, "get page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Bootstrap{}, errors.Wrap(pkgErrors.ErrBadResponse, fmt.Sprintf("load %s: status %d", pageURL, resp.StatusCode))
	}

	return ParsePage(resp.Body)
}

// ParsePage reads the search form, its state inputs and the inline options
// out of a rendered user list page.
func ParsePage(r io.Reader) (Bootstrap, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Bootstrap{}, errors.Wrap(err, "parse page")
	}

	var (
		boot       = Bootstrap{Form: view.NewForm("", "")}
		formFound  bool
		optionsRaw string
	)

	var walk func(n *html.Node, inForm bool)
	walk = func(n *html.Node, inForm bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "form":
				if attr(n, "id") == view.SearchID {
					formFound = true
					boot.Endpoint = attr(n, "action")
					inForm = true
				}
			case "input":
				if inForm || attr(n, "form") == view.SearchID {
					if name := attr(n, "name"); name != "" {
						boot.Form.Set(name, attr(n, "value"))
					}
				}
			case "select":
				if inForm && attr(n, "name") == view.InputRole {
					boot.Form.Set(view.InputRole, "")
					for opt := n.FirstChild; opt != nil; opt = opt.NextSibling {
						if opt.Type != html.ElementNode || opt.Data != "option" {
							continue
						}
						value := attr(opt, "value")
						if value != "" {
							boot.Roles = append(boot.Roles, value)
						}
						if hasAttr(opt, "selected") {
							boot.Form.Set(view.InputRole, value)
						}
					}
				}
			case "script":
				if attr(n, "id") == view.OptionsID {
					optionsRaw = text(n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inForm)
		}
	}
	walk(doc, false)

	if !formFound || optionsRaw == "" {
		return Bootstrap{}, errors.Wrap(pkgErrors.ErrBadResponse, "user list not found in page")
	}

	if err = json.Unmarshal([]byte(optionsRaw), &boot.Options); err != nil {
		return Bootstrap{}, errors.Wrap(err, "decode list options")
	}

	return boot, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
