package page

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Default HTTP session constants.
const (
	defaultHTTPTimeout = 12 * time.Second
)

// HTTPOpener opens HTTPSession instances backed by a shared client. It
// drives classic frameset pages over plain HTTP: the search form is
// submitted as a GET with query parameters and "frames" are followed by
// fetching their src documents. Deployments whose frontend needs real
// script execution plug in a browser-automation Session instead.
type HTTPOpener struct {
	client *http.Client
}

// NewHTTPOpener creates an opener with a timeout-bounded client.
func NewHTTPOpener() *HTTPOpener {
	return &HTTPOpener{
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Open implements Opener.
func (o *HTTPOpener) Open(ctx context.Context) (Session, error) {
	return &HTTPSession{client: o.client}, nil
}

// HTTPSession implements Session over net/http. It keeps the current
// document URL so PageSource re-fetches on every call, giving the poller
// genuine repeated reads of a still-loading results page.
type HTTPSession struct {
	client  *http.Client
	baseURL *url.URL
	current *url.URL
	form    url.Values
	closed  bool
}

// Navigate loads url and makes it the current document.
func (s *HTTPSession) Navigate(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	s.baseURL = u
	s.current = u
	s.form = url.Values{}
	_, err = s.fetch(ctx, u)
	return err
}

// Fill records a form value for the next Submit.
func (s *HTTPSession) Fill(ctx context.Context, field, value string) error {
	if s.form == nil {
		s.form = url.Values{}
	}
	s.form.Set(field, value)
	return nil
}

// Submit sends the recorded form values as a GET against the base URL,
// naming the clicked element the way a plain form submission would.
func (s *HTTPSession) Submit(ctx context.Context, field string) error {
	if s.baseURL == nil {
		return fmt.Errorf("submit before navigate")
	}
	u := *s.baseURL
	q := u.Query()
	for k, vs := range s.form {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	q.Set(field, "1")
	u.RawQuery = q.Encode()
	s.current = &u
	_, err := s.fetch(ctx, &u)
	return err
}

// SwitchFrame locates the named frame in the current document and makes
// its src the current document.
func (s *HTTPSession) SwitchFrame(ctx context.Context, name string) error {
	if s.current == nil {
		return fmt.Errorf("switch frame before navigate")
	}
	body, err := s.fetch(ctx, s.current)
	if err != nil {
		return err
	}
	src, ok := frameSrc(body, name)
	if !ok {
		return fmt.Errorf("frame %q not found", name)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("parse frame src %q: %w", src, err)
	}
	s.current = s.current.ResolveReference(ref)
	return nil
}

// PageSource fetches the current document. Each call is a fresh read so
// stabilization polling observes server-side updates.
func (s *HTTPSession) PageSource(ctx context.Context) (string, error) {
	if s.current == nil {
		return "", fmt.Errorf("page source before navigate")
	}
	return s.fetch(ctx, s.current)
}

// Close marks the session released. The HTTP client is shared and stays
// open for the next query.
func (s *HTTPSession) Close() error {
	s.closed = true
	return nil
}

// fetch GETs u and returns the body.
func (s *HTTPSession) fetch(ctx context.Context, u *url.URL) (string, error) {
	if s.closed {
		return "", fmt.Errorf("session closed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: unexpected status %d", u, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// frameSrc finds the src of the <frame> or <iframe> with the given name.
func frameSrc(doc, name string) (string, bool) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", false
	}
	var src string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.Data == "frame" || n.Data == "iframe") {
			var nodeName, nodeSrc string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "name":
					nodeName = attr.Val
				case "src":
					nodeSrc = attr.Val
				}
			}
			if nodeName == name && nodeSrc != "" {
				src = nodeSrc
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	if walk(root) {
		return src, true
	}
	return "", false
}
