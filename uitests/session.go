package uitests

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/sogeti/site-contract-tests/framework"

	"github.com/cenkalti/backoff/v5"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const (
	DefaultWaitTimeout = 3 * time.Second
	DefaultTestTimeout = 2 * time.Minute

	locationPollInterval = 100 * time.Millisecond
)

// SessionConfig describes how to start the browser.
type SessionConfig struct {
	Headless bool

	// NoSandbox disables Chrome's sandbox, which is needed when running as root in a container.
	NoSandbox bool

	// ChromePath overrides the browser executable; by default chromedp looks for Chrome or
	// Chromium in the usual places.
	ChromePath string

	// WaitTimeout bounds every wait for an element to appear or become clickable.
	WaitTimeout time.Duration

	// TestTimeout bounds the whole session, so that a hung page cannot stall the run.
	TestTimeout time.Duration
}

// Session is one browser with one tab. All element operations wait for the element for at most
// the configured wait timeout, and return an error rather than failing a test, so that they can
// be used outside of the test API.
type Session struct {
	ctx         context.Context
	cancels     []context.CancelFunc
	waitTimeout time.Duration
	logger      framework.Logger
	closeOnce   sync.Once
}

// NewSession starts a browser. The caller must call Close.
func NewSession(config SessionConfig, logger framework.Logger) (*Session, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if config.WaitTimeout <= 0 {
		config.WaitTimeout = DefaultWaitTimeout
	}
	s := &Session{waitTimeout: config.WaitTimeout, logger: logger}

	ctx := context.Background()
	if config.TestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.TestTimeout)
		s.cancels = append(s.cancels, cancel)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
	)
	if config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if config.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(config.ChromePath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	s.cancels = append(s.cancels, cancelAlloc)

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithErrorf(logger.Printf))
	s.cancels = append(s.cancels, cancelBrowser)
	s.ctx = browserCtx

	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("starting browser: %w", err)
	}
	logger.Printf("Browser started")
	return s, nil
}

// Close shuts down the browser. Only the first call has any effect.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Printf("Browser did not shut down cleanly: %s", err)
		}
		for i := len(s.cancels) - 1; i >= 0; i-- {
			s.cancels[i]()
		}
		s.logger.Printf("Close the web browser")
	})
}

func (s *Session) withWait() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.ctx, s.waitTimeout)
}

// Navigate loads a URL and waits for the document body.
func (s *Session) Navigate(pageURL string) error {
	if err := chromedp.Run(s.ctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigating to %s: %w", pageURL, err)
	}
	return nil
}

// Location returns the URL of the current page.
func (s *Session) Location() (string, error) {
	var location string
	if err := chromedp.Run(s.ctx, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("reading location: %w", err)
	}
	return location, nil
}

// WaitLocation polls the current URL until it equals expected or the wait timeout elapses, and
// returns the last URL seen. A page that never arrives is not an error; the caller compares.
func (s *Session) WaitLocation(expected string) (string, error) {
	ctx, cancel := s.withWait()
	defer cancel()
	var last string
	_, err := backoff.Retry(ctx, func() (string, error) {
		var location string
		if err := chromedp.Run(ctx, chromedp.Location(&location)); err != nil {
			return "", err
		}
		last = location
		if location != expected {
			return "", fmt.Errorf("still at %s", location)
		}
		return location, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(locationPollInterval)),
		backoff.WithMaxElapsedTime(s.waitTimeout),
	)
	if err != nil && last == "" {
		return "", fmt.Errorf("reading location: %w", err)
	}
	return last, nil
}

// WaitClickable blocks until the element is visible and enabled, or the wait timeout elapses.
func (s *Session) WaitClickable(l Locator) error {
	ctx, cancel := s.withWait()
	defer cancel()
	sel, by := l.query()
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(sel, by),
		chromedp.WaitEnabled(sel, by),
	); err != nil {
		return fmt.Errorf("%s was not clickable within %s: %w", l, s.waitTimeout, err)
	}
	return nil
}

// IsDisplayed reports whether the element becomes visible within the wait timeout.
func (s *Session) IsDisplayed(l Locator) (bool, error) {
	ctx, cancel := s.withWait()
	defer cancel()
	sel, by := l.query()
	err := chromedp.Run(ctx, chromedp.WaitVisible(sel, by))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, context.DeadlineExceeded):
		return false, nil
	default:
		return false, fmt.Errorf("checking visibility of %s: %w", l, err)
	}
}

func (s *Session) node(l Locator) (*cdp.Node, error) {
	ctx, cancel := s.withWait()
	defer cancel()
	sel, by := l.query()
	var nodes []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, by)); err != nil {
		return nil, fmt.Errorf("finding %s: %w", l, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no element matches %s", l)
	}
	return nodes[0], nil
}

// Hover moves the mouse pointer to the center of the element.
func (s *Session) Hover(l Locator) error {
	n, err := s.node(l)
	if err != nil {
		return err
	}
	err = chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := dom.ScrollIntoViewIfNeeded().WithNodeID(n.NodeID).Do(ctx); err != nil {
			return err
		}
		box, err := dom.GetBoxModel().WithNodeID(n.NodeID).Do(ctx)
		if err != nil {
			return err
		}
		x, y := quadCenter(box.Content)
		return input.DispatchMouseEvent(input.MouseMoved, x, y).Do(ctx)
	}))
	if err != nil {
		return fmt.Errorf("hovering over %s: %w", l, err)
	}
	return nil
}

func quadCenter(q dom.Quad) (float64, float64) {
	var x, y float64
	for i := 0; i+1 < len(q); i += 2 {
		x += q[i]
		y += q[i+1]
	}
	points := float64(len(q) / 2)
	if points == 0 {
		return 0, 0
	}
	return x / points, y / points
}

// callOn runs a JavaScript function with the element as this.
func (s *Session) callOn(n *cdp.Node, function string) error {
	return chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(n.NodeID).Do(ctx)
		if err != nil {
			return err
		}
		_, exception, err := runtime.CallFunctionOn(function).WithObjectID(obj.ObjectID).Do(ctx)
		if err != nil {
			return err
		}
		if exception != nil {
			return exception
		}
		return nil
	}))
}

// Click waits until the element is clickable, then clicks it through the DOM. This works even
// when an overlay would intercept a real mouse click.
func (s *Session) Click(l Locator) error {
	if err := s.WaitClickable(l); err != nil {
		return err
	}
	n, err := s.node(l)
	if err != nil {
		return err
	}
	if err := s.callOn(n, "function() { this.click(); }"); err != nil {
		return fmt.Errorf("clicking %s: %w", l, err)
	}
	return nil
}

// Fill clicks an input field and then enters a value, either by keystrokes or by assigning it.
func (s *Session) Fill(l Locator, value string, mode FillMode) error {
	if err := s.Click(l); err != nil {
		return err
	}
	sel, by := l.query()
	var action chromedp.Action
	if mode == FillScript {
		action = chromedp.SetValue(sel, value, by)
	} else {
		action = chromedp.SendKeys(sel, value, by)
	}
	if err := chromedp.Run(s.ctx, action); err != nil {
		return fmt.Errorf("entering value into %s: %w", l, err)
	}
	return nil
}

// Value returns the current value of an input element.
func (s *Session) Value(l Locator) (string, error) {
	ctx, cancel := s.withWait()
	defer cancel()
	sel, by := l.query()
	var value string
	if err := chromedp.Run(ctx, chromedp.Value(sel, &value, by)); err != nil {
		return "", fmt.Errorf("reading value of %s: %w", l, err)
	}
	return value, nil
}

// Attribute returns an attribute of the element, or "" if it does not have one.
func (s *Session) Attribute(l Locator, name string) (string, error) {
	ctx, cancel := s.withWait()
	defer cancel()
	sel, by := l.query()
	var value string
	var ok bool
	if err := chromedp.Run(ctx, chromedp.AttributeValue(sel, name, &value, &ok, by)); err != nil {
		return "", fmt.Errorf("reading attribute %q of %s: %w", name, l, err)
	}
	return value, nil
}

// Text returns the rendered text of the element.
func (s *Session) Text(l Locator) (string, error) {
	ctx, cancel := s.withWait()
	defer cancel()
	sel, by := l.query()
	var text string
	if err := chromedp.Run(ctx, chromedp.Text(sel, &text, by)); err != nil {
		return "", fmt.Errorf("reading text of %s: %w", l, err)
	}
	return text, nil
}

// Option is one entry of a dropdown.
type Option struct {
	Index int
	Value string
	Label string
}

// Options lists the options of a select element.
func (s *Session) Options(l Locator) ([]Option, error) {
	ctx, cancel := s.withWait()
	defer cancel()
	sel, by := l.descendants("option")
	var nodes []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, by)); err != nil {
		return nil, fmt.Errorf("listing options of %s: %w", l, err)
	}
	ret := make([]Option, 0, len(nodes))
	for i, n := range nodes {
		var label string
		if err := chromedp.Run(ctx, chromedp.TextContent([]cdp.NodeID{n.NodeID}, &label, chromedp.ByNodeID)); err != nil {
			return nil, fmt.Errorf("reading option %d of %s: %w", i, l, err)
		}
		ret = append(ret, Option{Index: i, Value: n.AttributeValue("value"), Label: label})
	}
	return ret, nil
}

// SelectIndex selects an option of a select element by position and fires its change event.
func (s *Session) SelectIndex(l Locator, index int) error {
	n, err := s.node(l)
	if err != nil {
		return err
	}
	function := fmt.Sprintf(`function() {
		this.selectedIndex = %d;
		this.dispatchEvent(new Event("input", {bubbles: true}));
		this.dispatchEvent(new Event("change", {bubbles: true}));
	}`, index)
	if err := s.callOn(n, function); err != nil {
		return fmt.Errorf("selecting option %d of %s: %w", index, l, err)
	}
	return nil
}

// Links returns every anchor inside the element, with its href resolved against the current page.
// An anchor without an href is an error.
func (s *Session) Links(l Locator) ([]LinkRecord, error) {
	location, err := s.Location()
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("current location %q: %w", location, err)
	}

	ctx, cancel := s.withWait()
	defer cancel()
	sel, by := l.descendants("a")
	var nodes []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, by)); err != nil {
		return nil, fmt.Errorf("listing links in %s: %w", l, err)
	}
	ret := make([]LinkRecord, 0, len(nodes))
	for i, n := range nodes {
		href, ok := n.Attribute("href")
		if !ok || href == "" {
			return nil, fmt.Errorf("link %d in %s has no href", i+1, l)
		}
		ref, err := url.Parse(href)
		if err != nil {
			return nil, fmt.Errorf("malformed link %q in %s: %w", href, l, err)
		}
		var text string
		if err := chromedp.Run(ctx, chromedp.TextContent([]cdp.NodeID{n.NodeID}, &text, chromedp.ByNodeID)); err != nil {
			return nil, fmt.Errorf("reading link text in %s: %w", l, err)
		}
		ret = append(ret, LinkRecord{URL: base.ResolveReference(ref).String(), Text: text})
	}
	return ret, nil
}
