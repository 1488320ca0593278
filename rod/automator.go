package rod

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/fwojciec/followdiff"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Automator implements followdiff.Automator at compile time.
var _ followdiff.Automator = (*Automator)(nil)

// Default timings for page interaction.
const (
	DefaultStepTimeout = 10 * time.Second
	DefaultSettleDelay = time.Second
	DefaultLoadDelay   = 2 * time.Second
)

// Selectors used to drive the profile page.
const (
	inboxLinkSelector   = `a[href*="/direct/inbox/"]`
	moreOptionsSelector = `button[aria-label*="More options"]`
)

// step identifies a button by CSS selector and, optionally, by a pattern
// its text must match.
type step struct {
	selector string
	text     string
}

// Automator replays account actions in a real browser session.
// Pages are opened one per action; callers serialize actions.
type Automator struct {
	manager     *BrowserManager
	baseURL     string
	stepTimeout time.Duration
	settleDelay time.Duration
	loadDelay   time.Duration
}

// AutomatorOption configures an Automator.
type AutomatorOption func(*Automator)

// WithBaseURL points the Automator at a different host.
// The URL must end with a slash.
func WithBaseURL(u string) AutomatorOption {
	return func(a *Automator) {
		a.baseURL = u
	}
}

// WithStepTimeout bounds how long a single button lookup may wait.
func WithStepTimeout(d time.Duration) AutomatorOption {
	return func(a *Automator) {
		a.stepTimeout = d
	}
}

// WithSettleDelay sets the pause after each click.
func WithSettleDelay(d time.Duration) AutomatorOption {
	return func(a *Automator) {
		a.settleDelay = d
	}
}

// WithLoadDelay sets the pause after each navigation.
func WithLoadDelay(d time.Duration) AutomatorOption {
	return func(a *Automator) {
		a.loadDelay = d
	}
}

// NewAutomator creates an Automator on top of manager. The Automator takes
// ownership of manager and closes it on Close.
func NewAutomator(manager *BrowserManager, opts ...AutomatorOption) *Automator {
	a := &Automator{
		manager:     manager,
		baseURL:     followdiff.ProfileHost,
		stepTimeout: DefaultStepTimeout,
		settleDelay: DefaultSettleDelay,
		loadDelay:   DefaultLoadDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CheckLogin reports whether the browser profile holds a logged-in session.
// The home page of a logged-in account links to the direct inbox.
func (a *Automator) CheckLogin(ctx context.Context) (bool, error) {
	page, err := a.open(ctx, a.baseURL)
	if err != nil {
		return false, err
	}
	defer page.Close()

	has, _, err := page.Has(inboxLinkSelector)
	if err != nil {
		return false, followdiff.Errorf(followdiff.EINTERNAL, "checking login state: %v", err)
	}
	return has, nil
}

// Unfollow stops following username.
func (a *Automator) Unfollow(ctx context.Context, username string) error {
	return a.perform(ctx, username,
		step{selector: "button", text: "Following"},
		step{selector: "button", text: "Unfollow"},
	)
}

// RemoveRequest removes the follow request received from username.
func (a *Automator) RemoveRequest(ctx context.Context, username string) error {
	return a.perform(ctx, username,
		step{selector: moreOptionsSelector},
		step{selector: "button", text: "Remove"},
	)
}

// Open navigates a new tab to rawURL and leaves it open for the user.
func (a *Automator) Open(ctx context.Context, rawURL string) error {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return followdiff.Errorf(followdiff.EINVALID, "invalid url %q", rawURL)
	}
	_, err := a.open(ctx, rawURL)
	return err
}

// Close shuts the browser down.
func (a *Automator) Close() error {
	return a.manager.Close()
}

// perform opens the profile page of username and clicks through steps in
// order.
func (a *Automator) perform(ctx context.Context, username string, steps ...step) error {
	if username == "" {
		return followdiff.Errorf(followdiff.EINVALID, "username required")
	}
	profile, err := url.JoinPath(a.baseURL, url.PathEscape(username), "/")
	if err != nil {
		return followdiff.Errorf(followdiff.EINVALID, "invalid username %q", username)
	}

	page, err := a.open(ctx, profile)
	if err != nil {
		return err
	}
	defer page.Close()

	for _, s := range steps {
		if err := a.click(ctx, page, s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Automator) click(ctx context.Context, page *rod.Page, s step) error {
	var (
		el  *rod.Element
		err error
	)
	timed := page.Timeout(a.stepTimeout)
	if s.text != "" {
		el, err = timed.ElementR(s.selector, s.text)
	} else {
		el, err = timed.Element(s.selector)
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return followdiff.Errorf(followdiff.ENOTFOUND, "%s not found", s.describe())
		}
		return followdiff.Errorf(followdiff.EINTERNAL, "finding %s: %v", s.describe(), err)
	}

	if err := el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return followdiff.Errorf(followdiff.EINTERNAL, "clicking %s: %v", s.describe(), err)
	}
	return sleep(ctx, a.settleDelay)
}

// open creates a page bound to ctx and waits for it to load.
func (a *Automator) open(ctx context.Context, rawURL string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := a.manager.Browser()
	if err != nil {
		return nil, followdiff.Errorf(followdiff.EINTERNAL, "browser unavailable: %v", err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, followdiff.Errorf(followdiff.EINTERNAL, "opening page: %v", err)
	}
	a.manager.IncrementPageCount()

	page = page.Context(ctx)
	if err := page.Navigate(rawURL); err != nil {
		_ = page.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, followdiff.Errorf(followdiff.EINTERNAL, "navigating to %s: %v", rawURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, followdiff.Errorf(followdiff.EINTERNAL, "loading %s: %v", rawURL, err)
	}
	if err := sleep(ctx, a.loadDelay); err != nil {
		_ = page.Close()
		return nil, err
	}
	return page, nil
}

func (s step) describe() string {
	if s.text != "" {
		return s.text + " button"
	}
	return s.selector
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
