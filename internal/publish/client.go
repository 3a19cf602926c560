package publish

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/alnah/go-md2note/internal/process"
)

// Defaults for the note.com client.
const (
	DefaultBaseURL = "https://note.com"
	DefaultTimeout = 30 * time.Second

	// settleDelay lets the editor's scripts catch up between steps.
	settleDelay  = time.Second
	pollInterval = 250 * time.Millisecond
)

// Editor selectors and labels.
const (
	selectorLoginEmail    = `input[name="login"]`
	selectorLoginPassword = `input[name="password"]`
	selectorTitle         = `[placeholder="記事タイトル"]`
	selectorBody          = `[contenteditable="true"]`
	labelLogin            = "ログイン"
	labelPublishSettings  = "公開設定"
	labelPost             = "^投稿$"
	publishedPathMarker   = "/n/"
)

// setBodyJS replaces the editor content with the given HTML.
const setBodyJS = `function(html) { this.innerHTML = html }`

// Result describes one published article.
type Result struct {
	File  string
	Title string
	URL   string
}

// Client posts articles to note.com.
type Client interface {
	Login(ctx context.Context, auth AuthConfig) error
	Post(ctx context.Context, title, bodyHTML string) (Result, error)
	Close() error
}

// Compile-time interface check.
var _ Client = (*RodClient)(nil)

// ClientConfig configures a RodClient.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// Headless hides the browser window. Disable it to watch a run.
	Headless bool
	// BrowserBin selects a pre-installed Chrome instead of rod's download.
	BrowserBin string
	// NoSandbox is required in most CI containers.
	NoSandbox bool
	Logger    *slog.Logger
}

func (c *ClientConfig) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// RodClient drives the note.com web editor through headless Chrome.
// It is not safe for concurrent use: all calls share one page.
type RodClient struct {
	cfg      ClientConfig
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	closed   bool
}

// NewRodClient creates a client. The browser starts on Login.
func NewRodClient(cfg ClientConfig) *RodClient {
	cfg.defaults()
	return &RodClient{cfg: cfg}
}

// Login starts the browser in an incognito context and authenticates,
// either by installing the cookie or by submitting the login form.
func (c *RodClient) Login(ctx context.Context, auth AuthConfig) error {
	if c.closed {
		return ErrClosed
	}
	if err := auth.Validate(); err != nil {
		return err
	}
	if err := c.ensureBrowser(); err != nil {
		return err
	}

	log := c.cfg.Logger
	session, err := c.browser.Incognito()
	if err != nil {
		return fmt.Errorf("%w: incognito context: %v", ErrBrowserConnect, err)
	}

	if auth.Method() == AuthCookie {
		if err := session.SetCookies(ParseCookies(auth.Cookie)); err != nil {
			return fmt.Errorf("%w: setting cookies: %v", ErrLogin, err)
		}
	}

	page, err := stealth.Page(session)
	if err != nil {
		return fmt.Errorf("%w: creating page: %v", ErrBrowserConnect, err)
	}
	c.page = page

	if auth.Method() == AuthCookie {
		log.Info("publish: session from cookie")
		return nil
	}

	log.Info("publish: logging in", "auth", auth.String())
	p := c.page.Context(ctx).Timeout(c.cfg.Timeout)
	defer p.CancelTimeout()

	if err := p.Navigate(c.cfg.BaseURL + "/login"); err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}
	if err := fill(p, selectorLoginEmail, auth.Email); err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}
	if err := fill(p, selectorLoginPassword, auth.Password); err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}
	if err := clickButton(p, labelLogin); err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}
	if err := waitURL(ctx, p, c.cfg.Timeout, isLoggedInURL(c.cfg.BaseURL)); err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}
	return nil
}

// Post opens a new article in the editor, fills title and body, and
// publishes it. The returned URL is the article page.
func (c *RodClient) Post(ctx context.Context, title, bodyHTML string) (Result, error) {
	if c.closed {
		return Result{}, ErrClosed
	}
	if c.page == nil {
		return Result{}, fmt.Errorf("%w: not logged in", ErrPost)
	}

	p := c.page.Context(ctx).Timeout(c.cfg.Timeout)
	defer p.CancelTimeout()

	if err := p.Navigate(c.cfg.BaseURL + "/editor/new"); err != nil {
		return Result{}, fmt.Errorf("%w: opening editor: %v", ErrPost, err)
	}
	if err := p.WaitLoad(); err != nil {
		return Result{}, fmt.Errorf("%w: loading editor: %v", ErrPost, err)
	}
	if err := pause(ctx, 2*settleDelay); err != nil {
		return Result{}, err
	}

	if err := fill(p, selectorTitle, title); err != nil {
		return Result{}, fmt.Errorf("%w: title: %v", ErrPost, err)
	}

	body, err := p.Element(selectorBody)
	if err != nil {
		return Result{}, fmt.Errorf("%w: editor body: %v", ErrPost, err)
	}
	if _, err := body.Eval(setBodyJS, bodyHTML); err != nil {
		return Result{}, fmt.Errorf("%w: setting body: %v", ErrPost, err)
	}
	if err := pause(ctx, settleDelay); err != nil {
		return Result{}, err
	}

	if err := clickButton(p, labelPublishSettings); err != nil {
		return Result{}, fmt.Errorf("%w: publish settings: %v", ErrPost, err)
	}
	if err := pause(ctx, settleDelay); err != nil {
		return Result{}, err
	}
	if err := clickButton(p, labelPost); err != nil {
		return Result{}, fmt.Errorf("%w: post button: %v", ErrPost, err)
	}

	if err := waitURL(ctx, p, c.cfg.Timeout, isPublishedURL); err != nil {
		return Result{}, fmt.Errorf("%w: waiting for article page: %v", ErrPost, err)
	}
	info, err := p.Info()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrPost, err)
	}
	return Result{Title: title, URL: info.URL}, nil
}

// Close shuts the browser down and kills any leftover Chrome processes.
// Safe to call more than once.
func (c *RodClient) Close() error {
	c.closed = true
	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	if c.launcher != nil {
		pid := c.launcher.PID()
		c.launcher.Kill()
		process.KillTree(pid)
		c.launcher.Cleanup()
		c.launcher = nil
	}
	c.page = nil
	return err
}

// ensureBrowser lazily launches and connects to Chrome.
func (c *RodClient) ensureBrowser() error {
	if c.browser != nil {
		return nil
	}

	l := launcher.New().Headless(c.cfg.Headless)
	if c.cfg.BrowserBin != "" {
		l = l.Bin(c.cfg.BrowserBin)
	}
	if c.cfg.NoSandbox {
		l = l.NoSandbox(true)
	}
	// Hides navigator.webdriver from the login page.
	l = l.Set("disable-blink-features", "AutomationControlled")

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.launcher = l

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		c.launcher.Kill()
		c.launcher = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.browser = b
	c.cfg.Logger.Debug("publish: browser started", "pid", l.PID(), "headless", c.cfg.Headless)
	return nil
}

// ---------------------------------------------------------------------------
// Page helpers
// ---------------------------------------------------------------------------

func fill(p *rod.Page, selector, text string) error {
	el, err := p.Element(selector)
	if err != nil {
		return fmt.Errorf("finding %s: %w", selector, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("typing into %s: %w", selector, err)
	}
	return nil
}

func clickButton(p *rod.Page, label string) error {
	el, err := p.ElementR("button", label)
	if err != nil {
		return fmt.Errorf("finding button %q: %w", label, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// urlInfo is the part of *rod.Page that waitURL needs.
type urlInfo interface {
	Info() (*proto.TargetTargetInfo, error)
}

// waitURL polls the page URL until match accepts it, ctx ends or timeout
// elapses.
func waitURL(ctx context.Context, p urlInfo, timeout time.Duration, match func(string) bool) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	last := ""
	for {
		if info, err := p.Info(); err == nil {
			last = info.URL
			if match(last) {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("still at %q: %w", last, ctx.Err())
		case <-ticker.C:
		}
	}
}

func isPublishedURL(u string) bool {
	return strings.Contains(u, publishedPathMarker)
}

// isLoggedInURL accepts any note.com page other than the login form.
func isLoggedInURL(base string) func(string) bool {
	return func(u string) bool {
		return strings.HasPrefix(u, base) && !strings.Contains(u, "/login")
	}
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
