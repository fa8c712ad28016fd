package render

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Engine turns an HTML document and a stylesheet into PDF bytes.
type Engine interface {
	Render(ctx context.Context, html, css string) ([]byte, error)
}

// A4 in inches
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// RodEngine prints documents with headless Chrome driven by go-rod. The
// browser is started on first use and shared; every render gets its own page.
type RodEngine struct {
	bin        string
	controlURL string
	log        *zap.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// RodOption configures a RodEngine.
type RodOption func(*RodEngine)

// WithChromeBin launches the given Chrome binary instead of the one rod finds.
func WithChromeBin(bin string) RodOption {
	return func(e *RodEngine) { e.bin = bin }
}

// WithControlURL attaches to an already running Chrome.
func WithControlURL(u string) RodOption {
	return func(e *RodEngine) { e.controlURL = u }
}

// NewRodEngine creates an engine. Chrome is not started until the first render.
func NewRodEngine(log *zap.Logger, opts ...RodOption) *RodEngine {
	e := &RodEngine{log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render loads html into a fresh page, adds css and prints the page to PDF.
func (e *RodEngine) Render(ctx context.Context, html, css string) ([]byte, error) {
	browser, err := e.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			e.log.Warn("failed to close render page", zap.Error(cerr))
		}
	}()
	p := page.Context(ctx)

	if err := p.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if css != "" {
		if err := p.AddStyleTag("", css); err != nil {
			return nil, fmt.Errorf("add stylesheet: %w", err)
		}
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for load: %w", err)
	}

	stream, err := p.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        float64Ptr(a4Width),
		PaperHeight:       float64Ptr(a4Height),
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	defer stream.Close()

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return pdf, nil
}

// Close shuts the browser down if it was started.
func (e *RodEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	e.browser = nil
	return err
}

func (e *RodEngine) ensureBrowser() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		if _, err := e.browser.Version(); err == nil {
			return e.browser, nil
		}
		e.log.Warn("stale chrome connection, reconnecting")
		_ = e.browser.Close()
		e.browser = nil
	}

	controlURL := e.controlURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		if e.bin != "" {
			l = l.Bin(e.bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	e.log.Info("chrome connected", zap.String("control_url", controlURL))
	e.browser = browser
	return browser, nil
}

func float64Ptr(v float64) *float64 { return &v }
