// Package capture takes headless Chromium screenshots of the calendar page.
package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	appLog "monthcal/internal/log"
	"monthcal/internal/model"
)

// Defaults match the fixed-size layout of the /calendar page.
const (
	DefaultWidth      = 1304
	DefaultHeight     = 984
	DefaultTimeoutSec = 30
)

// ReadySelector is present once the month grid has been rendered.
const ReadySelector = `[data-ready="true"]`

// Options defines parameters for a screenshot.
type Options struct {
	// URL to capture, usually built with PageURL.
	URL string

	// OutputPath is where the PNG is written. Parent directories are
	// created as needed.
	OutputPath string

	// Viewport size in pixels. Zero means DefaultWidth / DefaultHeight.
	Width  int
	Height int

	// Timeout bounds the whole capture. Zero means DefaultTimeoutSec.
	Timeout time.Duration

	// Username / Password are sent as HTTP basic auth when Username is set.
	Username string
	Password string
}

// Headers returns the extra request headers the browser sends with every
// request of the capture.
func (o Options) Headers() network.Headers {
	h := network.Headers{}
	if o.Username != "" {
		cred := base64.StdEncoding.EncodeToString([]byte(o.Username + ":" + o.Password))
		h["Authorization"] = "Basic " + cred
	}
	return h
}

// PageURL builds the /calendar URL for a month and optional calendar
// filter. listen may be a bare host:port such as ":8080".
func PageURL(listen string, ym model.YearMonth, calendarID string) string {
	base := listen
	if !strings.Contains(base, "://") {
		if strings.HasPrefix(base, ":") {
			base = "127.0.0.1" + base
		}
		base = "http://" + base
	}

	q := url.Values{}
	if !ym.IsZero() {
		q.Set("year", strconv.Itoa(ym.Year))
		q.Set("month", strconv.Itoa(int(ym.Month)))
	}
	if calendarID != "" {
		q.Set("calendar", calendarID)
	}

	u := strings.TrimRight(base, "/") + "/calendar"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (o *Options) normalize() error {
	if o.URL == "" {
		return fmt.Errorf("capture: URL is required")
	}
	if o.OutputPath == "" {
		return fmt.Errorf("capture: OutputPath is required")
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
	return nil
}

// CalendarPNG launches a headless Chromium via chromedp, loads opts.URL,
// waits for ReadySelector and writes a full-page PNG to opts.OutputPath.
func CalendarPNG(parentCtx context.Context, opts Options) error {
	if err := opts.normalize(); err != nil {
		return err
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		network.Enable(),
		network.SetExtraHTTPHeaders(opts.Headers()),
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(opts.URL),
		chromedp.WaitVisible(ReadySelector, chromedp.ByQuery),
		// Let the final paint land.
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}

	appLog.Info("capture written", "path", opts.OutputPath, "bytes", len(png))
	return nil
}
