package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages opened before the browser is
// recycled. Chrome accumulates memory under load and never returns to its
// baseline even with proper page cleanup, so a long batch needs periodic
// fresh instances.
const DefaultMaxPages = 75

// manager owns the Chrome instance lifecycle and recycles it after
// maxPages pages. Safe for concurrent use.
type manager struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	maxPages  int64
	mu        sync.Mutex
	closed    atomic.Bool
}

func newManager(maxPages int64) (*manager, error) {
	m := &manager{maxPages: maxPages}
	if err := m.launchBrowser(); err != nil {
		return nil, err
	}
	return m, nil
}

// current returns the live browser, recycling first when the page count
// has reached the threshold.
func (m *manager) current() *rod.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()

	if atomic.LoadInt64(&m.pageCount) >= m.maxPages {
		m.recycle()
	}
	return m.browser
}

func (m *manager) pageOpened() {
	atomic.AddInt64(&m.pageCount, 1)
}

// close is safe to call multiple times.
func (m *manager) close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shutdown()
}

// launchBrowser starts headless Chrome with stability flags plus the
// automation-controlled blink feature disabled so recipe sites serve the
// same markup they serve real visitors.
func (m *manager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("no-first-run").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = lnchr
	return nil
}

// shutdown closes the current browser and launcher. Must be called with
// mu held.
func (m *manager) shutdown() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
	return err
}

// recycle starts a fresh browser and closes the old one. The old browser
// is kept when the new launch fails. Must be called with mu held.
func (m *manager) recycle() {
	oldBrowser := m.browser
	oldLauncher := m.launcher
	m.browser = nil
	m.launcher = nil

	if err := m.launchBrowser(); err != nil {
		m.browser = oldBrowser
		m.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&m.pageCount, 0)
}
