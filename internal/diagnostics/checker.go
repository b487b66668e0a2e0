package diagnostics

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"fleet-inspector/internal/domain"
	"fleet-inspector/internal/i18n"
)

// Checker validates the configured backend and local filesystem paths
// before an inspection begins.
type Checker struct {
	settingsDir string
	mkdirAll    func(string, os.FileMode) error
	createTemp  func(string, string) (*os.File, error)
	remove      func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker(settingsDir string) *Checker {
	return &Checker{
		settingsDir: settingsDir,
		mkdirAll:    os.MkdirAll,
		createTemp:  os.CreateTemp,
		remove:      os.Remove,
	}
}

// Run executes all startup checks and returns a combined report.
func (c *Checker) Run(settings domain.Settings) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkServerURL(settings.ServerURL),
		c.checkLanguage(settings.Language),
		c.checkSettingsDir(),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkServerURL verifies the backend base URL is present and parseable.
func (c *Checker) checkServerURL(raw string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "server_url",
		Name: "Backend server",
	}

	if raw == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Server URL is not configured"
		item.Hint = "Set the backend address in settings before logging in."
		return item
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Server URL is not a valid http(s) address: %s", raw)
		item.Hint = "Use a full address like https://inspections.example.com."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Configured for %s", parsed.Host)
	return item
}

// checkLanguage verifies the configured display language is supported.
func (c *Checker) checkLanguage(code string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "language",
		Name: "Display language",
	}

	if code == "" || !i18n.Supported(code) {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Language %q is not supported", code)
		item.Hint = "Choose one of the supported languages (es, en)."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Labels render in %s", code)
	return item
}

// checkSettingsDir verifies the settings directory is writable by creating
// and removing a probe file.
func (c *Checker) checkSettingsDir() domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "settings_dir",
		Name: "Settings directory",
	}

	if err := c.mkdirAll(c.settingsDir, 0o755); err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Cannot create settings directory: %v", err)
		item.Hint = "Check permissions on " + c.settingsDir + "."
		return item
	}

	probe, err := c.createTemp(c.settingsDir, "probe-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Settings directory is not writable: %v", err)
		item.Hint = "Check permissions on " + c.settingsDir + "."
		return item
	}
	name := probe.Name()
	_ = probe.Close()
	_ = c.remove(name)

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Writable at %s", filepath.Clean(c.settingsDir))
	return item
}
