package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"fleet-inspector/internal/authclient"
	"fleet-inspector/internal/checklist"
	"fleet-inspector/internal/config"
	"fleet-inspector/internal/diagnostics"
	"fleet-inspector/internal/domain"
	"fleet-inspector/internal/geo"
	"fleet-inspector/internal/i18n"
	"fleet-inspector/internal/inspection"
	"fleet-inspector/internal/notify"
	"fleet-inspector/internal/submit"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

var photoDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "Photos",
		Pattern:     "*.jpg;*.jpeg;*.png;*.heic;*.webp",
	},
	{
		DisplayName: "All files",
		Pattern:     "*",
	},
}

// ErrInspectionActive is returned when starting a second inspection while
// one is still in progress.
var ErrInspectionActive = errors.New("an inspection is already in progress")

// ErrNoActiveInspection is returned when an operation needs an in-progress
// inspection and none exists.
var ErrNoActiveInspection = errors.New("no active inspection")

// ErrSubmitInFlight is returned when submission is requested while a prior
// request is still outstanding.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// ChecklistRow is one localized display row of an entity's checklist.
type ChecklistRow struct {
	Key         domain.ItemKey `json:"key"`
	Label       string         `json:"label"`
	Value       domain.Verdict `json:"value,omitempty"`
	HasEvidence bool           `json:"hasEvidence"`
}

// loginClient isolates the auth endpoint behind an interface.
type loginClient interface {
	Login(ctx context.Context, username, password string) (domain.AuthSession, error)
}

// reportSubmitter isolates the persistence endpoint behind an interface.
type reportSubmitter interface {
	Submit(ctx context.Context, session *inspection.Session, auth domain.AuthSession) (submit.Ack, error)
}

// App wires configuration, the inspection workflow, the two backend
// clients, and UI runtime callbacks.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Localizer   *i18n.Localizer
	Binder      *checklist.Binder
	Locator     geo.Locator
	Diagnostics domain.DiagnosticReport

	assets  fs.FS
	checker *diagnostics.Checker

	mu         sync.Mutex
	auth       domain.AuthSession
	session    *inspection.Session
	submitting bool
	login      loginClient
	submitter  reportSubmitter
	notices    *notify.Bus
	runtimeCtx context.Context
	pickPhoto  func() (string, error)
}

// New builds the application with persisted settings and startup
// diagnostics.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded
// frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}

	settingsDir := filepath.Join(homeDir, ".fleet-inspector")
	store := config.NewJSONStore(filepath.Join(settingsDir, "settings.json"))
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	checker := diagnostics.NewChecker(settingsDir)

	app := &App{
		Settings:    settings,
		Store:       store,
		Localizer:   i18n.New(settings.Language),
		Diagnostics: checker.Run(settings),
		assets:      assets,
		checker:     checker,
		login:       authclient.New(settings.ServerURL),
		submitter:   submit.New(settings.ServerURL),
		notices:     notify.NewBus(1000),
	}
	app.Binder = checklist.NewBinder(app.releaseEvidence)
	app.pickPhoto = app.pickPhotoViaDialog
	return app, nil
}

// Run starts the Wails application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Fleet Inspector",
		Width:       480,
		Height:      860,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores the Wails runtime context for push events and dialogs.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// GetDiagnostics returns the latest cached diagnostics report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	return a.Diagnostics
}

// RefreshDiagnostics reloads settings and reruns the startup checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	a.mu.Lock()
	a.Settings = settings
	a.Diagnostics = a.checker.Run(settings)
	report := a.Diagnostics
	a.mu.Unlock()
	return report, nil
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings normalizes and persists settings, rebuilds the backend
// clients for the configured server, and refreshes diagnostics.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized := normalizeSettings(settings)
	// Validate before persisting so a rejected language never reaches disk.
	if !i18n.Supported(normalized.Language) {
		return domain.Settings{}, fmt.Errorf("unsupported language: %s", normalized.Language)
	}
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	if err := a.Localizer.SetLanguage(normalized.Language); err != nil {
		return domain.Settings{}, err
	}

	a.mu.Lock()
	a.Settings = normalized
	a.login = authclient.New(normalized.ServerURL)
	a.submitter = submit.New(normalized.ServerURL)
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(normalized)
	}
	a.mu.Unlock()

	return normalized, nil
}

// Login exchanges credentials for a bearer session. The credential is held
// for the lifetime of the app and gates submission.
func (a *App) Login(username, password string) (domain.AuthSession, error) {
	a.mu.Lock()
	client := a.login
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := client.Login(ctx, username, password)
	if err != nil {
		a.publish(notify.Notice{
			Kind:    notify.KindError,
			Message: "Login failed",
			Detail:  err.Error(),
		})
		return domain.AuthSession{}, err
	}

	a.mu.Lock()
	a.auth = session
	a.mu.Unlock()

	a.publish(notify.Notice{
		Kind:    notify.KindStatus,
		Message: "Logged in as " + username,
	})
	return session, nil
}

// StartInspection creates the inspection session for one truck, captures
// the start timestamp, and requests a location fix in the background.
// Returns the client-local report ID.
func (a *App) StartInspection(truckNumber string) (string, error) {
	session, err := inspection.New(strings.TrimSpace(truckNumber))
	if err != nil {
		return "", err
	}
	if err := session.Start(); err != nil {
		return "", err
	}

	// Check and assignment share one critical section so two racing starts
	// cannot both pass the in-progress check.
	a.mu.Lock()
	if a.session != nil && a.session.State() == domain.ReportStateInProgress {
		a.mu.Unlock()
		return "", ErrInspectionActive
	}
	a.session = session
	locator := a.Locator
	a.mu.Unlock()

	a.publish(notify.Notice{
		ReportID: session.ID(),
		Kind:     notify.KindStatus,
		State:    domain.ReportStateInProgress,
		Message:  "Inspection started for truck " + session.TruckNumber(),
	})

	if locator != nil {
		go a.resolveLocation(session, locator)
	}
	return session.ID(), nil
}

// resolveLocation asks the geolocation collaborator for a fix and renders
// it into the report address. Failure is advisory only: the inspection and
// a later submission proceed without it.
func (a *App) resolveLocation(session *inspection.Session, locator geo.Locator) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fix, err := locator.Locate(ctx)
	if err != nil {
		a.publish(notify.Notice{
			ReportID: session.ID(),
			Kind:     notify.KindAdvisory,
			Message:  "Could not determine location",
			Detail:   err.Error(),
		})
		return
	}

	if err := session.SetAddress(geo.FormatAddress(fix)); err != nil {
		// Session reached a terminal state while the fix was in flight.
		return
	}
	a.publish(notify.Notice{
		ReportID: session.ID(),
		Kind:     notify.KindStatus,
		Message:  "Location captured",
	})
}

// ReportLocation feeds a position obtained by the frontend geolocation API
// into the report address.
func (a *App) ReportLocation(latitude, longitude float64) error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}
	return session.SetAddress(geo.FormatAddress(geo.Fix{Latitude: latitude, Longitude: longitude}))
}

// AbandonInspection discards the current session without network effect.
// Its items and evidence are gone for good.
func (a *App) AbandonInspection() error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}
	if err := session.Abandon(); err != nil {
		return err
	}

	a.Binder.ReleaseAll(session.Truck())
	for _, trailer := range session.Trailers() {
		a.Binder.ReleaseAll(trailer)
	}

	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()

	a.publish(notify.Notice{
		ReportID: session.ID(),
		Kind:     notify.KindStatus,
		State:    domain.ReportStateAbandoned,
		Message:  "Inspection abandoned",
	})
	return nil
}

// ReportState returns the lifecycle state of the current report, or
// not_started when none exists.
func (a *App) ReportState() domain.ReportState {
	a.mu.Lock()
	session := a.session
	a.mu.Unlock()

	if session == nil {
		return domain.ReportStateNotStarted
	}
	return session.State()
}

// SetCarrier records the carrier name on the current report.
func (a *App) SetCarrier(carrier string) error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}
	return session.SetCarrier(strings.TrimSpace(carrier))
}

// SetAddress records a manually entered inspection address.
func (a *App) SetAddress(address string) error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}
	return session.SetAddress(strings.TrimSpace(address))
}

// SetOdometer records the odometer reading, clamping negative input to 0,
// and returns the stored value.
func (a *App) SetOdometer(reading int) (int, error) {
	session, err := a.activeSession()
	if err != nil {
		return 0, err
	}
	return session.SetOdometer(reading)
}

// AddTrailer appends a trailer with a fresh checklist and returns its
// position.
func (a *App) AddTrailer(identifier string) (int, error) {
	session, err := a.activeSession()
	if err != nil {
		return 0, err
	}

	index, err := session.AddTrailer(strings.TrimSpace(identifier))
	if err != nil {
		return 0, err
	}

	a.publish(notify.Notice{
		ReportID: session.ID(),
		Kind:     notify.KindStatus,
		Message:  fmt.Sprintf("Trailer %s added", identifier),
	})
	return index, nil
}

// RemoveTrailer removes the trailer at the given position and releases its
// evidence. There is no undo.
func (a *App) RemoveTrailer(index int) error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}

	removed, err := session.RemoveTrailer(index)
	if err != nil {
		return err
	}
	a.Binder.ReleaseAll(removed)

	a.publish(notify.Notice{
		ReportID: session.ID(),
		Kind:     notify.KindStatus,
		Message:  fmt.Sprintf("Trailer %s removed", removed.Identifier),
	})
	return nil
}

// SetTruckItem records a verdict for one truck checklist item.
func (a *App) SetTruckItem(key string, verdict string) error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}
	return session.Truck().SetValue(domain.ItemKey(key), domain.Verdict(verdict))
}

// SetTrailerItem records a verdict for one item of the trailer at index.
func (a *App) SetTrailerItem(index int, key string, verdict string) error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}

	trailer, err := session.Trailer(index)
	if err != nil {
		return err
	}
	return trailer.SetValue(domain.ItemKey(key), domain.Verdict(verdict))
}

// AttachTruckPhoto captures a photo for one truck item. Any prior photo on
// that item is released first.
func (a *App) AttachTruckPhoto(key string) (domain.EvidenceRef, error) {
	session, err := a.activeSession()
	if err != nil {
		return domain.EvidenceRef{}, err
	}
	return a.attachPhoto(session.Truck(), domain.ItemKey(key))
}

// AttachTrailerPhoto captures a photo for one item of the trailer at index.
func (a *App) AttachTrailerPhoto(index int, key string) (domain.EvidenceRef, error) {
	session, err := a.activeSession()
	if err != nil {
		return domain.EvidenceRef{}, err
	}

	trailer, err := session.Trailer(index)
	if err != nil {
		return domain.EvidenceRef{}, err
	}
	return a.attachPhoto(trailer, domain.ItemKey(key))
}

// ClearTruckPhoto removes the photo attached to one truck item.
func (a *App) ClearTruckPhoto(key string) error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}
	return a.Binder.Clear(session.Truck(), domain.ItemKey(key))
}

// ClearTrailerPhoto removes the photo attached to one trailer item.
func (a *App) ClearTrailerPhoto(index int, key string) error {
	session, err := a.activeSession()
	if err != nil {
		return err
	}

	trailer, err := session.Trailer(index)
	if err != nil {
		return err
	}
	return a.Binder.Clear(trailer, domain.ItemKey(key))
}

// attachPhoto invokes the capture provider and binds the resulting source.
// A cancelled capture leaves the item untouched.
func (a *App) attachPhoto(entity *checklist.Entity, key domain.ItemKey) (domain.EvidenceRef, error) {
	source, err := a.pickPhoto()
	if err != nil {
		return domain.EvidenceRef{}, err
	}
	if source == "" {
		return domain.EvidenceRef{}, nil
	}
	return a.Binder.Attach(entity, key, source)
}

// pickPhotoViaDialog opens a native file dialog for photo selection.
func (a *App) pickPhotoViaDialog() (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.OpenFileDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select photo",
		Filters: photoDialogFilter,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

// SetLanguage switches the display language. Checklist data is untouched:
// only labels re-resolve.
func (a *App) SetLanguage(code string) error {
	return a.Localizer.SetLanguage(code)
}

// TruckChecklist returns the localized display rows of the truck checklist.
func (a *App) TruckChecklist() ([]ChecklistRow, error) {
	session, err := a.activeSession()
	if err != nil {
		return nil, err
	}
	return a.rows(session.Truck()), nil
}

// TrailerChecklist returns the localized display rows of the trailer at
// index.
func (a *App) TrailerChecklist(index int) ([]ChecklistRow, error) {
	session, err := a.activeSession()
	if err != nil {
		return nil, err
	}

	trailer, err := session.Trailer(index)
	if err != nil {
		return nil, err
	}
	return a.rows(trailer), nil
}

// rows localizes an entity's items in display order.
func (a *App) rows(entity *checklist.Entity) []ChecklistRow {
	items := entity.Items()
	out := make([]ChecklistRow, len(items))
	for i, item := range items {
		out[i] = ChecklistRow{
			Key:         item.Key,
			Label:       a.Localizer.Label(item.Key),
			Value:       item.Value,
			HasEvidence: item.Evidence != nil,
		}
	}
	return out
}

// SubmitReport sends the current report asynchronously. The outcome comes
// back on the notice bus; a second request while one is outstanding is
// refused rather than queued.
func (a *App) SubmitReport() error {
	a.mu.Lock()
	session := a.session
	auth := a.auth
	if session == nil || session.State() != domain.ReportStateInProgress {
		a.mu.Unlock()
		return ErrNoActiveInspection
	}
	if a.submitting {
		a.mu.Unlock()
		return ErrSubmitInFlight
	}
	a.submitting = true
	submitter := a.submitter
	a.mu.Unlock()

	a.publish(notify.Notice{
		ReportID: session.ID(),
		Kind:     notify.KindStatus,
		State:    domain.ReportStateInProgress,
		Message:  "Submitting report",
	})

	go a.runSubmission(session, auth, submitter)
	return nil
}

// runSubmission performs the submission call and maps the outcome to
// notices. Failures leave the session in progress and editable for retry.
func (a *App) runSubmission(session *inspection.Session, auth domain.AuthSession, submitter reportSubmitter) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	_, err := submitter.Submit(ctx, session, auth)

	a.mu.Lock()
	a.submitting = false
	a.mu.Unlock()

	if err != nil {
		notice := notify.Notice{
			ReportID: session.ID(),
			Kind:     notify.KindError,
			State:    session.State(),
			Message:  "Submission failed",
			Detail:   err.Error(),
		}
		if errors.Is(err, submit.ErrNotAuthenticated) {
			notice.Message = "Log in before submitting"
		}
		a.publish(notice)
		return
	}

	a.publish(notify.Notice{
		ReportID: session.ID(),
		Kind:     notify.KindResult,
		State:    domain.ReportStateSubmitted,
		Message:  "Report submitted",
	})
}

// Notices returns all notices with sequence greater than sinceSeq.
func (a *App) Notices(sinceSeq int64) []notify.Notice {
	return a.notices.Since(sinceSeq)
}

// publish stores a notice and emits a runtime push notification.
func (a *App) publish(notice notify.Notice) {
	published := a.notices.Publish(notice)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "report:notice", published)
	}
}

// releaseEvidence tells the frontend a photo reference was replaced or
// discarded so the host can reclaim the image resource.
func (a *App) releaseEvidence(ref domain.EvidenceRef) {
	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "evidence:released", ref)
	}
}

// activeSession returns the in-progress session or ErrNoActiveInspection.
func (a *App) activeSession() (*inspection.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil || a.session.State() != domain.ReportStateInProgress {
		return nil, ErrNoActiveInspection
	}
	return a.session, nil
}

// runtimeContext returns the Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// normalizeSettings trims user inputs and applies defaults for empty
// fields.
func normalizeSettings(settings domain.Settings) domain.Settings {
	settings.ServerURL = strings.TrimRight(strings.TrimSpace(settings.ServerURL), "/")
	settings.Language = strings.TrimSpace(settings.Language)
	if settings.Language == "" {
		settings.Language = "es"
	}
	return settings
}
