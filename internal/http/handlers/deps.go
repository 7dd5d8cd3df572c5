package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"altura-admin/internal/config"
	"altura-admin/internal/domain"
	"altura-admin/internal/http/middleware"
	"altura-admin/internal/notify"
	"altura-admin/internal/repositories"
	"altura-admin/internal/services"
	"altura-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators shared by every handler.
type Deps struct {
	Bookings       services.BookingAPI
	BackendTimeout time.Duration
	Notify         notify.Store
	APK            *services.APKProxy
	ExportLogs     repositories.ExportLogRepository
	Company        config.Company
	Now            func() time.Time
}

var (
	depsMu sync.RWMutex
	deps   = Deps{Notify: notify.NewMemoryStore(), Now: time.Now}
)

// Configure installs the handler dependencies. Call before serving.
func Configure(d Deps) {
	if d.Notify == nil {
		d.Notify = notify.NewMemoryStore()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	depsMu.Lock()
	deps = d
	depsMu.Unlock()
}

func current() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func bookingService(c *gin.Context) services.BookingService {
	d := current()
	return services.BookingService{API: d.Bookings, Timeout: d.BackendTimeout, RequestID: middleware.GetRequestID(c)}
}

func docsService(c *gin.Context) services.DocsService {
	d := current()
	return services.DocsService{Company: d.Company, RequestID: middleware.GetRequestID(c), Now: d.Now}
}

func exportService(c *gin.Context) services.ExportService {
	d := current()
	return services.ExportService{
		Logs:        d.ExportLogs,
		RequestID:   middleware.GetRequestID(c),
		RequestedBy: middleware.GetSession(c).Name,
		Now:         d.Now,
	}
}

// Page is the data every full admin page receives.
type Page struct {
	Title         string
	Session       domain.Session
	Notifications []notify.Notification
}

// newPage pops the flashed notifications of this browser and appends extra.
func newPage(c *gin.Context, title string, extra ...notify.Notification) Page {
	p := Page{Title: title, Session: middleware.GetSession(c)}
	pending, err := current().Notify.Pop(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "notify", "pop", err)
	}
	p.Notifications = append(pending, extra...)
	return p
}

// flash keeps notifications for the next page render of this browser.
func flash(c *gin.Context, n ...notify.Notification) {
	if len(n) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := current().Notify.Push(ctx, middleware.GetSID(c), n...); err != nil {
		utils.LogError(middleware.GetRequestID(c), "notify", "push", err)
	}
}

// flashAndRedirect stores n and sends the browser to target with 303.
func flashAndRedirect(c *gin.Context, target string, n ...notify.Notification) {
	flash(c, n...)
	c.Redirect(http.StatusSeeOther, target)
}
