package api

import (
	"html/template"
	stdhttp "net/http"

	intconfig "altura-admin/internal/config"
	h "altura-admin/internal/http/handlers"
	"altura-admin/internal/http/middleware"
	"altura-admin/internal/http/views"
	"altura-admin/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	apkProxyPath  = "/api/proxy/apk-download"
	apkStaticPath = "/altura-android.apk"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins, apkProxyPath, apkStaticPath),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.L().WithError(err).Warn("failed to set trusted proxies")
	}
	r.SetHTMLTemplate(template.Must(views.Load()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/", func(c *gin.Context) { c.Redirect(stdhttp.StatusFound, "/admin/bookings") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// APK relay, open to any origin.
	apk := r.Group("", middleware.PublicDownloadCORS())
	apk.GET(apkProxyPath, h.DownloadAPK)
	apk.OPTIONS(apkProxyPath, h.APKPreflight)
	apk.GET(apkStaticPath, h.DownloadAPKStatic)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)
	}

	admin := r.Group("/admin", middleware.Session())
	{
		admin.GET("/login", h.LoginPage)
		admin.POST("/session", h.SaveSession)
		admin.POST("/logout", h.Logout)

		gated := admin.Group("", middleware.RequireRoles("admin"))

		// Bookings
		gated.GET("/bookings", h.ListBookingsPage)
		gated.POST("/bookings/:id/status", h.ChangeBookingStatusForm)
		gated.GET("/bookings/:id/print", h.PrintReceipt)
		gated.GET("/bookings/:id/receipt.pdf", h.DownloadReceiptPDF)

		// Reports & exports
		gated.GET("/reports", h.ReportsPage)
		gated.GET("/reports/print", h.PrintReport)
		gated.GET("/reports/export.csv", h.ExportCSV)
		gated.GET("/reports/export.xlsx", h.ExportXLSX)
		gated.GET("/reports/export.pdf", h.ExportPDF)
		gated.GET("/exports", h.ExportHistory)

		gated.GET("/debug/apk", h.APKDebug)

		// JSON
		jsonAPI := gated.Group("/api")
		jsonAPI.GET("/bookings", h.ListBookingsJSON)
		jsonAPI.GET("/bookings/:id", h.GetBookingJSON)
		jsonAPI.PUT("/bookings/:id/status", h.UpdateBookingStatusJSON)
	}

	return r
}
