package handlers

import (
	"io"
	"net/http"
	"strconv"

	"altura-admin/internal/http/middleware"
	"altura-admin/internal/metrics"
	"altura-admin/internal/services"
	"altura-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

func setAPKCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
}

// DownloadAPK relays the Android build from the APK host.
func DownloadAPK(c *gin.Context) {
	relayAPK(c, false)
}

// DownloadAPKStatic serves /altura-android.apk through the same relay
// without caching.
func DownloadAPKStatic(c *gin.Context) {
	relayAPK(c, true)
}

func relayAPK(c *gin.Context, noCache bool) {
	reqID := middleware.GetRequestID(c)
	proxy := current().APK
	if proxy == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to download APK"})
		return
	}

	dl, err := proxy.Open(c.Request.Context(), reqID)
	if err != nil {
		utils.LogError(reqID, "apk", "download", err)
		status, msg := services.DownloadError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	defer dl.Close()

	setAPKCORS(c)
	c.Header("Content-Type", services.APKContentType)
	c.Header("Content-Disposition", services.APKContentDisposition)
	if dl.ContentLength > 0 {
		c.Header("Content-Length", strconv.FormatInt(dl.ContentLength, 10))
	}
	if noCache {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	}
	c.Status(http.StatusOK)

	n, err := io.Copy(c.Writer, dl.Body)
	metrics.APKBytes.Add(float64(n))
	if err != nil {
		metrics.DownloadWriteErrors.Inc()
		utils.LogError(reqID, "apk", "download", err)
		return
	}
	utils.LogEvent(reqID, "apk", "download", "APK file size: "+strconv.FormatInt(n, 10)+" bytes")
}

// APKPreflight answers CORS preflight for the relay.
func APKPreflight(c *gin.Context) {
	setAPKCORS(c)
	c.Status(http.StatusOK)
}

// APKDebugPage is the data of the APK probe page.
type APKDebugPage struct {
	Page
	UpstreamURL string
	HasProbe    bool
	Probe       services.ProbeResult
}

// APKDebug shows the last upstream probe; ?refresh=1 probes now.
// JSON clients (Accept: application/json) get the probe result only.
func APKDebug(c *gin.Context) {
	proxy := current().APK
	if proxy == nil {
		respondError(c, http.StatusServiceUnavailable, "apk_disabled", "APK proxy belum dikonfigurasi", nil)
		return
	}

	probe, ok := proxy.LastProbe()
	if c.Query("refresh") == "1" || !ok {
		probe, ok = proxy.Probe(c.Request.Context()), true
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, probe)
		return
	}
	c.HTML(http.StatusOK, "apk_debug.html", APKDebugPage{
		Page:        newPage(c, "Debug APK"),
		UpstreamURL: proxy.UpstreamURL,
		HasProbe:    ok,
		Probe:       probe,
	})
}
