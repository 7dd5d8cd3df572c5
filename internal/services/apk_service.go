package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"altura-admin/internal/domain"
	"altura-admin/internal/metrics"
	"altura-admin/internal/utils"
)

const (
	APKContentType        = "application/vnd.android.package-archive"
	APKContentDisposition = `attachment; filename="Altura.apk"`

	apkAccept    = "application/vnd.android.package-archive, application/octet-stream, */*"
	apkUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// ProbeResult is the outcome of a HEAD request against the APK host.
type ProbeResult struct {
	Status     int               `json:"status,omitempty"`
	StatusText string            `json:"statusText,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	OK         bool              `json:"ok"`
	URL        string            `json:"url,omitempty"`
	Error      string            `json:"error,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// APKDownload is an open upstream response known to be non-empty.
type APKDownload struct {
	Body          io.Reader
	ContentLength int64
	closer        io.Closer
}

func (d *APKDownload) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// APKProxy relays the Android build from the APK host and remembers the
// last probe of that host. One instance is shared by all requests.
type APKProxy struct {
	UpstreamURL string
	Client      *http.Client

	mu   sync.RWMutex
	last *ProbeResult
}

func NewAPKProxy(upstreamURL string, client *http.Client) *APKProxy {
	if client == nil {
		client = http.DefaultClient
	}
	return &APKProxy{UpstreamURL: upstreamURL, Client: client}
}

// Open starts the upstream download. The caller must Close the result.
func (p *APKProxy) Open(ctx context.Context, requestID string) (*APKDownload, error) {
	utils.LogEvent(requestID, "apk", "download", "proxy apk download request started")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UpstreamURL, nil)
	if err != nil {
		return nil, domain.InternalError{Msg: "gagal membuat request", Err: err}
	}
	req.Header.Set("Accept", apkAccept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", apkUserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		metrics.BackendCalls.WithLabelValues("apk_download", "error").Inc()
		return nil, domain.UpstreamError{Op: "apk_download", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		metrics.BackendCalls.WithLabelValues("apk_download", "error").Inc()
		return nil, domain.UpstreamError{Op: "apk_download", Status: resp.StatusCode, StatusText: statusText(resp)}
	}

	br := bufio.NewReaderSize(resp.Body, 64<<10)
	if _, err := br.Peek(1); err != nil {
		resp.Body.Close()
		metrics.BackendCalls.WithLabelValues("apk_download", "error").Inc()
		if errors.Is(err, io.EOF) {
			return nil, domain.EmptyPayloadError{Resource: "APK file"}
		}
		return nil, domain.UpstreamError{Op: "apk_download", Err: err}
	}
	metrics.BackendCalls.WithLabelValues("apk_download", "ok").Inc()

	return &APKDownload{Body: br, ContentLength: resp.ContentLength, closer: resp.Body}, nil
}

// DownloadError maps an Open failure to the relay's HTTP status and message.
func DownloadError(err error) (int, string) {
	if up, ok := domain.AsUpstream(err); ok && up.Status != 0 {
		return up.Status, fmt.Sprintf("Server error: %d %s", up.Status, up.StatusText)
	}
	if domain.IsEmptyPayload(err) {
		return http.StatusBadRequest, "APK file is empty"
	}
	return http.StatusInternalServerError, "Failed to download APK"
}

// Probe sends a HEAD request to the APK host and stores the result.
func (p *APKProxy) Probe(ctx context.Context) ProbeResult {
	res := ProbeResult{Timestamp: time.Now().UTC()}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.UpstreamURL, nil)
	if err == nil {
		req.Header.Set("Accept", apkAccept)
		req.Header.Set("Cache-Control", "no-cache")
		var resp *http.Response
		resp, err = p.Client.Do(req)
		if err == nil {
			resp.Body.Close()
			res.Status = resp.StatusCode
			res.StatusText = statusText(resp)
			res.OK = resp.StatusCode >= 200 && resp.StatusCode < 300
			res.URL = resp.Request.URL.String()
			res.Headers = make(map[string]string, len(resp.Header))
			for k := range resp.Header {
				res.Headers[strings.ToLower(k)] = resp.Header.Get(k)
			}
		}
	}
	if err != nil {
		res.Error = err.Error()
	}

	if res.OK {
		metrics.APKProbeUp.Set(1)
	} else {
		metrics.APKProbeUp.Set(0)
	}

	p.mu.Lock()
	p.last = &res
	p.mu.Unlock()
	return res
}

// LastProbe returns the stored probe, if any ran.
func (p *APKProxy) LastProbe() (ProbeResult, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return ProbeResult{}, false
	}
	return *p.last, true
}

// statusText keeps the upstream's reason phrase ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
