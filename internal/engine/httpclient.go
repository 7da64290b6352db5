package engine

import (
	"fmt"
	"math"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// HTTPDoer is the subset of *http.Client used by the remote API wrappers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TranscriptClient wraps tls-client with a Chrome TLS fingerprint and exposes
// a net/http compatible Do.
type TranscriptClient struct {
	client tls_client.HttpClient
}

// NewTranscriptClient creates the client used for the transcript scraping service.
// With insecure set, certificate and hostname verification are disabled: the
// service is reached through proxied hosts whose certificates do not validate.
func NewTranscriptClient(timeout time.Duration, insecure bool) (*TranscriptClient, error) {
	opts := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	}
	if timeout > 0 {
		opts = append(opts, tls_client.WithTimeoutSeconds(timeoutSeconds(timeout)))
	}
	if insecure {
		opts = append(opts, tls_client.WithInsecureSkipVerify())
	}
	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), opts...)
	if err != nil {
		return nil, fmt.Errorf("tls-client init: %w", err)
	}
	return &TranscriptClient{client: client}, nil
}

// timeoutSeconds rounds d up to whole seconds, the client's timeout unit.
func timeoutSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// Do converts req to an fhttp request, executes it and converts the response back.
func (tc *TranscriptClient) Do(req *http.Request) (*http.Response, error) {
	fReq := &fhttp.Request{
		Method:        req.Method,
		URL:           req.URL,
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		Header:        make(fhttp.Header, len(req.Header)),
		Body:          req.Body,
		ContentLength: req.ContentLength,
		Host:          req.Host,
	}
	for k, v := range req.Header {
		fReq.Header[k] = v
	}
	fReq = fReq.WithContext(req.Context())

	resp, err := tc.client.Do(fReq)
	if err != nil {
		return nil, err
	}

	out := &http.Response{
		Status:           resp.Status,
		StatusCode:       resp.StatusCode,
		Proto:            resp.Proto,
		ProtoMajor:       resp.ProtoMajor,
		ProtoMinor:       resp.ProtoMinor,
		ContentLength:    resp.ContentLength,
		Body:             resp.Body,
		Header:           make(http.Header, len(resp.Header)),
		Uncompressed:     resp.Uncompressed,
		TransferEncoding: resp.TransferEncoding,
		Request:          req,
	}
	for k, v := range resp.Header {
		out.Header[k] = v
	}
	return out, nil
}

// CloseIdleConnections releases the underlying connections.
func (tc *TranscriptClient) CloseIdleConnections() {
	tc.client.CloseIdleConnections()
}
