package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richards-law/intake-cli/internal/config"
	"github.com/richards-law/intake-cli/internal/model"
	"github.com/richards-law/intake-cli/pkg/clio"
)

// stubClio overrides only the auth surface; any other call panics, which
// is what we want in handler tests that must not reach the API.
type stubClio struct {
	clio.Client
	authURL     string
	exchangeErr error
	exchanged   []string
	status      clio.TokenStatus
	whoAmIErr   error
	whoAmICalls int
}

func (s *stubClio) AuthURL() string { return s.authURL }

func (s *stubClio) WhoAmI(ctx context.Context) (*clio.User, error) {
	s.whoAmICalls++
	if s.whoAmIErr != nil {
		return nil, s.whoAmIErr
	}
	return &clio.User{ID: 1, Name: "Dana Richards"}, nil
}

func (s *stubClio) ExchangeCode(ctx context.Context, code string) error {
	s.exchanged = append(s.exchanged, code)
	return s.exchangeErr
}

func (s *stubClio) TokenStatus() clio.TokenStatus { return s.status }

type stubExtractor struct {
	result *model.ExtractionResult
	err    error
	got    []byte
}

func (s *stubExtractor) ExtractReport(ctx context.Context, pdf []byte) (*model.ExtractionResult, error) {
	s.got = pdf
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := cfg
	cfg = &config.Config{
		Clio: config.ClioConfig{ClientID: "app-id"},
		Server: config.ServerConfig{
			Port:           8080,
			MaxUploadBytes: 1 << 20,
		},
	}
	t.Cleanup(func() { cfg = prev })
}

func multipartPDF(t *testing.T, filename, contentType string, body []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	if contentType != "" {
		hdr["Content-Type"] = []string{contentType}
	}
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestHandleExtract(t *testing.T) {
	setTestConfig(t)
	ex := &stubExtractor{result: &model.ExtractionResult{ReportNumber: "NY-2024-001234"}}

	body, ct := multipartPDF(t, "report.pdf", "application/pdf", []byte("%PDF-1.7 fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	handleExtract(ex)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("%PDF-1.7 fake"), ex.got)

	var result model.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "NY-2024-001234", result.ReportNumber)
}

func TestHandleExtract_RejectsNonPDFFilename(t *testing.T) {
	setTestConfig(t)
	ex := &stubExtractor{}

	body, ct := multipartPDF(t, "report.docx", "application/pdf", []byte("data"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	handleExtract(ex)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, ex.got)
}

func TestHandleExtract_RejectsWrongContentType(t *testing.T) {
	setTestConfig(t)
	ex := &stubExtractor{}

	body, ct := multipartPDF(t, "report.pdf", "text/plain", []byte("data"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	handleExtract(ex)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtract_EmptyUpload(t *testing.T) {
	setTestConfig(t)
	ex := &stubExtractor{}

	body, ct := multipartPDF(t, "report.pdf", "application/pdf", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	handleExtract(ex)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtract_ExtractionFailure(t *testing.T) {
	setTestConfig(t)
	ex := &stubExtractor{err: assert.AnError}

	body, ct := multipartPDF(t, "report.pdf", "application/pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	handleExtract(ex)(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestHandleApprove_InvalidBody(t *testing.T) {
	setTestConfig(t)

	req := httptest.NewRequest(http.MethodPost, "/api/approve", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	handleApprove(nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleApprove_MissingExtraction(t *testing.T) {
	setTestConfig(t)

	req := httptest.NewRequest(http.MethodPost, "/api/approve", strings.NewReader(`{"matter_id": 7}`))
	rec := httptest.NewRecorder()

	handleApprove(nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "extraction is required")
}

func TestHandleClioAuth(t *testing.T) {
	setTestConfig(t)
	client := &stubClio{authURL: "https://app.clio.com/oauth/authorize?client_id=app-id"}

	req := httptest.NewRequest(http.MethodGet, "/api/clio/auth", nil)
	rec := httptest.NewRecorder()

	handleClioAuth(client)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "oauth/authorize")
}

func TestHandleClioAuth_Unconfigured(t *testing.T) {
	setTestConfig(t)
	cfg.Clio.ClientID = ""

	req := httptest.NewRequest(http.MethodGet, "/api/clio/auth", nil)
	rec := httptest.NewRecorder()

	handleClioAuth(&stubClio{})(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleClioCallback(t *testing.T) {
	setTestConfig(t)
	client := &stubClio{}

	req := httptest.NewRequest(http.MethodGet, "/api/clio/callback?code=auth-code-123", nil)
	rec := httptest.NewRecorder()

	handleClioCallback(client)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"auth-code-123"}, client.exchanged)
	assert.Contains(t, rec.Body.String(), "connected")
}

func TestHandleClioCallback_OAuthError(t *testing.T) {
	setTestConfig(t)
	client := &stubClio{}

	req := httptest.NewRequest(http.MethodGet, "/api/clio/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()

	handleClioCallback(client)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, client.exchanged)
}

func TestHandleClioCallback_MissingCode(t *testing.T) {
	setTestConfig(t)

	req := httptest.NewRequest(http.MethodGet, "/api/clio/callback", nil)
	rec := httptest.NewRecorder()

	handleClioCallback(&stubClio{})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGracefulShutdown_DrainsInFlightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusOK)
	})}
	go srv.Serve(ln)

	got := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			got <- 0
			return
		}
		resp.Body.Close()
		got <- resp.StatusCode
	}()
	<-started

	done := make(chan error, 1)
	go func() { done <- gracefulShutdown(srv) }()

	select {
	case <-done:
		t.Fatal("shutdown returned before the in-flight request completed")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, http.StatusOK, <-got)
}

func TestHandleClioCallback_ExchangeFailure(t *testing.T) {
	setTestConfig(t)
	client := &stubClio{exchangeErr: assert.AnError}

	req := httptest.NewRequest(http.MethodGet, "/api/clio/callback?code=bad", nil)
	rec := httptest.NewRecorder()

	handleClioCallback(client)(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
