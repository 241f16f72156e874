// Copyright (c) 2025, The FoodKG Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type testData struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := testData{Message: "success", Code: 200}

	RespondJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result testData
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result != data {
		t.Errorf("expected %+v, got %+v", data, result)
	}
}

func TestRespondJSON_BuffersBeforeWritingHeaders(t *testing.T) {
	w := httptest.NewRecorder()

	// Channels cannot be marshaled to JSON
	RespondJSON(w, http.StatusOK, make(chan int))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d for encoding error, got %d", http.StatusInternalServerError, w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("expected error message in body")
	}
}

func TestRespondJSON_EmptyData(t *testing.T) {
	w := httptest.NewRecorder()

	RespondJSON(w, http.StatusOK, nil)

	if body := w.Body.String(); body != "null\n" {
		t.Errorf("expected 'null\\n', got %q", body)
	}
}

func TestNewHTTPClient_Defaults(t *testing.T) {
	c := NewHTTPClient()

	if c.Client == nil {
		t.Fatal("expected non-nil Client")
	}
	if c.UserAgent != HTTPClientUserAgent {
		t.Errorf("expected UserAgent %s, got %s", HTTPClientUserAgent, c.UserAgent)
	}
	if c.MaxResponseBytes <= 0 {
		t.Errorf("expected positive MaxResponseBytes, got %d", c.MaxResponseBytes)
	}
	tr, ok := c.Client.Transport.(*http.Transport)
	if !ok {
		t.Fatal("expected Client.Transport to be *http.Transport")
	}
	if tr.TLSClientConfig == nil || tr.TLSClientConfig.InsecureSkipVerify {
		t.Error("expected TLS verification enabled by default")
	}
}

func TestNewHTTPClient_WithOptions(t *testing.T) {
	c := NewHTTPClient(
		WithUserAgent("test/1.0"),
		WithTotalTimeout(3*time.Second),
		WithInsecureSkipVerify(true),
		WithMaxResponseBytes(10),
	)

	if c.UserAgent != "test/1.0" {
		t.Errorf("expected UserAgent test/1.0, got %s", c.UserAgent)
	}
	if c.Client.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", c.Client.Timeout)
	}
	tr := c.Client.Transport.(*http.Transport)
	if !tr.TLSClientConfig.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify to be true")
	}
	if c.MaxResponseBytes != 10 {
		t.Errorf("expected MaxResponseBytes 10, got %d", c.MaxResponseBytes)
	}
}

func TestNewHTTPClient_WithCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}

	c := NewHTTPClient(WithClient(custom), WithTotalTimeout(time.Second))

	if c.Client != custom {
		t.Error("expected custom client to be used")
	}
	if c.Client.Timeout != 5*time.Second {
		t.Errorf("expected custom timeout to be preserved, got %v", c.Client.Timeout)
	}
}

func TestHTTPClient_PostJSON(t *testing.T) {
	var gotMethod, gotType, gotAgent, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotAgent = r.Header.Get("User-Agent")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewHTTPClient()
	resp, err := c.PostJSON(context.Background(), srv.URL, []byte(`{"filters":[]}`))
	if err != nil {
		t.Fatalf("PostJSON failed: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("expected JSON content type, got %s", gotType)
	}
	if gotAgent != HTTPClientUserAgent {
		t.Errorf("expected user agent %s, got %s", HTTPClientUserAgent, gotAgent)
	}
	if gotBody != `{"filters":[]}` {
		t.Errorf("unexpected body %q", gotBody)
	}
	if !resp.OK() || resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `[]` {
		t.Errorf("unexpected response body %q", resp.Body)
	}
}

func TestHTTPClient_NonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.OK() {
		t.Error("expected non-OK response")
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHTTPClient_ResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(WithMaxResponseBytes(16)).Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected size limit error")
	}
}

func TestHTTPClient_Errors(t *testing.T) {
	c := NewHTTPClient(WithTotalTimeout(time.Second))

	if _, err := c.Get(context.Background(), ""); err == nil {
		t.Error("expected error for empty url")
	}
	if _, err := c.Get(context.Background(), "http://127.0.0.1:1/unreachable"); err == nil {
		t.Error("expected transport error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	if _, err := c.Get(ctx, srv.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}
