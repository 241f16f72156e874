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

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	fkgerrors "github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/serializer"
)

// ErrorResponse is the body of every error returned by the server.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code fkgerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr writes err using its StructuredError code to pick the
// status. Errors without a code are reported as internal.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string, details map[string]any) {
	code := fkgerrors.CodeOf(err)
	if code == "" {
		code = fkgerrors.ErrCodeInternal
	}
	status := HTTPStatusFromCode(code)

	if details == nil {
		details = map[string]any{}
	}
	details["error"] = err.Error()

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "code", code, "error", err, "path", r.URL.Path)
	}

	WriteError(w, r, status, code, message, isRetryable(code), details)
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code fkgerrors.ErrorCode) int {
	switch code {
	case fkgerrors.ErrCodeInvalidRequest, fkgerrors.ErrCodeValidation,
		fkgerrors.ErrCodeParse, fkgerrors.ErrCodeDecode:
		return http.StatusBadRequest
	case fkgerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case fkgerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case fkgerrors.ErrCodeBusy:
		return http.StatusConflict
	case fkgerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case fkgerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case fkgerrors.ErrCodeNetwork:
		return http.StatusBadGateway
	case fkgerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isRetryable(code fkgerrors.ErrorCode) bool {
	switch code {
	case fkgerrors.ErrCodeTimeout, fkgerrors.ErrCodeNetwork, fkgerrors.ErrCodeUnavailable,
		fkgerrors.ErrCodeRateLimitExceeded, fkgerrors.ErrCodeBusy, fkgerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}
