// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ammateam/callboard/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named query-string parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
DateParam parses an ISO YYYY-MM-DD query parameter.

Returns nil when the parameter is absent or malformed — read views treat a
bad date filter as "no filter" rather than failing the whole request.
*/
func DateParam(request *http.Request, name string) *time.Time {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil
	}

	return &parsed
}
