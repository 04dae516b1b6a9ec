package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every JSON body the API writes. Code is the
// stable error category and is only set on failures.
type Response struct {
	Status  bool   `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Error categories used when a handler has no more specific one
const (
	CodeBadRequest      = "invalid_request"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeTooManyRequests = "too_many_requests"
	CodeInternal        = "internal"
)

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// ResponseData writes a successful envelope with the given status
func ResponseData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{Status: true, Message: message, Data: data})
}

// ResponseError writes a failed envelope. code is the category clients
// switch on; message is for humans.
func ResponseError(w http.ResponseWriter, status int, code, message string, errors any) {
	writeJSON(w, status, Response{Status: false, Code: code, Message: message, Errors: errors})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseData(w, http.StatusOK, message, data)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseData(w, http.StatusCreated, message, data)
}

// ResponseNoContent writes 204 with no body
func ResponseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseError(w, http.StatusBadRequest, CodeBadRequest, message, errors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, CodeForbidden, message, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, CodeNotFound, message, nil)
}

func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusTooManyRequests, CodeTooManyRequests, message, nil)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, CodeInternal, message, nil)
}
