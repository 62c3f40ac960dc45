package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"univer-cinema/pkg/apperror"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	writeResponse(w, code, Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func writeResponse(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	writeResponse(w, http.StatusBadRequest, Response{
		Message: message,
		Code:    string(apperror.KindValidation),
		Errors:  errors,
	})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusUnauthorized, Response{Message: message, Code: string(apperror.KindUnauthorized)})
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusForbidden, Response{Message: message, Code: string(apperror.KindForbidden)})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusNotFound, Response{Message: message, Code: string(apperror.KindNotFound)})
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusTooManyRequests, Response{Message: message, Code: string(apperror.KindRateLimited)})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusInternalServerError, Response{Message: message, Code: string(apperror.KindInternal)})
}

// ResponseError renders any service error. Non-apperror values become a 500
// without leaking their text.
func ResponseError(w http.ResponseWriter, err error) {
	var ae *apperror.Error
	if !errors.As(err, &ae) || ae.Kind == apperror.KindInternal {
		ResponseInternalError(w, "Internal server error")
		return
	}

	resp := Response{Message: ae.Message, Code: string(ae.Kind)}
	if len(ae.Fields) > 0 {
		resp.Errors = ae.Fields
	}
	writeResponse(w, ae.StatusCode(), resp)
}
