package helpers

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes body as a JSON document with the given status code.
// A zero status code defaults to http.StatusOK.
func RespondJSON(rw http.ResponseWriter, statusCode int, body any) {
	respBody, err := json.Marshal(body)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	_, _ = rw.Write(respBody)
}

// RespondRaw writes body verbatim as plain text with the given status code.
func RespondRaw(rw http.ResponseWriter, statusCode int, body string) {
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(body))
}
