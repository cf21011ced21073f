package main

import (
	"encoding/json"
	"net/http"
)

// envelope is the body of every JSON response.
type envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	render(w, status, envelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	render(w, status, envelope{Error: &errorDetail{Code: code, Message: message}})
}

func render(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
