package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	errorsmod "cosmossdk.io/errors"
)

// ErrorResponse is the body of a failed request. Codespace and code identify the registered error.
type ErrorResponse struct {
	Codespace string `json:"codespace"`
	Code      uint32 `json:"code"`
	Error     string `json:"error"`
}

// Err rebuilds the registered error the response was written from
func (r ErrorResponse) Err() error {
	return errorsmod.ABCIError(r.Codespace, r.Code, r.Error)
}

// WriteJSON writes the payload as JSON with the given status code
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	bz, err := json.Marshal(payload)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteRawJSON(w, status, bz)
}

// WriteRawJSON writes already encoded JSON with the given status code
func WriteRawJSON(w http.ResponseWriter, status int, bz []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bz)
}

// WriteError writes the error as an ErrorResponse. Unregistered errors are reported as internal server errors.
func WriteError(w http.ResponseWriter, err error) {
	codespace, code, log := errorsmod.ABCIInfo(err, false)

	status := http.StatusBadRequest
	if codespace == errorsmod.UndefinedCodespace {
		status = http.StatusInternalServerError
	}

	WriteJSON(w, status, ErrorResponse{Codespace: codespace, Code: code, Error: log})
}

// ReadJSON decodes the request body into v
func ReadJSON(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("cannot decode request body: %w", err)
	}

	return nil
}

// ReadResponse decodes a successful response into v, or returns the error carried by a failed one
func ReadResponse(res *http.Response, v interface{}) error {
	bz, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		var errRes ErrorResponse
		if err := json.Unmarshal(bz, &errRes); err != nil || errRes.Codespace == "" {
			return fmt.Errorf("request failed with status %s: %s", res.Status, string(bz))
		}

		return errRes.Err()
	}

	if v == nil {
		return nil
	}

	return json.Unmarshal(bz, v)
}
