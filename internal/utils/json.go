package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxRequestBody bounds documents accepted over HTTP.
const MaxRequestBody = 1 << 20

func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
