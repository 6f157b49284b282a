package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/agency-site-backend/errs"
)

// maxJSONBodyBytes caps JSON request bodies. Media goes through the upload routes.
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody reads the request body into dst. Unknown fields are ignored.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewBadRequestError("failed to read request body")
	}

	if err := json.Unmarshal(bodyBytes, dst); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}
