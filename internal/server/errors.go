package server

import (
	"errors"
	"net/http"

	"github.com/Saanvi26/ATS-Scorer/internal/ingest"
	"github.com/Saanvi26/ATS-Scorer/internal/request"
	"github.com/Saanvi26/ATS-Scorer/internal/resume"
	"github.com/Saanvi26/ATS-Scorer/internal/schemas"
)

// HTTPStatus maps a processing error to a response status. Credential
// problems are the caller's to fix, provider failures surface as bad
// gateway, everything unrecognized is a 500.
func HTTPStatus(err error) int {
	var fileErr *resume.FileError
	if errors.As(err, &fileErr) {
		return http.StatusBadRequest
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var ingestErr *ingest.Error
	if errors.As(err, &ingestErr) {
		return http.StatusBadGateway
	}

	var reqErr *request.Error
	if errors.As(err, &reqErr) {
		switch reqErr.Kind {
		case request.KindMissingCredential, request.KindInvalidCredential:
			return http.StatusUnauthorized
		case request.KindRateLimited:
			return http.StatusTooManyRequests
		case request.KindNetworkUnreachable, request.KindMalformedResponse, request.KindSchemaViolation:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// ErrorCode returns a stable machine-readable code for the error body.
func ErrorCode(err error) string {
	var fileErr *resume.FileError
	if errors.As(err, &fileErr) {
		return "invalid_file"
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return "invalid_request"
	}
	var ingestErr *ingest.Error
	if errors.As(err, &ingestErr) {
		return "job_fetch_failed"
	}

	var reqErr *request.Error
	if errors.As(err, &reqErr) {
		switch reqErr.Kind {
		case request.KindMissingCredential:
			return "missing_credential"
		case request.KindInvalidCredential:
			return "invalid_credential"
		case request.KindRateLimited:
			return "rate_limited"
		case request.KindNetworkUnreachable:
			return "network_unreachable"
		case request.KindMalformedResponse:
			return "malformed_response"
		case request.KindSchemaViolation:
			return "schema_violation"
		}
	}
	return "internal_error"
}
