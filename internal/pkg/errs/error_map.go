/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Authentication and Session Errors
	ErrMissingCredentials:    {Code: ErrMissingCredentials, Message: "Username and password are required.", Status: http.StatusBadRequest},
	ErrMissingRoleCode:       {Code: ErrMissingRoleCode, Message: "A role code is required.", Status: http.StatusBadRequest},
	ErrLoginRejected:         {Code: ErrLoginRejected, Message: "Failed to login.", Status: http.StatusUnauthorized},
	ErrRoleSelectionRejected: {Code: ErrRoleSelectionRejected, Message: "Failed to select role.", Status: http.StatusUnauthorized},
	ErrUnauthorized:          {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:             {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrUpstreamUnavailable: {Code: ErrUpstreamUnavailable, Message: "Something went wrong. Please try again.", Status: http.StatusBadGateway},
}
