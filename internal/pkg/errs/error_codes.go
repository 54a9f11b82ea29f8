/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the gateway and in communication with the browser.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Authentication and Session Errors
const (
	// ErrMissingCredentials indicates that username or password was empty on a login attempt.
	ErrMissingCredentials = 2001

	// ErrMissingRoleCode indicates that the role selection request carried no role code.
	ErrMissingRoleCode = 2002

	// ErrLoginRejected indicates that the remote session API rejected the credentials.
	ErrLoginRejected = 2101

	// ErrRoleSelectionRejected indicates that the remote session API rejected the chosen role.
	ErrRoleSelectionRejected = 2102

	// ErrUnauthorized indicates that the request carried no usable session token.
	ErrUnauthorized = 2103
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general gateway internal error.
	ErrUnknown = 5000

	// ErrUpstreamUnavailable indicates that the remote session API could not be reached.
	ErrUpstreamUnavailable = 5001
)
