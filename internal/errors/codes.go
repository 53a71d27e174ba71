package errors

// ErrorCode represents a standardized error code returned by the mini app server
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingIdentity     ErrorCode = "AUTH_001"
	AuthInvalidInitData     ErrorCode = "AUTH_002"
	AuthExpiredInitData     ErrorCode = "AUTH_003"
	AuthInvalidSession      ErrorCode = "AUTH_004"
	AuthExpiredSession      ErrorCode = "AUTH_005"
	AuthQueryIdentityDenied ErrorCode = "AUTH_006"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationUnknownTab    ErrorCode = "VALIDATION_004"
	ValidationUnknownRegion ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
)

// Subscription error codes (SUBSCRIPTION_*)
const (
	SubscriptionNotFound       ErrorCode = "SUBSCRIPTION_001"
	SubscriptionInvalidID      ErrorCode = "SUBSCRIPTION_002"
	SubscriptionUnknownService ErrorCode = "SUBSCRIPTION_003"
)

// Backend gateway error codes (GATEWAY_*)
const (
	GatewayTransport   ErrorCode = "GATEWAY_001"
	GatewayBadStatus   ErrorCode = "GATEWAY_002"
	GatewayBadResponse ErrorCode = "GATEWAY_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

var errorMessages = map[ErrorCode]string{
	AuthMissingIdentity:     "User identity is required",
	AuthInvalidInitData:     "Host init data signature is invalid",
	AuthExpiredInitData:     "Host init data has expired",
	AuthInvalidSession:      "Session token is invalid",
	AuthExpiredSession:      "Session token has expired",
	AuthQueryIdentityDenied: "Query parameter identity is disabled",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationUnknownTab:    "Unknown tab",
	ValidationUnknownRegion: "Unknown view region",
	ValidationInvalidDate:   "Invalid date format",

	SubscriptionNotFound:       "Subscription not found",
	SubscriptionInvalidID:      "Invalid subscription ID",
	SubscriptionUnknownService: "Unknown quick-add service",

	GatewayTransport:   "Subscription backend is unreachable",
	GatewayBadStatus:   "Subscription backend rejected the request",
	GatewayBadResponse: "Subscription backend returned a malformed response",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
