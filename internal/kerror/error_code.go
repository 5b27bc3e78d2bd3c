package kerror

import "net/http"

type ErrorCode string

const (
	EC_OK                ErrorCode = "OK"
	EC_UNKNOWN           ErrorCode = "UNKNOWN"
	EC_NOT_FOUND         ErrorCode = "NOT_FOUND"
	EC_INVALID_PARAMETER ErrorCode = "INVALID_PARAMETER"
	EC_CONFLICT          ErrorCode = "CONFLICT"
	EC_INTERNAL_ERROR    ErrorCode = "INTERNAL_ERROR"
	EC_UNAVAILABLE       ErrorCode = "UNAVAILABLE"
	EC_PRECONDITION      ErrorCode = "FAILED_PRECONDITION"
)

var httpErrorCodeMap = map[ErrorCode]int{
	EC_OK:                http.StatusOK,
	EC_UNKNOWN:           http.StatusInternalServerError,
	EC_NOT_FOUND:         http.StatusNotFound,
	EC_INVALID_PARAMETER: http.StatusBadRequest,
	EC_CONFLICT:          http.StatusConflict,
	EC_INTERNAL_ERROR:    http.StatusServiceUnavailable,
	EC_UNAVAILABLE:       http.StatusServiceUnavailable,
	EC_PRECONDITION:      http.StatusPreconditionFailed,
}

func (code ErrorCode) String() string {
	return string(code)
}

func (code ErrorCode) ToHttpErrorCode() int {
	if status, ok := httpErrorCodeMap[code]; ok {
		return status
	}
	return http.StatusServiceUnavailable
}
