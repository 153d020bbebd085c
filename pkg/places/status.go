package places

// Status is the outcome code the service reports in every response body.
// A non-OK status is not a transport failure: it is returned to the caller
// inside the result.
type Status string

const (
	StatusOK             Status = "OK"
	StatusZeroResults    Status = "ZERO_RESULTS"
	StatusOverQueryLimit Status = "OVER_QUERY_LIMIT"
	StatusRequestDenied  Status = "REQUEST_DENIED"
	StatusInvalidRequest Status = "INVALID_REQUEST"
	StatusNotFound       Status = "NOT_FOUND"
	StatusUnknownError   Status = "UNKNOWN_ERROR"
)

// IsOK reports whether the status is OK.
func (s Status) IsOK() bool {
	return s == StatusOK
}

// IsQuotaExceeded reports whether the service rejected the request because
// the key ran out of quota.
func (s Status) IsQuotaExceeded() bool {
	return s == StatusOverQueryLimit
}

// Known reports whether s is one of the documented status codes.
func (s Status) Known() bool {
	switch s {
	case StatusOK, StatusZeroResults, StatusOverQueryLimit, StatusRequestDenied,
		StatusInvalidRequest, StatusNotFound, StatusUnknownError:
		return true
	default:
		return false
	}
}
