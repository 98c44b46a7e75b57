package api

import "github.com/tresidus/tresidus-api/consulting"

var (
	errorMessageMap = map[int64]string{
		999:  "Internal server error",
		1000: "Route not found",
		1001: "invalid api token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: consulting.ErrRequestNotFound.Error(),
		1101: "Failed to create consulting request",
		1102: "Failed to fetch consulting requests",
		1103: "Failed to fetch consulting request",
		1104: "Failed to update consulting request",
		1105: "Failed to add communication",
		1106: "Failed to delete consulting request",
	}

	errorInternalServer = errorJSON(999)
	errorRouteNotFound  = errorJSON(1000)
	errorInvalidToken   = errorJSON(1001)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorRequestNotFound     = errorJSON(1100)
	errorCreateRequest       = errorJSON(1101)
	errorListRequests        = errorJSON(1102)
	errorGetRequest          = errorJSON(1103)
	errorUpdateRequest       = errorJSON(1104)
	errorAppendCommunication = errorJSON(1105)
	errorDeleteRequest       = errorJSON(1106)
)

// ErrorResponse is the failure form of the response envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int64  `json:"code"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:  code,
		Error: message,
	}
}

// withMessage returns a copy of e carrying an extra message
func (e ErrorResponse) withMessage(message string) ErrorResponse {
	e.Message = message
	return e
}

// withError returns a copy of e with its error text replaced
func (e ErrorResponse) withError(text string) ErrorResponse {
	e.Error = text
	return e
}
