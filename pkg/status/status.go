package status

const (
	OK                    = "OK"
	CREATED               = "CREATED"
	BAD_REQUEST           = "BAD_REQUEST"
	UNAUTHORIZED          = "UNAUTHORIZED"
	NOT_FOUND             = "NOT_FOUND"
	INVALID_STATE         = "INVALID_STATE"
	UNPROCESSABLE_ENTITY  = "UNPROCESSABLE_ENTITY"
	UPSTREAM_FAILURE      = "UPSTREAM_FAILURE"
	INTERNAL_SERVER_ERROR = "INTERNAL_SERVER_ERROR"
)
