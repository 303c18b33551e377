package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 认证与用户 100xx
	ErrUserExists      = 10001
	ErrUserNotFound    = 10002
	ErrAuthFailed      = 10003
	ErrTokenInvalid    = 10004
	ErrNoPermission    = 10005
	ErrUnauthenticated = 10006

	// 资源 200xx
	ErrNotFound = 20001
	ErrConflict = 20002

	// 外部依赖 300xx
	ErrUpstream = 30001

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
