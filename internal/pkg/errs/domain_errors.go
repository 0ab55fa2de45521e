package errs

// Sentinels shared by the query and command sides
var (
	ErrForbidden               = New("forbidden")
	ErrDatabaseOperationFailed = New("database operation failed")
)
