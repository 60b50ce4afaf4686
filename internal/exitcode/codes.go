package exitcode

// Exit codes shared by pathdater, filestager and slurp.
// The slurper worker treats any non-zero code as a failed file.
const (
	// Success - file handled
	Success = 0

	// InvalidScheme - input URI does not start with "file:"
	// Don't retry: fix the caller
	InvalidScheme = 1

	// PathNotFound - local path does not exist (anymore)
	// Don't retry: the file was picked up by someone else
	PathNotFound = 2

	// NoDate - filename carries no YYYYMMDD run
	// Don't retry: the file needs a manual destination
	NoDate = 3

	// MoveError - rename failed (permissions, cross-device, ...)
	// Check logs, may need manual intervention
	MoveError = 4

	// InputError - stdin unreadable/empty or invalid flags
	InputError = 5

	// ConfigError - missing or invalid configuration
	ConfigError = 6

	// ScriptError - stage or destination script failed, timed out or printed nothing
	ScriptError = 7

	// StorageError - failed to write to MinIO/S3
	// Retry with backoff
	StorageError = 8
)
