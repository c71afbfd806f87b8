package logger

// FormatError exposes the error rendering used by Logger.Error.
func FormatError(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}
