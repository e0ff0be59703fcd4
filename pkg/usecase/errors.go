package usecase

// Context keys for error values
const (
	FormatKey = "format"
)
