package logger

var (
	ErrorChain       = errorChain
	FormatErrorChain = formatErrorChain
)
