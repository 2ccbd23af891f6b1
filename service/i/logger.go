package i

// Logger writes levelled log lines.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
