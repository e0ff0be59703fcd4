package config

// NewReportForTest creates a Report flag group pointing at path
func NewReportForTest(path string) *Report {
	return &Report{path: path}
}

// NewLoggerForTest creates a Logger flag group
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewSentryForTest creates a Sentry flag group
func NewSentryForTest(dsn, env string) *Sentry {
	return &Sentry{dsn: dsn, env: env}
}
