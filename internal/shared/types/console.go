package types

// ConsoleInterface defines console output.
type ConsoleInterface interface {
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
	CreateTable() TableInterface
}

// StatusHandle updates or stops a status message.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface builds and renders a table.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}
