// export_test.go exports private identifiers for white-box testing.
package logger

// ErrorEntry aliases the private chain entry type for tests.
type ErrorEntry = errorEntry

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
