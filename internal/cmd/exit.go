// Package cmd provides CLI command implementations.
package cmd

// Exit codes for the tabrec CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitSchemaError indicates document schema validation failed.
	ExitSchemaError = 2

	// ExitPathError indicates a referenced dataset path is missing or unreadable.
	ExitPathError = 3

	// ExitRegistryError indicates a named collaborator is not registered.
	ExitRegistryError = 4

	// ExitNotFound indicates a document or file was not found.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitSchemaError:
		return "Schema Error"
	case ExitPathError:
		return "Path Error"
	case ExitRegistryError:
		return "Registry Error"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
