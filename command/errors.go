package command

import "github.com/goliatone/go-vaultra/core"

func commandDependencyError(message string) error {
	return core.MissingDependencyError(message)
}

func commandValidationError(field string, message string) error {
	return core.FieldError("command", field, message)
}
