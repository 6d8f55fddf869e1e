package query

import "github.com/goliatone/go-vaultra/core"

func queryDependencyError(message string) error {
	return core.MissingDependencyError(message)
}

func queryValidationError(field string, message string) error {
	return core.FieldError("query", field, message)
}
