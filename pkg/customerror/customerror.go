package customerror

import "fmt"

type CustomError struct {
	Module   string
	Endpoint string
	Message  string
}

var ErrInvalidInput = fmt.Errorf("InvalidInput")

var ErrNotFound = fmt.Errorf("NotFound")

var ErrConflict = fmt.Errorf("Conflict")

var ErrStorageUnavailable = fmt.Errorf("StorageUnavailable")

func (customError CustomError) Error() string {
	return fmt.Sprintf("ERROR|%s|%s:%s", customError.Endpoint, customError.Module, customError.Message)
}

func (customError *CustomError) AppendModule(module string) {
	customError.Module = module + "." + customError.Module
}

func NewError(module, endpoint, message string) error {
	return CustomError{
		Module:   module,
		Endpoint: endpoint,
		Message:  message,
	}
}
