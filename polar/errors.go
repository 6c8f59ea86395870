package polar

import (
	"errors"
	"fmt"
)

// ErrIdMandatory is returned by Create when the record carries no id.
var ErrIdMandatory = errors.New("Id is mandatory")

type AlreadyExistsError struct {
	Id string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("Polar %s already exists.", e.Id)
}

type NotFoundError struct {
	Id string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Polar %s does not exist.", e.Id)
}
