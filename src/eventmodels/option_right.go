package eventmodels

import "fmt"

type OptionRight string

func (r OptionRight) Validate() error {
	if r != CallRight && r != PutRight {
		return fmt.Errorf("OptionRight: Validate: invalid option right: %s", r)
	}

	return nil
}

const (
	CallRight OptionRight = "call"
	PutRight  OptionRight = "put"
)
