package prediction

import "fmt"

type CoverageError struct {
	Populated int
	Expected  int
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("only %d of %d slots populated", e.Populated, e.Expected)
}
