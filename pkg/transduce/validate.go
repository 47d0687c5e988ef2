package transduce

import (
	"github.com/justinelliottcobb/Orlando/pkg/common/validation"
)

const module = "transduce"

func mustFunc(field string, fn interface{}) {
	if err := validation.ValidateNotNil(module, field, fn); err != nil {
		panic(err)
	}
}

func must[In, Out any](t Transducer[In, Out], err error) Transducer[In, Out] {
	if err != nil {
		panic(err)
	}
	return t
}
