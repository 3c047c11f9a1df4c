package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrNoFile           = errors.New("you must send a file to this endpoint")
	ErrFileType         = errors.New("this endpoint only supports files of the following type")
)
