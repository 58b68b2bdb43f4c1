package user

import "errors"

var (
	ErrDuplicateExternalID = errors.New("user external id already exists")
	ErrDuplicateName       = errors.New("user name already exists")
)
