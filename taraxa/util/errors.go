package util

import "errors"

type ErrorString string

func (this ErrorString) Error() string {
	return string(this)
}

// Results of different calls can be compared by value
func ToErrorString(err error) ErrorString {
	if err == nil {
		return ""
	}
	var err_str ErrorString
	if errors.As(err, &err_str) {
		return err_str
	}
	return ErrorString(err.Error())
}
