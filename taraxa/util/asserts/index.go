package asserts

import "strings"

func Holds(condition bool, msg ...string) (ret bool) {
	if ret = condition; !ret {
		if len(msg) == 0 {
			panic("assertion error")
		}
		panic(strings.Join(msg, " "))
	}
	return
}

// Panics with the error description prefixed by msg. Meant for errors that can only
// come from a programming mistake, e.g. packing a log with mismatching arguments
func NoErr(err error, msg ...string) {
	if err == nil {
		return
	}
	if len(msg) == 0 {
		panic(err.Error())
	}
	panic(strings.Join(msg, " ") + ": " + err.Error())
}
