//go:build greydebug

package dynamo

import "fmt"

func Check(cond bool, msg string, args ...any) bool {
	if !cond {
		panic(fmt.Sprint(append([]any{msg}, args...)...))
	}
	return cond
}
