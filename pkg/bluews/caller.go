package bluews

import (
	"runtime"
	"strings"
)

// CallerAction returns the bare name of a function on the call stack: skip 0
// is the function calling CallerAction, 1 its caller, and so on. Package path,
// receiver, type parameters and closure suffixes are stripped, so a call from
// (*Client).Login, or from a closure inside it, yields "Login".
//
// It returns "" when the stack is not deep enough.
func CallerAction(skip int) string {
	pcs := make([]uintptr, 1)
	if runtime.Callers(skip+2, pcs) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	return actionName(frame.Function)
}

func actionName(function string) string {
	if i := strings.LastIndex(function, "/"); i >= 0 {
		function = function[i+1:]
	}
	function = strings.ReplaceAll(function, "[...]", "")

	parts := strings.Split(function, ".")
	for len(parts) > 2 && isClosureName(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return parts[len(parts)-1]
}

// isClosureName matches the compiler generated names of function literals:
// "func1", "gowrap2" or a bare nesting index such as "3".
func isClosureName(s string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			s = rest
			break
		}
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
