//go:build !debug
// +build !debug

package spheretracer

func DebugLog(format string, args ...interface{}) {}

func DebugLogOnce(format string, args ...interface{}) {}
