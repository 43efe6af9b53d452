//go:build !debug
// +build !debug

package heatsim

func DebugLog(format string, args ...interface{})     {}
func DebugLogOnce(format string, args ...interface{}) {}
