//go:build !linux && !darwin && !windows

package platform

// Notify does nothing on this platform.
func Notify(string, string, Options) error { return nil }
