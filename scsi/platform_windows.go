//go:build windows

package scsi

// NewPlatformTransport returns the Transport implementation for the
// current platform.
func NewPlatformTransport() Transport {
	return NewWindowsTransport()
}
