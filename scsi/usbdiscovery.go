package scsi

import (
	"fmt"

	"github.com/google/gousb"
)

// PentaxVendorID is the USB vendor ID Pentax DSLRs enumerate under.
const PentaxVendorID gousb.ID = 0x0a17

// USBDevice describes a discovered camera's USB identity. The block
// device path it maps to is resolved separately (by the OS's own
// device-node enumeration), matching the real driver's split between USB
// enumeration and SCSI pass-through addressing.
type USBDevice struct {
	VendorID  gousb.ID
	ProductID gousb.ID
	Bus       int
	Address   int
}

// DiscoverCameras enumerates connected USB devices and returns those
// matching PentaxVendorID, using github.com/google/gousb the same way the
// teacher's usbtmc package opens its USB Test and Measurement Class
// devices.
func DiscoverCameras() ([]USBDevice, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var found []USBDevice
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if desc.Vendor == PentaxVendorID {
			found = append(found, USBDevice{
				VendorID:  desc.Vendor,
				ProductID: desc.Product,
				Bus:       desc.Bus,
				Address:   desc.Address,
			})
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("scsi: usb enumeration: %w", err)
	}
	for _, d := range devs {
		d.Close()
	}

	return found, nil
}
