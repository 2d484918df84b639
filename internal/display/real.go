//go:build linux

package display

import (
	"fmt"

	"github.com/davecheney/i2c"
	"tinygo.org/x/drivers/ssd1306"
)

// Default I2C wiring for the panel.
const (
	DefaultBus     = 1
	DefaultAddress = 0x3C
)

// busAdapter exposes a davecheney/i2c bus through the drivers.I2C interface
// the ssd1306 driver expects. The device address is bound at open time, so
// the addr argument is ignored.
type busAdapter struct {
	bus *i2c.I2C
}

func (b *busAdapter) Tx(addr uint16, w, r []byte) error {
	if len(w) > 0 {
		if _, err := b.bus.Write(w); err != nil {
			return err
		}
	}
	if len(r) > 0 {
		if _, err := b.bus.Read(r); err != nil {
			return err
		}
	}
	return nil
}

// RealDevice drives an SSD1306 panel over the Linux I2C character device.
type RealDevice struct {
	bus *i2c.I2C
	dev *ssd1306.Device
}

// NewRealDevice opens the I2C bus and initializes the panel.
func NewRealDevice(busNum int, addr uint8) (*RealDevice, error) {
	bus, err := i2c.New(addr, busNum)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %d: %w", busNum, err)
	}

	dev := ssd1306.NewI2C(&busAdapter{bus: bus})
	dev.Configure(ssd1306.Config{
		Width:    Width,
		Height:   Height,
		Address:  uint16(addr),
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearBuffer()
	dev.ClearDisplay()

	return &RealDevice{bus: bus, dev: dev}, nil
}

// Render transfers the frame to the panel. The panel is mounted upside down
// in the enclosure, so the frame is rotated 180 degrees during transfer.
func (d *RealDevice) Render(f *Frame) error {
	for y := int16(0); y < Height; y++ {
		for x := int16(0); x < Width; x++ {
			c := Off
			if f.Pixel(x, y) {
				c = On
			}
			d.dev.SetPixel(Width-1-x, Height-1-y, c)
		}
	}
	if err := d.dev.Display(); err != nil {
		return fmt.Errorf("ssd1306 display: %w", err)
	}
	return nil
}

// Clear blanks the panel.
func (d *RealDevice) Clear() error {
	d.dev.ClearBuffer()
	d.dev.ClearDisplay()
	return nil
}

// Close blanks the panel and releases the bus.
func (d *RealDevice) Close() error {
	d.dev.ClearBuffer()
	d.dev.ClearDisplay()
	if err := d.bus.Close(); err != nil {
		return fmt.Errorf("close i2c bus: %w", err)
	}
	return nil
}
