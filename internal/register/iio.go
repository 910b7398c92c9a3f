package register

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// IIOConverter reads a raw ADC code from a Linux industrial-IO sysfs
// attribute (for example
// /sys/bus/iio/devices/iio:device0/in_voltage0_raw). The kernel performs
// the conversion during the read, so Start captures the result and Busy is
// immediately false.
//
// No ADC access library is involved: industrial-IO raw attributes are plain
// sysfs text files.
type IIOConverter struct {
	path   string
	result uint16
}

// NewIIOConverter creates a converter reading the given sysfs attribute.
func NewIIOConverter(path string) *IIOConverter {
	return &IIOConverter{path: path}
}

// Start performs one conversion by reading the attribute. A read or parse
// failure leaves a zero raw code, which the voltage register reports as the
// sentinel.
func (c *IIOConverter) Start() {
	c.result = 0
	data, err := os.ReadFile(c.path)
	if err != nil {
		log.Printf("adc read %s: %v", c.path, err)
		return
	}
	raw, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 16)
	if err != nil {
		log.Printf("adc parse %s: %v", c.path, err)
		return
	}
	c.result = uint16(raw)
}

// Busy reports false: the sysfs read is synchronous.
func (c *IIOConverter) Busy() bool { return false }

// Result returns the raw code captured by Start.
func (c *IIOConverter) Result() uint16 { return c.result }
