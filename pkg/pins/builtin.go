package pins

import "fmt"

// Built-in component types.
const (
	TypeHC05     = "HC05"
	TypeArduino  = "Arduino"
	TypeSensor   = "Sensor"
	TypeActuator = "Actuator"
)

// Builtin returns the built-in pin tables.
func Builtin() []Table {
	arduino := make([]string, 0, 20)
	for i := 0; i < 14; i++ {
		arduino = append(arduino, fmt.Sprintf("Digital %d", i))
	}
	for i := 0; i < 6; i++ {
		arduino = append(arduino, fmt.Sprintf("Analog %d", i))
	}

	return []Table{
		{Type: TypeHC05, Pins: []string{"VCC", "GND", "TXD", "RXD", "STATE"}},
		{Type: TypeArduino, Pins: arduino},
		{Type: TypeSensor, Pins: []string{"VCC", "GND", "DATA"}},
		{Type: TypeActuator, Pins: []string{"VCC", "GND", "CONTROL"}},
	}
}

var defaultRegistry = func() *Registry {
	r, err := NewRegistry(Builtin()...)
	if err != nil {
		panic(err)
	}
	return r
}()

// Default returns the shared registry of built-in tables. It is read-only.
func Default() *Registry {
	return defaultRegistry
}
