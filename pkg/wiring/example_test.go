package wiring_test

import (
	"fmt"

	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

func ExampleAnalyze() {
	text := `
component bt HC05
component uno Arduino
component led Relay(2)
connect bt 2 to uno 0
connect bt 3 to uno 1
connect led 0 to uno 13
connect led 5 to uno 12
connect ghost 0 to uno 2
`
	a := wiring.Analyze(text, pins.Default())

	for _, l := range a.Map.Links() {
		fmt.Printf("%s -- %s\n", l.A, l.B)
	}
	for _, f := range a.Failures {
		fmt.Println(f.Code(), "on line", f.Line)
	}
	// Output:
	// bt:RXD -- uno:Digital 1
	// bt:TXD -- uno:Digital 0
	// led:Pin 0 -- uno:Digital 13
	// PIN_OUT_OF_RANGE on line 8
	// UNRESOLVED_REFERENCE on line 9
}
