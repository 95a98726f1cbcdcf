package nodelink_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/render/nodelink"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

func ExampleToDOT() {
	a := wiring.Analyze("component s Sensor\ncomponent m Actuator\nconnect s 2 to m 2", pins.Default())

	fmt.Print(nodelink.ToDOT(a, nodelink.Options{Detailed: true}))
	// Output:
	// graph G {
	//   rankdir=LR;
	//   bgcolor="transparent";
	//   compound=true;
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.15,0.05"];
	//   ranksep=1.2;
	//   nodesep=0.3;
	//
	//   subgraph "cluster_m" {
	//     label="m (Actuator)";
	//     style="rounded";
	//     "m:CONTROL" [label="CONTROL [2]"];
	//   }
	//
	//   subgraph "cluster_s" {
	//     label="s (Sensor)";
	//     style="rounded";
	//     "s:DATA" [label="DATA [2]"];
	//   }
	//
	//   "m:CONTROL" -- "s:DATA";
	// }
}

func ExampleRenderSVG() {
	a := wiring.Analyze("component bt HC05\ncomponent uno Arduino\nconnect bt 2 to uno 0", pins.Default())
	dot := nodelink.ToDOT(a, nodelink.Options{})

	svg, err := nodelink.RenderSVG(context.Background(), dot)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz installation
}
