package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/wiregraph/pkg/graph"
	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

func ExampleFromWiring() {
	a := wiring.Analyze("component s Sensor\ncomponent m Actuator\nconnect s 0 to m 0", pins.Default())
	g := graph.FromWiring(a.Map, a.Source)

	for _, n := range g.Nodes {
		fmt.Printf("%s (%s)\n", n.ID, n.Type)
	}
	for _, e := range g.Edges {
		fmt.Printf("%s -- %s\n", e.From, e.To)
	}
	// Output:
	// m:VCC (Actuator)
	// s:VCC (Sensor)
	// m:VCC -- s:VCC
}

func ExampleWriteDocument() {
	a := wiring.Analyze("component a Sensor\ncomponent b Sensor\nconnect a 2 to b 2", pins.Default())
	doc := graph.FromAnalysis(a)
	doc.Graph = graph.Graph{} // keep the example short

	if err := graph.WriteDocument(doc, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "components": [
	//     {
	//       "name": "a",
	//       "type": "Sensor",
	//       "pins": [],
	//       "line": 1
	//     },
	//     {
	//       "name": "b",
	//       "type": "Sensor",
	//       "pins": [],
	//       "line": 2
	//     }
	//   ],
	//   "connections": [
	//     {
	//       "from": {
	//         "component": "a",
	//         "pin": 2
	//       },
	//       "to": {
	//         "component": "b",
	//         "pin": 2
	//       },
	//       "line": 3
	//     }
	//   ],
	//   "wiring": {
	//     "a": {
	//       "DATA": {
	//         "component": "b",
	//         "pin": "DATA"
	//       }
	//     },
	//     "b": {
	//       "DATA": {
	//         "component": "a",
	//         "pin": "DATA"
	//       }
	//     }
	//   },
	//   "graph": {
	//     "nodes": null,
	//     "edges": null
	//   },
	//   "failures": [],
	//   "applied": 1,
	//   "skipped": 0
	// }
}
