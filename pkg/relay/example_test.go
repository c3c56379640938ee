package relay_test

import (
	"fmt"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/relay"
)

func ExampleFindPath() {
	towers := []city.Coord{city.C(0, 0), city.C(3, 3)}

	for _, radius := range []int{1, 0} {
		path, err := relay.FindPath(radius, towers, towers[0], towers[1])
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("radius %d: %v\n", radius, path)
	}
	// Output:
	// radius 1: [(0,0) (3,3)]
	// radius 0: []
}

func ExampleRangeGraph_BFS() {
	g, _ := relay.NewRangeGraph(1, []city.Coord{
		city.C(0, 0), city.C(0, 3), city.C(0, 6), city.C(10, 10),
	})
	res, _ := g.BFS(city.C(0, 0))
	for _, t := range res.Order {
		fmt.Println(t, res.Depth[t])
	}
	fmt.Println("reached (10,10):", res.Reached(city.C(10, 10)))
	// Output:
	// (0,0) 0
	// (0,3) 1
	// (0,6) 2
	// reached (10,10): false
}
