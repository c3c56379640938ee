// Package pkg provides the core libraries for signaltower city coverage planning.
//
// # Overview
//
// Signaltower places signal towers on the blocked cells of a city grid so
// that their square coverage windows reach as much of the city as possible,
// then finds the shortest relay chain between two towers. The pkg directory
// is organized into four main areas:
//
//  1. Domain: [city], [coverage], [relay]
//  2. Orchestration: [pipeline]
//  3. Output: [render/term], [render/cityplot], [render/nodelink], [io]
//  4. Infrastructure: [cache], [store], [config], [errors], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	seed + dimensions
//	         ↓
//	    [city] package (random grid with blocked cells)
//	         ↓
//	    [coverage] package (greedy tower selection)
//	         ↓
//	    [relay] package (range graph + BFS path)
//	         ↓
//	    text / JSON / PNG / SVG / DOT output
//
// # Quick Start
//
//	rng := rand.New(rand.NewPCG(42, 42))
//	g, _ := city.Generate(22, 30, 0.3, rng)
//	towers, _ := coverage.Optimize(g, 2)
//	path, _ := relay.FindPath(2, towers, towers[0], towers[len(towers)-1])
//	fmt.Print(term.Render(g, term.Options{}))
//
// For cached end-to-end runs use [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.DefaultOptions())
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/coverage/...   # Specific package
//	go test -run Example ./...   # Examples only
//
// [city]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/city
// [coverage]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/coverage
// [relay]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/relay
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/pipeline#Runner
// [render/term]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/render/term
// [render/cityplot]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/render/cityplot
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/signaltower/pkg/observability
package pkg
