// Package harness runs C# source generators against in-memory input files
// and hands their output to the expect and verify packages.
//
// A generator sees the parsed input files, emits sources through
// Context.AddSource and may report diagnostics:
//
//	type dtoGenerator struct{}
//
//	func (dtoGenerator) Name() string { return "dto" }
//
//	func (dtoGenerator) Generate(ctx context.Context, gc *harness.Context) error {
//	    for _, f := range gc.Files() {
//	        // inspect f, build with codebuilder
//	    }
//	    return gc.AddSource("Dto.g.cs", ns.Build())
//	}
//
//	res, err := harness.NewPipeline().
//	    Add(dtoGenerator{}).
//	    WithSource("Order.cs", src).
//	    Run(ctx)
//	require.NoError(t, err)
//	res.Expect(t, "Dto.g.cs").HasClass("OrderDto")
//
// Generators run in the order they were added. Each one sees the inputs plus
// everything the generators before it produced. Shared collaborators travel
// in an explicit Services value rather than a process-wide registry.
package harness
