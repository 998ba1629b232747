package arbor_test

import (
	"context"
	"log"
	"os"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
)

// ExampleEngine_Render demonstrates rendering a hand-built handle graph with
// the in-memory reflector. This is useful for tests, embedded scenarios, or
// when no real package graph is available.
func ExampleEngine_Render() {
	// 1. Define the graph: a package with a function and a type.
	garden := domain.Handle{
		ID: "pkg:garden", Name: "garden", Kind: domain.KindPackage,
		Origin: "/src/garden", PkgPath: "garden",
	}
	grow := domain.Handle{
		ID: "func:garden.Grow", Name: "Grow", Kind: domain.KindFunc,
		Origin: "/src/garden/g.go", PkgPath: "garden",
	}
	tree := domain.Handle{
		ID: "class:garden.Tree", Name: "Tree", Kind: domain.KindClass,
		Origin: "/src/garden/t.go", PkgPath: "garden",
	}
	plant := domain.Handle{
		ID: "method:garden.Tree.Plant", Name: "Plant", Kind: domain.KindMethod,
		Origin: "/src/garden/t.go", PkgPath: "garden",
	}

	refl := memory.New()
	refl.Add(garden)
	refl.AddMember(garden, "Grow", grow)
	refl.AddMember(garden, "Tree", tree)
	refl.AddMember(tree, "Plant", plant)

	// 2. Initialize the engine with the custom reflector. Names only, no
	// signature or docstring detail.
	engine, err := arbor.New(
		arbor.WithReflector(refl),
		arbor.WithConfig(domain.Config{Level: 999, Width: 80}),
	)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Render the tree.
	if err := engine.Render(context.Background(), "garden", os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Output:
	// garden
	// ├── Grow
	// └── Tree
	//     └── Plant
}
