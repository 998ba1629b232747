/*
Package arbor renders the members of live Go packages — functions, methods,
named types, source files, subpackages — as a tree with box-drawing
connectors, optionally annotated with signatures and doc-comment summaries.

It inspects type-checked packages (not source text), walking the object
graph depth-first while a containment oracle keeps the walk inside the
target's own namespace: no duplicate discovery through aliases, no descent
into unrelated libraries, no inheritance or composition cycles.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/arbor"
	)

	func main() {
		eng, err := arbor.New()
		if err != nil {
			log.Fatal(err)
		}

		// Render one tree per target to stdout.
		if err := eng.Render(context.Background(), "encoding/json", os.Stdout); err != nil {
			log.Fatal(err)
		}
	}

The traversal stream is also available directly via Engine.Search for
consumers that want the raw (path, last-sibling-vector) nodes, e.g. to
build their own presentation. Custom reflection backends can be injected
with WithReflector; see pkg/adapters/memory for an in-memory example.
*/
package arbor
