/*
Package render turns a traversal stream into printable lines.

The tree printer reconstructs box-drawing connectors from the stream's
per-depth last-sibling vectors in a single forward pass. It only ever looks
one item ahead, through a Peeker, because the upstream traversal is a
one-shot generator that may be expensive to re-run.
*/
package render
