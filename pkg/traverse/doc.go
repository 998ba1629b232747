/*
Package traverse implements the depth-first walk over a handle graph.

The walk is split into three collaborators:

  - The containment oracle (ShouldVisit, ShouldDescend): pure decision
    functions encoding the membership rules that prevent cycles, duplicate
    discovery, and escaping into unrelated libraries.
  - The child enumerator: merges reflection members with namespace-walk
    entries into one deduplicated, name-ordered, fully materialized slice,
    so that "is this the last sibling" is known before recursing.
  - The Traverser: a pre-order DFS generator yielding every accepted node
    together with its ancestor path and per-depth last-sibling vector.

Each rule in the oracle is an empirically-motivated edge case, not a clean
formula; treat every one as regression-test-worthy.
*/
package traverse
