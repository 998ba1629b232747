/*
Package domain contains the core domain models for the arbor engine.

It defines the fundamental entities of the documentation walk: Handles
(references to live program entities), Nodes (a handle together with its
ancestor path), and the traversal Configuration. This package is kept pure
and free of external dependencies like I/O or reflection backends, following
Hexagonal Architecture principles.

# Key Entities

  - Handle: An opaque reference to a package, source file, named type,
    function, or method, carrying just enough metadata for membership tests.
  - Node: One emitted traversal step: the full root-to-current path plus the
    per-depth "is last sibling" vector that drives tree connectors.
  - Config: The immutable knobs for one traversal and render pass.
*/
package domain
