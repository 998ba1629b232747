/*
Package ports defines the driven ports (interfaces) for the arbor engine.

These interfaces decouple the traversal core from the reflection backend,
allowing the engine to walk real type-checked Go packages, an in-memory
graph for tests, or any future source of handles.

# Key Interfaces

  - Reflector: Resolves names to handles and enumerates their children.
  - Surveyor: Optional capability for the "*" survey-everything mode.
*/
package ports
