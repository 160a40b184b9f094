/*
Package domain contains the core domain models of the diagnosis tree.

It defines the tree itself, the cursor a session moves through it and the errors
shared by the engine, the codec and the stores. This package is kept pure and free
of I/O or persistence.

# Key Entities

  - Node: a question (two branches) or a diagnosis (no branches).
  - Cursor: the immutable session position (root, current node, parent, edge, phase).
  - Lesson: the correction a user supplies after rejecting a diagnosis.
  - LifecycleHooks: observability callbacks fired by the engine.
*/
package domain
