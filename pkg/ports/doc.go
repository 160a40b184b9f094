/*
Package ports defines the driven ports (interfaces) of the diagnosis engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to persist its tree in a plain file, an embedded database or a remote
key-value store.

# Key Interfaces

  - TreeStore: loads and overwrites the whole tree.

RunTreeStoreContract is shared by the adapter test suites.
*/
package ports
