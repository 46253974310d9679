/*
Package ports defines the driven ports (interfaces) around the history engine.

These interfaces decouple the undo/redo core from the objects it tracks and from
the storage their content originates in.

# Key Interfaces

  - Factory: Creates, looks up, enumerates and deletes undoable objects by identity.
  - Library: Resolves source descriptors into content (e.g., from Memory, a YAML file or Redis).

The package also exports contract suites (RunFactoryContract, RunLibraryContract)
that adapters run from their own tests.
*/
package ports
