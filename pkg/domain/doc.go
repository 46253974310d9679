/*
Package domain contains the core types shared by the history engine and its collaborators.

It is kept free of I/O and persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - State: An immutable snapshot of one object, tagged with its identity and source descriptor.
  - Undoable: A mutable object that can save and load its State and carries the dirty/just-created flags.
  - Tracker: An embeddable implementation of those flags.
  - HistoryEvent / LifecycleHooks: Observability callbacks fired by the history engine.
*/
package domain
