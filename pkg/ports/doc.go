/*
Package ports defines the driven ports (interfaces) for the Flowgrid engine.

These interfaces decouple the grid engine from external implementations, allowing
it to work with various metadata sources, storage backends, and host runtimes.

# Key Interfaces

  - MetadataProvider: Describes the fields of a record object (e.g., from Loam or Memory).
  - StateStore: Responsible for persisting and loading grid State.
  - DistributedLocker: Provides distributed locking for concurrent grid access.
  - ActionDispatcher: Executes the side-effect requests emitted by the engine.
*/
package ports
