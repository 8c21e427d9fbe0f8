/*
Package domain contains the core domain models of the flowgrid engine.

It defines the values that flow through the grid state engine: raw records,
column descriptors, the configuration supplied by the workflow builder, and the
immutable per-cycle state snapshot. This package is kept pure and free of I/O,
following the same Hexagonal Architecture split used by the adapters.

# Key Entities

  - Record: one opaque data row, identified by its "Id" field.
  - ColumnDescriptor: a resolved, displayable field (label, type, editability, relationship).
  - Selection and EditLedger: immutable value types; every mutation returns a new value.
  - State: the full snapshot {records, columns, selection, edits, search, sort, cursor}.
  - Event: a single user interaction applied to a State.
  - View and Outputs: the projected row/cell model and the workflow-facing results.
  - ActionRequest: a side-effect the engine asks the host to perform (navigate, focus).
*/
package domain
