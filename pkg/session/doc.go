/*
Package session orchestrates grid sessions on top of a stateless engine and a
state store.

Every read-modify-write of a grid runs under a per-grid mutex (reference
counted, so idle grids hold no memory) and, when configured, a distributed lock
shared by all replicas.
*/
package session
