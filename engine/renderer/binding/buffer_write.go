package binding

// BufferWrite describes a single GPU buffer write operation targeting a specific
// binding index on a Binding at a given byte offset.
type BufferWrite struct {
	Target  Binding
	Binding int
	Offset  uint64
	Data    []byte
}
