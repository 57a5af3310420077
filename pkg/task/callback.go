package task

// callback is the single slot a Task invokes when it fires. Exactly one of
// the two variants below is bound at construction; there is no way to end
// up with both or neither.
type callback interface {
	invoke(arg any)
}

// plainFunc is the zero-argument callback variant. The stored argument is
// ignored.
type plainFunc func()

func (f plainFunc) invoke(any) { f() }

// argFunc is the variant that receives the task's stored opaque argument.
type argFunc func(any)

func (f argFunc) invoke(arg any) { f(arg) }
