package log

// A Context decorates every log line with additional fields, such as the
// current program counter of the processor.
type Context interface {
	AddLogContext(z *EntryZ)
}

var contexts []Context

// AddContext registers c. Contexts are process-wide: register them only from
// the goroutine that owns the emulation.
func AddContext(c Context) {
	contexts = append(contexts, c)
}

// RemoveContext unregisters c, if present.
func RemoveContext(c Context) {
	for i := range contexts {
		if contexts[i] == c {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}
