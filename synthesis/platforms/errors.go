package platforms

// SynthesisError describes a fatal failure reported by an external synthesis toolchain. It is never retried
// automatically: a broken toolchain install will not self-heal, so the failure is propagated to abort the enclosing
// integration.
type SynthesisError struct {
	// Reason is a short description of what failed.
	Reason string

	// Hint suggests a remediation for the user.
	Hint string

	// Output is the combined stdout/stderr captured from the toolchain process, if any.
	Output string
}

func (e *SynthesisError) Error() string {
	msg := e.Reason
	if e.Hint != "" {
		msg += ", " + e.Hint
	}
	if e.Output != "" {
		msg += "\n\nCommand Output:\n" + e.Output
	}
	return msg
}
