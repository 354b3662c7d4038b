package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ExitCodeHandledError indicates the application encountered an error that was already reported to the user, so
	// the top-level error printing logic should be skipped.
	ExitCodeHandledError = 3

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeAcquisitionError indicates that fetching the HDL sources of a core failed.
	ExitCodeAcquisitionError = 6

	// ExitCodeSynthesisError indicates that the external synthesis toolchain failed to convert a core. Note that an
	// error with error code ExitCodeGeneralError and ExitCodeSynthesisError are mutually exclusive errors.
	ExitCodeSynthesisError = 7
)
