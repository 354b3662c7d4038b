package neorv32

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// gccFlags maps each supported CPU variant to the GCC machine flags matching the ISA extensions that variant
// enables.
//
//	                    /-------- Base ISA
//	                    |/------- Hardware Multiply + Divide
//	                    ||/----- Atomics
//	                    |||/---- Compressed ISA
//	                    ||||/--- Single-Precision Floating-Point
//	                    |||||/-- Double-Precision Floating-Point
//	                    imacfd
var gccFlags = map[string]string{
	"standard": "-march=rv32i -mabi=ilp32",
}

// UnknownVariantError is returned when a CPU variant id is not present in the variant table. It indicates a
// configuration error and is surfaced immediately at descriptor construction; there is no default variant to fall
// back to.
type UnknownVariantError struct {
	// Variant is the unknown variant id that was requested.
	Variant string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown neorv32 CPU variant '%s' (supported variants: %s)", e.Variant, strings.Join(SupportedVariants(), ", "))
}

// LookupVariant returns the GCC flag tokens registered for the given variant id, in flag order.
func LookupVariant(variant string) ([]string, error) {
	flags, ok := gccFlags[variant]
	if !ok {
		return nil, &UnknownVariantError{Variant: variant}
	}
	return strings.Fields(flags), nil
}

// SupportedVariants returns the supported variant ids in sorted order.
func SupportedVariants() []string {
	variants := maps.Keys(gccFlags)
	slices.Sort(variants)
	return variants
}
