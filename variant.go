package cvdsim

import (
	"fmt"
	"strings"
)

// Variant is a simulated vision condition.
type Variant uint8

// Supported variants, in sequence order.
const (
	Normal      Variant = iota // Unmodified
	Protanope                  // Red-cone deficiency
	Deuteranope                // Green-cone deficiency
	Tritanope                  // Blue-cone deficiency
)

var variantNames = [...]string{
	Normal:      "normal",
	Protanope:   "protanope",
	Deuteranope: "deuteranope",
	Tritanope:   "tritanope",
}

var variantLabels = [...]string{
	Normal:      "Normal Vision",
	Protanope:   "Protanopia",
	Deuteranope: "Deuteranopia",
	Tritanope:   "Tritanopia",
}

// Variants returns all variants in sequence order.
func Variants() []Variant {
	return []Variant{Normal, Protanope, Deuteranope, Tritanope}
}

// ParseVariant returns the variant with the given name, ignoring case.
func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Variant(v), nil
		}
	}
	return 0, &UnknownVariantError{Name: name}
}

// Valid reports if v is one of the supported variants.
func (v Variant) Valid() bool {
	return int(v) < len(variantNames)
}

func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
	return variantNames[v]
}

// Label is the caption burned into frames of this variant.
func (v Variant) Label() string {
	if !v.Valid() {
		return ""
	}
	return variantLabels[v]
}

// Matrix returns the color transform of this variant.
func (v Variant) Matrix() (Matrix, error) {
	if !v.Valid() {
		return Matrix{}, &UnknownVariantError{Name: v.String()}
	}
	return matrices[v], nil
}
