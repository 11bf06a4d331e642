package encoder

import (
	"filmpress/internal/capability"
)

// autoPriority is the fixed fallback order when no installed vendor matches
// an available encoder.
var autoPriority = []string{
	capability.EncoderNVENC,
	capability.EncoderAMF,
	capability.EncoderQSV,
}

// Select resolves a user choice and probed capabilities into a concrete
// hardware encoder ID. An empty result means CPU encoding.
//
// An explicit vendor choice whose encoder is unavailable falls back to CPU
// silently rather than failing the run.
func Select(choice Choice, caps capability.Capabilities) string {
	if choice == ChoiceCPU {
		return ""
	}

	if vendor, ok := choice.vendor(); ok {
		if id := capability.EncoderForVendor(vendor); caps.Has(id) {
			return id
		}
		return ""
	}

	// Auto: prefer the encoder matching an installed GPU.
	for _, vendor := range caps.Vendors() {
		if id := capability.EncoderForVendor(vendor); caps.Has(id) {
			return id
		}
	}
	for _, id := range autoPriority {
		if caps.Has(id) {
			return id
		}
	}
	return ""
}
