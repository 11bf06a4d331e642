package encoder

import (
	"fmt"
	"strings"

	"filmpress/internal/capability"
)

// Choice is the user-facing hardware encoder selection.
type Choice string

const (
	ChoiceAuto   Choice = "auto"
	ChoiceNVIDIA Choice = "nvidia"
	ChoiceIntel  Choice = "intel"
	ChoiceAMD    Choice = "amd"
	ChoiceCPU    Choice = "cpu"
)

// ParseChoice validates an encoder choice name.
func ParseChoice(value string) (Choice, error) {
	choice := Choice(strings.ToLower(strings.TrimSpace(value)))
	switch choice {
	case ChoiceAuto, ChoiceNVIDIA, ChoiceIntel, ChoiceAMD, ChoiceCPU:
		return choice, nil
	case "":
		return ChoiceAuto, nil
	default:
		return "", fmt.Errorf("unknown encoder choice %q", value)
	}
}

func (c Choice) vendor() (capability.Vendor, bool) {
	switch c {
	case ChoiceNVIDIA:
		return capability.VendorNVIDIA, true
	case ChoiceIntel:
		return capability.VendorIntel, true
	case ChoiceAMD:
		return capability.VendorAMD, true
	default:
		return "", false
	}
}
