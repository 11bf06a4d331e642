package capability

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var commandContext = exec.CommandContext

// Vendor identifies a GPU manufacturer.
type Vendor string

const (
	VendorNVIDIA Vendor = "nvidia"
	VendorIntel  Vendor = "intel"
	VendorAMD    Vendor = "amd"
)

// Hardware HEVC encoder identifiers as ffmpeg reports them.
const (
	EncoderNVENC = "hevc_nvenc"
	EncoderQSV   = "hevc_qsv"
	EncoderAMF   = "hevc_amf"
)

// EncoderForVendor maps a GPU vendor to its HEVC encoder.
func EncoderForVendor(vendor Vendor) string {
	switch vendor {
	case VendorNVIDIA:
		return EncoderNVENC
	case VendorIntel:
		return EncoderQSV
	case VendorAMD:
		return EncoderAMF
	default:
		return ""
	}
}

// Capabilities is the immutable per-run detection result.
type Capabilities struct {
	encoders map[string]bool
	vendors  []Vendor
}

// New builds a capability set from explicit values. Production code uses
// Detect; this constructor exists for wiring and tests.
func New(encoders []string, vendors []Vendor) Capabilities {
	available := make(map[string]bool, len(encoders))
	for _, id := range encoders {
		available[id] = true
	}
	return Capabilities{encoders: available, vendors: append([]Vendor(nil), vendors...)}
}

// Has reports whether the given hardware encoder is available.
func (c Capabilities) Has(encoderID string) bool {
	return c.encoders[encoderID]
}

// Encoders returns the available hardware encoder IDs in a stable order.
func (c Capabilities) Encoders() []string {
	available := make([]string, 0, len(c.encoders))
	for _, id := range []string{EncoderNVENC, EncoderAMF, EncoderQSV} {
		if c.encoders[id] {
			available = append(available, id)
		}
	}
	return available
}

// Vendors returns the detected installed GPU vendors.
func (c Capabilities) Vendors() []Vendor {
	return append([]Vendor(nil), c.vendors...)
}

// HasVendor reports whether the vendor's GPU was detected on the host.
func (c Capabilities) HasVendor(vendor Vendor) bool {
	for _, v := range c.vendors {
		if v == vendor {
			return true
		}
	}
	return false
}

// Detect queries ffmpeg for compiled-in hardware HEVC encoders and scans the
// host for installed GPUs. Any probe failure yields an empty capability set.
func Detect(ctx context.Context, ffmpegBinary string) Capabilities {
	caps := Capabilities{encoders: map[string]bool{}}

	if output, err := runEncoderQuery(ctx, ffmpegBinary); err == nil {
		caps.encoders = parseEncoderList(output)
	}
	caps.vendors = detectVendors()
	return caps
}

func runEncoderQuery(ctx context.Context, binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := commandContext(ctx, binary, "-hide_banner", "-encoders")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// parseEncoderList scans `ffmpeg -encoders` output for the HEVC hardware
// encoder names. The listing has one encoder per line after a header block:
//
//	V....D hevc_nvenc           NVIDIA NVENC hevc encoder (codec hevc)
func parseEncoderList(output string) map[string]bool {
	found := map[string]bool{}
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[1] {
		case EncoderNVENC, EncoderQSV, EncoderAMF:
			found[fields[1]] = true
		}
	}
	return found
}

// PCI vendor IDs as exposed by /sys/class/drm/*/device/vendor.
const (
	pciVendorNVIDIA = "0x10de"
	pciVendorIntel  = "0x8086"
	pciVendorAMD    = "0x1002"
)

func detectVendors() []Vendor {
	seen := map[Vendor]bool{}
	order := make([]Vendor, 0, 3)
	record := func(v Vendor) {
		if !seen[v] {
			seen[v] = true
			order = append(order, v)
		}
	}

	entries, err := filepath.Glob("/sys/class/drm/card*/device/vendor")
	if err == nil {
		for _, entry := range entries {
			data, readErr := os.ReadFile(entry)
			if readErr != nil {
				continue
			}
			if vendor, ok := vendorFromPCIID(strings.TrimSpace(string(data))); ok {
				record(vendor)
			}
		}
	}

	// nvidia-smi presence is a secondary signal for NVIDIA on hosts where
	// the kernel driver does not register a drm card entry.
	if !seen[VendorNVIDIA] {
		if _, err := exec.LookPath("nvidia-smi"); err == nil {
			record(VendorNVIDIA)
		}
	}

	return order
}

func vendorFromPCIID(id string) (Vendor, bool) {
	switch strings.ToLower(id) {
	case pciVendorNVIDIA:
		return VendorNVIDIA, true
	case pciVendorIntel:
		return VendorIntel, true
	case pciVendorAMD:
		return VendorAMD, true
	default:
		return "", false
	}
}
