// Package bridge adapts the flat legacy reader library to the host
// imaging framework: it filters and holds the candidate reader list,
// populates typed per-series metadata through the translator, and serves
// region plane reads with palette attachment.
package bridge

import "imgbridge/pkg/legacy"

// NativeFormats lists legacy reader identifiers whose formats the host
// framework already implements natively. Bridging them too would give
// format sniffing two competing matches for the same file, so they are
// excluded from the default candidate list.
var NativeFormats = []string{
	"APNG",
	"AVI",
	"BMP",
	"DICOM",
	"EPS",
	"FITS",
	"GIF",
	"ICS",
	"JPEG",
	"JPEG2000",
	"MNG",
	"NRRD",
	"PCX",
	"PICT",
	"PNG",
	"QuickTime",
	"Text",
	"TIFF",
	"Zip",
}

// BuildCandidates filters defaults against the excluded identifiers.
// A descriptor is dropped only on an exact name match — no case folding,
// no partial matches — and the survivors keep their relative order.
func BuildCandidates(defaults []legacy.Descriptor, excluded []string) []legacy.Descriptor {
	var out []legacy.Descriptor
	for _, d := range defaults {
		if nameExcluded(d.Name, excluded) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func nameExcluded(name string, excluded []string) bool {
	for _, e := range excluded {
		if e == name {
			return true
		}
	}
	return false
}
