package parser

import (
	"strconv"
	"strings"
)

// OASVersion represents each canonical version of the OpenAPI Specification
// supported by this library.
type OASVersion int

const (
	// Unknown represents an unknown or invalid OAS version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion300 OpenAPI Specification Version 3.0.0
	OASVersion300
	// OASVersion301 OpenAPI Specification Version 3.0.1
	OASVersion301
	// OASVersion302 OpenAPI Specification Version 3.0.2
	OASVersion302
	// OASVersion303 OpenAPI Specification Version 3.0.3
	OASVersion303
	// OASVersion304 OpenAPI Specification Version 3.0.4
	OASVersion304
	// OASVersion310 OpenAPI Specification Version 3.1.0
	OASVersion310
	// OASVersion311 OpenAPI Specification Version 3.1.1
	OASVersion311
)

// Series identifies one of the three supported dialects. Each dialect has
// its own root document shape and validation rule nuances; patch releases
// within a series share both.
type Series int

const (
	// SeriesUnknown is the zero value for unrecognized versions
	SeriesUnknown Series = iota
	// Series20 is the OAS 2.0 (Swagger) dialect
	Series20
	// Series30 is the OAS 3.0.x dialect
	Series30
	// Series31 is the OAS 3.1.x dialect
	Series31
)

// String returns the dialect name, e.g. "2.0", "3.0", "3.1".
func (s Series) String() string {
	switch s {
	case Series20:
		return "2.0"
	case Series30:
		return "3.0"
	case Series31:
		return "3.1"
	default:
		return "unknown"
	}
}

var versionToString = map[OASVersion]string{
	OASVersion20:  "2.0",
	OASVersion300: "3.0.0",
	OASVersion301: "3.0.1",
	OASVersion302: "3.0.2",
	OASVersion303: "3.0.3",
	OASVersion304: "3.0.4",
	OASVersion310: "3.1.0",
	OASVersion311: "3.1.1",
}

var stringToVersion = func() map[string]OASVersion {
	m := make(map[string]OASVersion, len(versionToString))
	for k, v := range versionToString {
		m[v] = k
	}
	return m
}()

func (v OASVersion) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// IsValid returns true if this is a supported version
func (v OASVersion) IsValid() bool {
	_, ok := versionToString[v]
	return ok
}

// Series returns the dialect this version belongs to.
func (v OASVersion) Series() Series {
	switch v {
	case OASVersion20:
		return Series20
	case OASVersion300, OASVersion301, OASVersion302, OASVersion303, OASVersion304:
		return Series30
	case OASVersion310, OASVersion311:
		return Series31
	default:
		return SeriesUnknown
	}
}

// seriesMax maps a dialect to its highest known version, used to map
// future patch releases onto the closest supported version.
var seriesMax = map[Series]OASVersion{
	Series30: OASVersion304,
	Series31: OASVersion311,
}

// ParseVersion attempts to parse the string s into an OASVersion, and
// returns false if it is not a supported version. Future patch releases
// within a known series map to the closest version that does not exceed
// them (e.g. "3.0.9" maps to 3.0.4). Pre-release suffixes are stripped
// ("3.1.0-rc1" parses as 3.1.0).
func ParseVersion(s string) (OASVersion, bool) {
	if v, ok := stringToVersion[s]; ok {
		return v, true
	}

	major, minor, patch, ok := splitVersion(s)
	if !ok {
		return Unknown, false
	}

	if major == 2 {
		if minor == 0 {
			return OASVersion20, true
		}
		return Unknown, false
	}
	if major != 3 {
		return Unknown, false
	}

	var series Series
	switch minor {
	case 0:
		series = Series30
	case 1:
		series = Series31
	default:
		return Unknown, false
	}

	// Walk down from the requested patch to the nearest known version.
	base := OASVersion300
	if series == Series31 {
		base = OASVersion310
	}
	for p := patch; p >= 0; p-- {
		v := base + OASVersion(p)
		if v <= seriesMax[series] && v.IsValid() {
			return v, true
		}
	}
	return seriesMax[series], true
}

// splitVersion parses "major.minor" or "major.minor.patch" with an
// optional pre-release suffix after '-' or '+'.
func splitVersion(s string) (major, minor, patch int, ok bool) {
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false
	}

	var err error
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if len(parts) == 3 {
		if patch, err = strconv.Atoi(parts[2]); err != nil {
			return 0, 0, 0, false
		}
	}
	return major, minor, patch, true
}
