package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// VersionSize is the fixed wire length of a Version.
const VersionSize = 3

// Version is a major.minor.patch tag carried as three raw bytes.
type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
}

// ParseVersion parses "major.minor.patch" where every part is a uint8.
func ParseVersion(text string) (Version, error) {
	parts := strings.Split(text, ".")
	if len(parts) != VersionSize {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, text)
	}
	var raw [VersionSize]byte
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return Version{}, &VersionComponentError{Component: part}
		}
		raw[i] = uint8(v)
	}
	return VersionFromBytes(raw), nil
}

// MustParseVersion is ParseVersion for constants; it panics on bad input.
func MustParseVersion(text string) Version {
	v, err := ParseVersion(text)
	if err != nil {
		panic(err)
	}
	return v
}

// VersionFromBytes builds a Version from its wire form.
func VersionFromBytes(b [VersionSize]byte) Version {
	return Version{Major: b[0], Minor: b[1], Patch: b[2]}
}

// Bytes returns the wire form in major, minor, patch order.
func (v Version) Bytes() [VersionSize]byte {
	return [VersionSize]byte{v.Major, v.Minor, v.Patch}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText lets config decoders and flag values reuse ParseVersion.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
