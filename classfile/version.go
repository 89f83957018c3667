package classfile

import "fmt"

// ClassFileVersion is the major.minor pair at the start of a class file.
// Construction validates the major version against the range this reader
// understands, so a ClassFileVersion in hand is always a known one.
type ClassFileVersion struct {
	Major uint16
	Minor uint16
}

// Major versions of the class file format. 45 is JDK 1.1; every release
// since increments by one, up to 65 for Java 21.
const (
	minSupportedMajor uint16 = 45
	maxSupportedMajor uint16 = 65
)

func NewClassFileVersion(major, minor uint16) (ClassFileVersion, error) {
	if major < minSupportedMajor || major > maxSupportedMajor {
		return ClassFileVersion{}, &UnsupportedVersionError{Major: major, Minor: minor}
	}
	return ClassFileVersion{Major: major, Minor: minor}, nil
}

// JavaRelease names the Java platform release this version belongs to,
// e.g. "1.1" for major 45 or "11" for major 55.
func (v ClassFileVersion) JavaRelease() string {
	switch {
	case v.Major < 49:
		return fmt.Sprintf("1.%d", v.Major-44)
	default:
		return fmt.Sprintf("%d", v.Major-44)
	}
}

func (v ClassFileVersion) String() string {
	return fmt.Sprintf("%d.%d (Java %s)", v.Major, v.Minor, v.JavaRelease())
}
