package models

import "fmt"

// Lifetime represents how long the container reuses a registered instance.
// The numeric values match the InjectLifetime constants of the emitted marker.
type Lifetime int

const (
	LifetimeUnknown   Lifetime = 0x00
	LifetimeScoped    Lifetime = 0x01
	LifetimeSingleton Lifetime = 0x02
	LifetimeTransient Lifetime = 0x03
)

// Valid reports whether l is one of the three defined lifetimes
func (l Lifetime) Valid() bool {
	switch l {
	case LifetimeScoped, LifetimeSingleton, LifetimeTransient:
		return true
	default:
		return false
	}
}

// String returns the lifetime name, or its raw value for unknown lifetimes
func (l Lifetime) String() string {
	switch l {
	case LifetimeScoped:
		return "Scoped"
	case LifetimeSingleton:
		return "Singleton"
	case LifetimeTransient:
		return "Transient"
	default:
		return fmt.Sprintf("Lifetime(%#x)", int(l))
	}
}

// Severity represents the severity of a diagnostic
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// UnitKind distinguishes the two kinds of emitted source units
type UnitKind int

const (
	UnitMarker UnitKind = iota
	UnitRegistration
)

// String returns a human readable unit kind
func (k UnitKind) String() string {
	if k == UnitRegistration {
		return "registration"
	}
	return "marker"
}

// Diagnostic codes reported by a generation pass
const (
	CodeGenerationFailed  = "AUTODI01"
	CodeMarkerUnavailable = "AUTODI02"
	CodePackageErrors     = "AUTODI03"
)
