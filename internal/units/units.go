package units

// Consistent unit system: meters, seconds, kilonewtons.
// Every quantity in the tool is expressed in these base units;
// the derived constants convert at the boundaries (input scaling,
// plot axes, reports).

const (
	// Base units
	M  = 1.0 // Meter
	S  = 1.0 // Second
	KN = 1.0 // Kilonewton

	// Derived units
	Gravity = 9.81 * M / (S * S) // Standard gravity (m/s²)
	Cm      = 1e-2 * M           // Centimeter
	Mm      = 1e-3 * M           // Millimeter
	Ton     = KN * S * S / M     // Metric ton (mass unit consistent with kN and m)
)
