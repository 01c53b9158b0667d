package layout

// This file defines unit conversion helpers and the physical constants the
// layout policies share. The engine itself computes in PDF points; renderers
// that work in millimeters convert at their boundary.

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Page and card constants. These are interchange values and must not drift:
// front/back registration and cut guides depend on them being identical
// across runs.
const (
	// A4 in points, portrait. Landscape swaps the two.
	A4WidthPt  = 595.0
	A4HeightPt = 842.0

	// A7 single-card page in points, portrait only.
	A7WidthPt  = 210.0
	A7HeightPt = 298.0

	// TileAspectRatio is width/height for scaled layouts (matches A7).
	TileAspectRatio = A7WidthPt / A7HeightPt

	// Standard poker card dimensions and bleed for the cut-ready policy.
	CutCardWidthMm  = 63.5
	CutCardHeightMm = 88.5
	CutBleedMm      = 1.5
)

// PtFromMm converts millimeters to points.
func PtFromMm(mm float64) float64 { return mm * MmToPt }

// MmFromPt converts points to millimeters.
func MmFromPt(pt float64) float64 { return pt * PtToMm }
