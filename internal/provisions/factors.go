// Package provisions holds the AISC 360 / CSA S16 constants used by the
// capacity engines: resistance factors, code limits and effective length
// factors, plus factored load combinations.
package provisions

// Resistance factors
const (
	PhiCompression = 0.90 // AISC E1 / CSA S16 13.3
	PhiFlexure     = 0.90 // AISC F1
	PhiBoltShear   = 0.80 // CSA S16 13.11.2 (φb)
	PhiBearing     = 0.80 // CSA S16 13.12.1.2 (φbr)
	PhiRupture     = 0.75 // CSA S16 13.11 / AISC J4.3 (φu)
	PhiPlate       = 0.90 // AISC Design Guide 1 base plate yielding
)

// Column buckling (AISC E3)
const (
	SlendernessLimit      = 200.0 // recommended KL/r maximum, E2
	InelasticLimitCoeff   = 4.71  // KL/r ≤ 4.71√(E/Fy) is inelastic
	InelasticBase         = 0.658 // Fcr = 0.658^(Fy/Fe)·Fy
	ElasticReductionCoeff = 0.877 // Fcr = 0.877·Fe
)

// Lateral-torsional buckling (AISC F2)
const (
	LpCoeff          = 1.76  // Lp = 1.76·ry·√(E/Fy)
	LrCoeff          = 1.95  // F2-6
	LrStressRatio    = 0.7   // 0.7·Fy residual stress allowance
	LrRootCoeff      = 6.76  // F2-6
	ElasticLTBCoeff  = 0.078 // F2-4
	WeakAxisShapeCap = 1.6   // F6-1, Mn ≤ 1.6·Fy·Sy
	DoublySymmetricC = 1.0   // c for doubly symmetric I-shapes
)

// Bolted connections (CSA S16 13.11, 13.12)
const (
	BoltShearCoeff     = 0.60 // threads excluded
	BearingCoeff       = 3.0
	BlockShearCoeff    = 0.6
	HoleClearance      = 2.0 // mm, standard hole = d + 2
	DefaultUbs         = 1.0
	ConcreteBearingMax = 0.85 // 0.85·φc·f'c
)
