package line

// Transition is one molecular spectral line as supplied by the data
// layer: rest position, reference intensity, broadening and shift
// coefficients, and optional beyond-Voigt extension parameters.
//
// All spectroscopic quantities follow HITRAN conventions: positions
// and energies in cm⁻¹, intensities in cm⁻¹/(molecule·cm⁻²) at the
// reference temperature, broadening coefficients in cm⁻¹/atm.
// Transitions are treated as immutable inputs.
type Transition struct {
	Isotopologue string // identifier understood by the metadata and partition providers

	Nu        float64 // rest wavenumber ν₀, cm⁻¹, > 0
	Sw        float64 // line intensity at TRef, ≥ 0
	A         float64 // Einstein-A coefficient, s⁻¹
	GammaAir  float64 // air-broadened HWHM, cm⁻¹/atm
	GammaSelf float64 // self-broadened HWHM, cm⁻¹/atm
	NAir      float64 // temperature exponent of the Lorentz width
	DeltaAir  float64 // air pressure shift, cm⁻¹/atm
	NDelta    float64 // temperature exponent of the shift, 0 when unknown
	Elower    float64 // lower-state energy E″, cm⁻¹, ≥ 0
	Gp        float64 // upper statistical weight g′
	Gpp       float64 // lower statistical weight g″

	// Extension carries speed-dependence, narrowing, and line-mixing
	// parameters for the SDV and HT profiles. Nil means the line has
	// only Voigt parameters and the beyond-Voigt profiles degrade to
	// plain Voigt for it.
	Extension *Extension
}

// Extension holds the beyond-Voigt parameters of a transition.
type Extension struct {
	Gamma2 float64 // speed-dependent width component, cm⁻¹/atm
	Delta2 float64 // speed-dependent shift component, cm⁻¹/atm
	NuVC   float64 // Dicke narrowing (velocity-changing collision) rate, cm⁻¹/atm
	Mixing float64 // first-order Rosenkranz line-mixing coefficient, 1/atm
}

// Meta is the per-isotopologue metadata needed by the resolver.
type Meta struct {
	MolarMass float64 // g/mol
	Abundance float64 // natural terrestrial abundance, fraction
}
