package immune

// Loader reads gene signatures and expression matrices.
type Loader interface {
	// Crosswalk reads signature definitions and translates their genes to
	// expression matrix identifiers.
	Crosswalk() (Crosswalk, error)

	// Expression reads the normalized expression matrix of a cancer type.
	Expression(cancerLoc string) (Expression, error)

	// SaveCrosswalk writes the crosswalk to a file.
	SaveCrosswalk(path string, cw Crosswalk) error
}
