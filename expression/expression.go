// Package expression generates r.mapcalc raster-algebra expressions for
// retrieving atmospheric column water vapor (CWV) from two thermal
// infrared brightness-temperature bands, based on the modified
// split-window covariance and variance ratio (MSWCVR) method.
//
// The package produces expression strings for an external raster engine;
// it does not read rasters or compute CWV values itself.
package expression

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SubExpression is a syntactically valid fragment of the raster engine's
// expression grammar. Fragments compose only by interpolation; the
// distinct type keeps them from being passed where a band name is
// expected.
type SubExpression string

// OutputMode defines the type of the formula-assembly specifier.
type OutputMode string

const (
	// ModeSymbolic assembles the final formula around a short ratio
	// placeholder, keeping the output readable for inspection.
	ModeSymbolic = "symbolic"

	// ModeInlined assembles the complete formula handed to the raster
	// engine, binding the means, numerator, denominator and ratio once
	// via the engine's eval() construct.
	ModeInlined = "inlined"
)

var (
	// ErrWindowSize reports a non-positive window size.
	ErrWindowSize = errors.New("window size must be a positive integer")

	// ErrBandIdentifier reports a band identifier the raster engine's
	// addressing syntax cannot accept.
	ErrBandIdentifier = errors.New("invalid band identifier")

	// ErrSequenceMismatch reports modifier sequences of unequal length
	// supplied for pairwise combination.
	ErrSequenceMismatch = errors.New("modifier sequences differ in length")

	// ErrGeometryMode reports an unrecognized window-generation mode.
	ErrGeometryMode = errors.New("unrecognized geometry mode")
)

// Fallback mean names used when a caller supplies no mean sub-expression
// for the ratio numerator or denominator.
const (
	defaultMeanTi = "Ti_mean"
	defaultMeanTj = "Tj_mean"
)

// Coefficients holds the MSWCVR regression constants, obtained from
// simulated data (946 cloud-free TIGR atmospheric profiles, MODTRAN 5.2).
type Coefficients struct {
	C0 float64
	C1 float64
	C2 float64
}

// DefaultCoefficients returns the published regression coefficients.
func DefaultCoefficients() Coefficients {
	return Coefficients{C0: -9.674, C1: 0.653, C2: 9.087}
}

// Options configures expression construction. Placeholder names appear in
// the symbolic output form only.
type Options struct {
	Coefficients Coefficients
	Geometry     GeometryMode
	MeanTi       string
	MeanTj       string
	Ratio        string
}

// DefaultOptions returns the published coefficients, the legacy window
// geometry and the conventional placeholder names.
func DefaultOptions() Options {
	return Options{
		Coefficients: DefaultCoefficients(),
		Geometry:     GeometryLegacy,
		MeanTi:       "Mean_Ti",
		MeanTj:       "Mean_Tj",
		Ratio:        "Ratio_ji",
	}
}

// Map names accepted by the engine without quoting: a leading letter or
// underscore, then letters, digits, underscores or dots, optionally
// qualified with @mapset.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*(@[A-Za-z0-9_.]+)?$`)

// ValidateIdentifier checks that a band identifier is usable in the
// raster engine's relative addressing syntax. Detection happens before
// any formula assembly so a bad name never reaches the engine.
func ValidateIdentifier(band string) error {
	if band == "" {
		return errors.Wrap(ErrBandIdentifier, "empty identifier")
	}
	if !identifierPattern.MatchString(band) {
		return errors.Wrapf(ErrBandIdentifier, "%q is not a legal map name", band)
	}
	return nil
}

// Modifiers returns the neighbor references for band tx, one per offset
// and in offset order: tx[-1,-1], tx[-1,0], ...
func Modifiers(tx string, offsets []Offset) []string {
	modifiers := make([]string, len(offsets))
	for i, pixel := range offsets {
		modifiers[i] = tx + pixel.String()
	}
	return modifiers
}

// MeanExpression folds neighbor references into the windowed arithmetic
// mean sub-expression (t1 + ... + tN) / N. Term order follows input
// order.
func MeanExpression(modifiers []string) SubExpression {
	return SubExpression(fmt.Sprintf("(%s) / %d", strings.Join(modifiers, " + "), len(modifiers)))
}

// RatioNumerator builds the covariance-like numerator of the ratio Rji:
// the sum over the window of (Ti - meanTi) * (Tj - meanTj), pairing the
// two modifier sequences in order. Empty mean arguments fall back to the
// Ti_mean / Tj_mean names.
func RatioNumerator(modifiersTi, modifiersTj []string, meanTi, meanTj string) (SubExpression, error) {
	if len(modifiersTi) != len(modifiersTj) {
		return "", errors.Wrapf(ErrSequenceMismatch,
			"%d ti terms vs %d tj terms", len(modifiersTi), len(modifiersTj))
	}
	if meanTi == "" {
		meanTi = defaultMeanTi
	}
	if meanTj == "" {
		meanTj = defaultMeanTj
	}

	terms := make([]string, len(modifiersTi))
	for i := range modifiersTi {
		terms[i] = fmt.Sprintf("(%s - %s) * (%s - %s)",
			modifiersTi[i], meanTi, modifiersTj[i], meanTj)
	}
	return SubExpression(strings.Join(terms, " + ")), nil
}

// RatioDenominator builds the variance-like denominator of the ratio Rji:
// the sum over the window of (Ti - meanTi)^2. Only the ti side
// contributes; that asymmetry is part of the published retrieval model.
func RatioDenominator(modifiersTi []string, meanTi string) SubExpression {
	if meanTi == "" {
		meanTi = defaultMeanTi
	}

	terms := make([]string, len(modifiersTi))
	for i, modifier := range modifiersTi {
		terms[i] = fmt.Sprintf("(%s - %s)^2", modifier, meanTi)
	}
	return SubExpression(strings.Join(terms, " + "))
}

// formatCoefficient renders a model constant the way it appears in the
// published formula, e.g. -9.674.
func formatCoefficient(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}
