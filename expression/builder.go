package expression

import (
	"fmt"

	"github.com/pkg/errors"
)

// Builder derives the CWV retrieval expression for one (window size,
// band i, band j) triple. Every sub-expression is computed eagerly at
// construction; a Builder is immutable afterwards, so two builders
// constructed from identical inputs yield byte-identical output and a
// single builder is safe for concurrent use.
type Builder struct {
	windowSize int
	ti         string
	tj         string
	opts       Options

	adjacentPixels []Offset
	modifiersTi    []string
	modifiersTj    []string
	meanTi         SubExpression
	meanTj         SubExpression
	ratioJi        SubExpression
	symbolic       SubExpression
	inlined        SubExpression
}

// New constructs a Builder with the published coefficients and default
// placeholder names. ti and tj name the two thermal band maps, e.g. the
// Landsat 8 TIRS brightness temperature maps for B10 and B11.
func New(windowSize int, ti, tj string) (*Builder, error) {
	return NewWithOptions(windowSize, ti, tj, DefaultOptions())
}

// NewWithOptions constructs a Builder with explicit options. All input
// validation happens here; construction either yields a complete builder
// or fails without producing any expression.
func NewWithOptions(windowSize int, ti, tj string, opts Options) (*Builder, error) {
	if err := ValidateIdentifier(ti); err != nil {
		return nil, errors.Wrap(err, "band i")
	}
	if err := ValidateIdentifier(tj); err != nil {
		return nil, errors.Wrap(err, "band j")
	}

	adjacentPixels, err := AdjacentPixels(windowSize, opts.Geometry)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		windowSize:     windowSize,
		ti:             ti,
		tj:             tj,
		opts:           opts,
		adjacentPixels: adjacentPixels,
	}

	b.modifiersTi = Modifiers(ti, adjacentPixels)
	b.modifiersTj = Modifiers(tj, adjacentPixels)
	b.meanTi = MeanExpression(b.modifiersTi)
	b.meanTj = MeanExpression(b.modifiersTj)

	// Placeholder-named ratio, used for the symbolic output form.
	numerator, err := RatioNumerator(b.modifiersTi, b.modifiersTj, opts.MeanTi, opts.MeanTj)
	if err != nil {
		return nil, err
	}
	denominator := RatioDenominator(b.modifiersTi, opts.MeanTi)
	b.ratioJi = SubExpression(fmt.Sprintf("(%s) / (%s)", numerator, denominator))

	b.symbolic = b.assembleSymbolic()

	b.inlined, err = b.assembleInlined()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Expression returns the final CWV formula in the requested output mode.
func (b *Builder) Expression(mode OutputMode) (SubExpression, error) {
	switch mode {
	case ModeSymbolic:
		return b.symbolic, nil
	case ModeInlined:
		return b.inlined, nil
	default:
		return "", errors.Errorf("unrecognized output mode %q", mode)
	}
}

// WindowSize returns the configured window size n.
func (b *Builder) WindowSize() int { return b.windowSize }

// Offsets returns the derived window offsets in generation order.
func (b *Builder) Offsets() []Offset { return b.adjacentPixels }

// ModifiersTi returns the band i neighbor references in offset order.
func (b *Builder) ModifiersTi() []string { return b.modifiersTi }

// ModifiersTj returns the band j neighbor references in offset order.
func (b *Builder) ModifiersTj() []string { return b.modifiersTj }

// MeanTi returns the windowed mean sub-expression for band i.
func (b *Builder) MeanTi() SubExpression { return b.meanTi }

// MeanTj returns the windowed mean sub-expression for band j.
func (b *Builder) MeanTj() SubExpression { return b.meanTj }

// RatioJi returns the covariance/variance ratio sub-expression with the
// configured mean placeholder names.
func (b *Builder) RatioJi() SubExpression { return b.ratioJi }

func (b *Builder) String() string {
	return "Expression for r.mapcalc to determine column water vapor: " + string(b.inlined)
}

// assembleSymbolic wraps the ratio placeholder in the quadratic retrieval
// formula: (c0) + (c1) * (Rji) + (c2) * (Rji)^2.
func (b *Builder) assembleSymbolic() SubExpression {
	c := b.opts.Coefficients
	return SubExpression(fmt.Sprintf("(%s) + (%s) * (%s) + (%s) * (%s)^2",
		formatCoefficient(c.C0), formatCoefficient(c.C1), b.opts.Ratio,
		formatCoefficient(c.C2), b.opts.Ratio))
}

// assembleInlined emits the complete expression handed to the raster
// engine. eval() bindings are sequential, so the numerator and
// denominator reference the ti_mean/tj_mean names and each O(N) mean
// block appears exactly once.
func (b *Builder) assembleInlined() (SubExpression, error) {
	numerator, err := RatioNumerator(b.modifiersTi, b.modifiersTj, "ti_mean", "tj_mean")
	if err != nil {
		return "", err
	}
	denominator := RatioDenominator(b.modifiersTi, "ti_mean")

	c := b.opts.Coefficients
	return SubExpression(fmt.Sprintf(
		"eval(ti_mean = %s,\n"+
			"  tj_mean = %s,\n"+
			"  numerator = %s,\n"+
			"  denominator = %s,\n"+
			"  rji = numerator / denominator,\n"+
			"  %s + %s * rji + %s * rji^2)",
		b.meanTi, b.meanTj, numerator, denominator,
		formatCoefficient(c.C0), formatCoefficient(c.C1), formatCoefficient(c.C2))), nil
}

// Citation returns the publication describing the MSWCVR retrieval model.
func Citation() string {
	return "Huazhong Ren, Chen Du, Qiming Qin, Rongyuan Liu, " +
		"Jinjie Meng, and Jing Li. " +
		"\"Atmospheric Water Vapor Retrieval from Landsat 8 " +
		"and Its Validation.\" 3045-3048. IEEE, 2014."
}
