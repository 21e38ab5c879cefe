package input

import (
	"strconv"
	"strings"

	"gavin/api/models/constants"
	"gavin/api/models/constants/chromosome"
	lineType "gavin/api/models/constants/line-type"
	"gavin/api/models/variants"
)

/*
	Pure, per-line classification. A Context carries the little bit
	of rolling state classification needs: whether a header row has
	been seen yet, which coordinates have already produced a variant
	(duplicate detection) and which annotations have been supplied
	so far (indel promotion).
*/

type Classification struct {
	Type    constants.LineType
	Variant *variants.VcfVariant // set for VCF and INDEL_NOCADD lines
	Cadd    *variants.CaddScore  // set for CADD lines
	Reason  string               // set for ERROR and SKIPPED lines
}

type Context struct {
	headerSeen   bool
	seenVariants map[string]bool
	caddScores   map[string]variants.CaddScore
}

func NewContext() *Context {
	return &Context{
		headerSeen:   false,
		seenVariants: map[string]bool{},
		caddScores:   map[string]variants.CaddScore{},
	}
}

func (ctx *Context) HeaderSeen() bool {
	return ctx.headerSeen
}

// Classify decides the category of a single raw line. First match
// wins: comment marker, variant record shape, annotation record
// shape, anything else is an error. Classifying the same line twice
// against the same context state yields the same category.
func (ctx *Context) Classify(line string) Classification {
	if line == "" {
		return Classification{Type: lineType.Skipped, Reason: "empty line"}
	}

	if strings.HasPrefix(line, "#") {
		// Gather the header row by seeking the CHROM string
		if !ctx.headerSeen && isHeaderRow(line) {
			ctx.headerSeen = true
		}
		return Classification{Type: lineType.Comment}
	}

	rowComponents := strings.Split(line, "\t")

	if variant, ok := parseVcfVariant(rowComponents); ok {
		if !chromosome.IsValidHumanChromosome(variant.Chrom) {
			return Classification{Type: lineType.Skipped, Reason: "unsupported chromosome " + variant.Chrom}
		}
		if ctx.seenVariants[variant.Key()] {
			return Classification{Type: lineType.Skipped, Reason: "duplicate variant"}
		}
		ctx.seenVariants[variant.Key()] = true

		if !variant.IsIndel() {
			return Classification{Type: lineType.Vcf, Variant: &variant}
		}

		// indels are only usable once a matching annotation has been supplied
		if _, annotated := ctx.caddScores[variant.Key()]; annotated {
			return Classification{Type: lineType.Vcf, Variant: &variant}
		}
		return Classification{Type: lineType.IndelNoCadd, Variant: &variant}
	}

	if cadd, ok := parseCaddScore(rowComponents); ok {
		ctx.caddScores[cadd.Key()] = cadd
		return Classification{Type: lineType.Cadd, Cadd: &cadd}
	}

	return Classification{Type: lineType.Error, Reason: "unparseable line"}
}

func isHeaderRow(line string) bool {
	lowered := strings.ToLower(line)
	return strings.HasPrefix(lowered, "#chrom")
}

// parseVcfVariant attempts the minimal variant-record shape:
// CHROM POS ID REF ALT with a positive integer position and
// plain allele strings.
func parseVcfVariant(rowComponents []string) (variants.VcfVariant, bool) {
	if len(rowComponents) < 5 {
		return variants.VcfVariant{}, false
	}

	chrom := normalizeChrom(rowComponents[0])
	if chrom == "" {
		return variants.VcfVariant{}, false
	}

	pos, err := strconv.ParseInt(strings.TrimSpace(rowComponents[1]), 10, 64)
	if err != nil || pos <= 0 {
		return variants.VcfVariant{}, false
	}

	id := strings.TrimSpace(rowComponents[2])
	if id == "" {
		id = "."
	}

	ref := strings.TrimSpace(rowComponents[3])
	alt := strings.TrimSpace(rowComponents[4])
	if !isAllele(ref) || !isAllele(alt) {
		return variants.VcfVariant{}, false
	}

	return variants.VcfVariant{Chrom: chrom, Pos: pos, Id: id, Ref: ref, Alt: alt}, true
}

// parseCaddScore attempts the annotation record shape:
// CHROM POS REF ALT RAWSCORE PHRED.
func parseCaddScore(rowComponents []string) (variants.CaddScore, bool) {
	if len(rowComponents) != 6 {
		return variants.CaddScore{}, false
	}

	chrom := normalizeChrom(rowComponents[0])
	if chrom == "" {
		return variants.CaddScore{}, false
	}

	pos, err := strconv.ParseInt(strings.TrimSpace(rowComponents[1]), 10, 64)
	if err != nil || pos <= 0 {
		return variants.CaddScore{}, false
	}

	ref := strings.TrimSpace(rowComponents[2])
	alt := strings.TrimSpace(rowComponents[3])
	if !isAllele(ref) || !isAllele(alt) {
		return variants.CaddScore{}, false
	}

	rawScore, rawErr := strconv.ParseFloat(strings.TrimSpace(rowComponents[4]), 64)
	phred, phredErr := strconv.ParseFloat(strings.TrimSpace(rowComponents[5]), 64)
	if rawErr != nil || phredErr != nil {
		return variants.CaddScore{}, false
	}

	return variants.CaddScore{Chrom: chrom, Pos: pos, Ref: ref, Alt: alt, RawScore: rawScore, Phred: phred}, true
}

func normalizeChrom(text string) string {
	// Strip out the optional "chr" prefix
	return strings.TrimSpace(strings.ReplaceAll(text, "chr", ""))
}

func isAllele(text string) bool {
	if text == "" {
		return false
	}
	for _, c := range strings.ToUpper(text) {
		switch c {
		case 'A', 'C', 'G', 'T', 'N':
			// valid base
		default:
			return false
		}
	}
	return true
}
