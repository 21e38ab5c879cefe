package input

import (
	"testing"

	lineType "gavin/api/models/constants/line-type"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCommentAndHeaderLines(t *testing.T) {
	ctx := NewContext()

	assert.Equal(t, lineType.Comment, ctx.Classify("##fileformat=VCFv4.2").Type)
	assert.False(t, ctx.HeaderSeen())

	assert.Equal(t, lineType.Comment, ctx.Classify("#CHROM\tPOS\tID\tREF\tALT").Type)
	assert.True(t, ctx.HeaderSeen())
}

func TestClassifyEmptyLine(t *testing.T) {
	ctx := NewContext()

	classification := ctx.Classify("")
	assert.Equal(t, lineType.Skipped, classification.Type)
	assert.NotEmpty(t, classification.Reason)
}

func TestClassifyPlainVariant(t *testing.T) {
	ctx := NewContext()

	classification := ctx.Classify("1\t12345\trs001\tA\tG")
	assert.Equal(t, lineType.Vcf, classification.Type)
	assert.NotNil(t, classification.Variant)
	assert.Equal(t, "1", classification.Variant.Chrom)
	assert.Equal(t, int64(12345), classification.Variant.Pos)
	assert.Equal(t, "rs001", classification.Variant.Id)
}

func TestClassifyStripsChrPrefix(t *testing.T) {
	ctx := NewContext()

	classification := ctx.Classify("chr2\t5500\t.\tC\tT")
	assert.Equal(t, lineType.Vcf, classification.Type)
	assert.Equal(t, "2", classification.Variant.Chrom)
}

func TestClassifyMissingIdBecomesDot(t *testing.T) {
	ctx := NewContext()

	classification := ctx.Classify("1\t100\t\tA\tC")
	assert.Equal(t, lineType.Vcf, classification.Type)
	assert.Equal(t, ".", classification.Variant.Id)
}

func TestClassifySkipsUnsupportedChromosome(t *testing.T) {
	ctx := NewContext()

	classification := ctx.Classify("99\t12345\t.\tA\tG")
	assert.Equal(t, lineType.Skipped, classification.Type)
	assert.Contains(t, classification.Reason, "chromosome")
}

func TestClassifySkipsDuplicateVariant(t *testing.T) {
	ctx := NewContext()

	first := ctx.Classify("1\t12345\trs001\tA\tG")
	assert.Equal(t, lineType.Vcf, first.Type)

	// same coordinates, different id: still a duplicate
	second := ctx.Classify("1\t12345\trs002\tA\tG")
	assert.Equal(t, lineType.Skipped, second.Type)
	assert.Contains(t, second.Reason, "duplicate")
}

func TestClassifyIndelWithoutAnnotation(t *testing.T) {
	ctx := NewContext()

	classification := ctx.Classify("1\t12345\t.\tAT\tA")
	assert.Equal(t, lineType.IndelNoCadd, classification.Type)
	assert.NotNil(t, classification.Variant)
}

func TestClassifyIndelPromotedByPriorAnnotation(t *testing.T) {
	ctx := NewContext()

	annotation := ctx.Classify("1\t12345\tAT\tA\t1.5\t24.0")
	assert.Equal(t, lineType.Cadd, annotation.Type)
	assert.NotNil(t, annotation.Cadd)
	assert.Equal(t, 24.0, annotation.Cadd.Phred)

	// same coordinates now carry a score, so the indel is usable
	promoted := ctx.Classify("1\t12345\trs001\tAT\tA")
	assert.Equal(t, lineType.Vcf, promoted.Type)
}

func TestClassifyCaddShapeRequiresBothScores(t *testing.T) {
	ctx := NewContext()

	// six columns, but the last is not numeric
	classification := ctx.Classify("1\t12345\tAT\tA\t1.5\tbogus")
	assert.Equal(t, lineType.Error, classification.Type)
}

func TestClassifyUnparseableLine(t *testing.T) {
	ctx := NewContext()

	classification := ctx.Classify("not a variant at all")
	assert.Equal(t, lineType.Error, classification.Type)
	assert.NotEmpty(t, classification.Reason)
}

func TestClassifyRejectsNonPositivePositions(t *testing.T) {
	ctx := NewContext()

	assert.Equal(t, lineType.Error, ctx.Classify("1\t0\t.\tA\tG").Type)
	assert.Equal(t, lineType.Error, ctx.Classify("1\t-5\t.\tA\tG").Type)
}

func TestClassifyIsDeterministicAcrossFreshContexts(t *testing.T) {
	lines := []string{
		"##comment",
		"1\t12345\trs001\tA\tG",
		"1\t555\t.\tAT\tA",
		"garbage",
	}

	first := make([]Classification, 0, len(lines))
	ctx1 := NewContext()
	for _, line := range lines {
		first = append(first, ctx1.Classify(line))
	}

	ctx2 := NewContext()
	for i, line := range lines {
		assert.Equal(t, first[i].Type, ctx2.Classify(line).Type)
	}
}
