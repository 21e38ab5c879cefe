package lineType

import (
	"gavin/api/models/constants"
)

const (
	// header / meta lines, never counted as usable
	Comment constants.LineType = "COMMENT"

	// well-formed single-nucleotide variant record,
	// or an indel promoted by a matching annotation
	Vcf constants.LineType = "VCF"

	// precomputed deleteriousness-annotation record
	Cadd constants.LineType = "CADD"

	// insertion/deletion lacking a matching annotation;
	// kept in the filtered output but tracked separately
	IndelNoCadd constants.LineType = "INDEL_NOCADD"

	// malformed line that could not be parsed at all
	Error constants.LineType = "ERROR"

	// syntactically valid but intentionally excluded
	// (duplicate, unsupported chromosome, empty line, ..)
	Skipped constants.LineType = "SKIPPED"
)
