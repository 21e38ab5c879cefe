package variants

import (
	"fmt"
)

/*
	Parsed representations of the two usable record shapes found
	in an uploaded file: plain variant records and precomputed
	CADD annotation records.
*/

type VcfVariant struct {
	Chrom string `json:"chrom"`
	Pos   int64  `json:"pos"`
	Id    string `json:"id"`
	Ref   string `json:"ref"`
	Alt   string `json:"alt"`
}

// IsIndel reports whether either allele spans more than a single base.
func (v VcfVariant) IsIndel() bool {
	return len(v.Ref) > 1 || len(v.Alt) > 1
}

// Key is the coordinate identity used to correlate variant records
// with annotation records across the same upload.
func (v VcfVariant) Key() string {
	return fmt.Sprintf("%s:%d:%s:%s", v.Chrom, v.Pos, v.Ref, v.Alt)
}

// Render produces the fixed-column record the downstream worker
// expects: tab separated CHROM POS ID REF ALT plus three trailing
// placeholder fields. Field order and placeholders are part of the
// worker contract.
func (v VcfVariant) Render() string {
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s\t.\t.\t.", v.Chrom, v.Pos, v.Id, v.Ref, v.Alt)
}

type CaddScore struct {
	Chrom    string  `json:"chrom"`
	Pos      int64   `json:"pos"`
	Ref      string  `json:"ref"`
	Alt      string  `json:"alt"`
	RawScore float64 `json:"rawScore"`
	Phred    float64 `json:"phred"`
}

func (c CaddScore) Key() string {
	return fmt.Sprintf("%s:%d:%s:%s", c.Chrom, c.Pos, c.Ref, c.Alt)
}

// Render maps the annotation back onto the worker's variant record
// shape; annotation records carry no id column.
func (c CaddScore) Render() string {
	return VcfVariant{Chrom: c.Chrom, Pos: c.Pos, Id: ".", Ref: c.Ref, Alt: c.Alt}.Render()
}
