package input

import (
	"bufio"
	"fmt"
	"io"

	"gavin/api/models/constants"
	lineType "gavin/api/models/constants/line-type"
)

// Tally counts how many lines of each category an upload contained.
type Tally map[constants.LineType]int

// Usable reports the number of lines the downstream worker can score.
func (t Tally) Usable() int {
	return t[lineType.Vcf]
}

const (
	initialScanBufferSize = 64 * 1024
	maxScanBufferSize     = 64 * 1024 * 1024
)

// Transform streams the input one line at a time, classifies each
// line and routes it to the filtered or discarded sink. Both sinks
// are flushed and closed on every exit path. A fresh invocation
// expects both sinks to start from empty; the engine is not
// restartable mid-stream.
func Transform(source io.Reader, filtered *LineSink, discarded *LineSink) (Tally, error) {
	defer closeSink(filtered)
	defer closeSink(discarded)

	tally := Tally{}
	ctx := NewContext()

	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, initialScanBufferSize), maxScanBufferSize)

	for scanner.Scan() {
		line := scanner.Text()

		classification := ctx.Classify(line)
		tally[classification.Type]++

		switch classification.Type {
		case lineType.Comment:
			// header/meta lines are elided from both outputs

		case lineType.Vcf, lineType.IndelNoCadd:
			filtered.Accept(classification.Variant.Render())

		case lineType.Cadd:
			filtered.Accept(classification.Cadd.Render())

		case lineType.Error, lineType.Skipped:
			discarded.Accept(line)
		}
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return tally, fmt.Errorf("error reading upload stream: %s", scanErr)
	}

	return tally, nil
}

func closeSink(sink *LineSink) {
	if err := sink.Close(); err != nil {
		fmt.Printf("Failed to close line sink: %s\n", err)
	}
}
