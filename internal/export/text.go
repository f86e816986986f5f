package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/san-kum/isingsim/internal/dynamo"
	"github.com/san-kum/isingsim/internal/experiment"
)

// TextHeader describes the run parameters written above the results.
type TextHeader struct {
	Size   int
	Field  float64
	Phases dynamo.Phases
}

// WriteText writes records as a tab-separated table: a column header, three
// lines of run parameters, one line per temperature and the elapsed time.
func WriteText(w io.Writer, h TextHeader, records []experiment.Record, elapsed time.Duration) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Temperature\tAverage Energy\tMagnetization\tSpecific Heat\tSusceptibility")
	fmt.Fprintf(bw, "Lattice Size: %dx%d\n", h.Size, h.Size)
	fmt.Fprintf(bw, "External Magnetic Field (B): %s\n", ff(h.Field))
	if h.Phases.Equilibration == h.Phases.Measurement {
		fmt.Fprintf(bw, "Metropolis Step: %d\n", h.Phases.Measurement)
	} else {
		fmt.Fprintf(bw, "Metropolis Step: %d equilibration, %d measurement\n", h.Phases.Equilibration, h.Phases.Measurement)
	}

	for _, r := range records {
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%s\n",
			ff(r.Temperature), ff(r.Energy), ff(r.Magnetization), ff(r.HeatCapacity), ff(r.Susceptibility))
	}

	fmt.Fprintf(bw, "Time taken: %s seconds\n", ff(elapsed.Seconds()))
	return bw.Flush()
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
