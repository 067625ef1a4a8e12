package leontief

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/mat"
)

// LoadCSVToMatrix reads a square input-output table:
//
//   - The first row is a header with sector names
//   - Each remaining row holds one numeric value per sector
//   - There must be as many data rows as sectors
//
// Returns the sector names and the n x n matrix.
func LoadCSVToMatrix(path string) ([]string, *mat.Dense, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}

	n := len(header)
	if len(rows) != n {
		return nil, nil, fmt.Errorf("%s: %d sectors but %d rows: %w", path, n, len(rows), ErrDimensionMismatch)
	}

	data := make([]float64, 0, n*n)
	for _, r := range rows {
		data = append(data, r...)
	}
	return header, mat.NewDense(n, n, data), nil
}

// LoadCSVToVector reads a header row of sector names followed by exactly one
// numeric row.
func LoadCSVToVector(path string) ([]string, *mat.VecDense, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) != 1 {
		return nil, nil, fmt.Errorf("%s: expected 1 data row, got %d", path, len(rows))
	}
	return header, mat.NewVecDense(len(header), rows[0]), nil
}

// LoadEconomy loads a technology matrix and a demand vector and checks that
// both name the same sectors in the same order.
func LoadEconomy(technologyPath, demandPath string) (*Economy, error) {
	sectors, tech, err := LoadCSVToMatrix(technologyPath)
	if err != nil {
		return nil, err
	}
	demandSectors, demand, err := LoadCSVToVector(demandPath)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(sectors, demandSectors) {
		return nil, fmt.Errorf("sectors differ between %s %v and %s %v: %w",
			technologyPath, sectors, demandPath, demandSectors, ErrDimensionMismatch)
	}

	e := &Economy{
		Sectors:    sectors,
		Technology: tech,
		Demand:     demand,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// readCSV returns the header and the parsed numeric rows of a CSV file.
func readCSV(path string) ([]string, [][]float64, error) {
	// 1. Open file
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// 2. Make CSV reader
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	// 3. Read header row
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	if len(header) == 0 || (len(header) == 1 && header[0] == "") {
		return nil, nil, fmt.Errorf("empty header in %s", path)
	}
	K := len(header)

	var rows [][]float64

	// 4. Read each data row
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d of %s: %w", line, path, err)
		}
		if len(record) != K {
			return nil, nil, fmt.Errorf("row %d of %s: expected %d columns, got %d: %w",
				line, path, K, len(record), ErrDimensionMismatch)
		}

		values := make([]float64, K)
		for j, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("parse float at row %d col %d (%q): %w", line, j+1, s, err)
			}
			values[j] = v
		}
		rows = append(rows, values)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data rows in %s", path)
	}
	return header, rows, nil
}

// Helper function to print a matrix
func PrintMatrix(w io.Writer, title string, m mat.Matrix) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
	fmt.Fprintf(w, "%v\n", mat.Formatted(m, mat.Prefix(" ")))
}

// Helper function to print production per sector
func PrintProduction(w io.Writer, sectors []string, x mat.Vector) {
	fmt.Fprintln(w, "\n=== Production ===")
	for i := 0; i < x.Len(); i++ {
		name := fmt.Sprintf("sector %d", i+1)
		if i < len(sectors) {
			name = sectors[i]
		}
		fmt.Fprintf(w, " %-16s %s\n", name, humanize.Commaf(math.Round(x.AtVec(i)*100)/100))
	}
}
