package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// parsedInput holds one CSV file's worth of training data: a dense
// feature matrix, integer class ids, the class names the ids index
// into, and the feature column names (synthesized if the file has no
// header row). Row 0's first column is always the class label,
// matching wlattner-rf/parse.go's convention.
type parsedInput struct {
	X        [][]float64
	Y        []int
	Classes  []string
	VarNames []string
}

// parseCSV reads r as headerless-or-headed CSV, using the first
// column of every row as the class label and the remaining columns as
// numeric features. A row is treated as a header iff its non-label
// columns fail to parse as floats.
func parseCSV(r io.Reader) (*parsedInput, error) {
	reader := csv.NewReader(r)

	p := &parsedInput{}
	classID := make(map[string]int)

	row, err := reader.Read()
	if err != nil {
		return p, err
	}

	if varNames, ok := parseHeader(row); ok {
		p.VarNames = varNames
	} else {
		for i := range row[1:] {
			p.VarNames = append(p.VarNames, fmt.Sprintf("X%d", i+1))
		}
		if err := p.parseRow(row, classID); err != nil {
			return p, err
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return p, err
		}
		if err := p.parseRow(row, classID); err != nil {
			return p, err
		}
	}

	return p, nil
}

func (p *parsedInput) parseRow(row []string, classID map[string]int) error {
	xi, err := parseFeatureVals(row)
	if err != nil {
		return err
	}
	p.X = append(p.X, xi)

	label := row[0]
	id, ok := classID[label]
	if !ok {
		id = len(p.Classes)
		classID[label] = id
		p.Classes = append(p.Classes, label)
	}
	p.Y = append(p.Y, id)

	return nil
}

func parseFeatureVals(row []string) ([]float64, error) {
	if len(row) < 2 {
		return nil, errors.New("row only has one column")
	}
	xi := make([]float64, 0, len(row)-1)
	for _, val := range row[1:] {
		fv, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, err
		}
		xi = append(xi, fv)
	}
	return xi, nil
}

// parseHeader reports whether row looks like a header: the input is
// entirely numeric feature columns, so a row is a header iff none of
// its non-label columns is a number.
func parseHeader(row []string) ([]string, bool) {
	if len(row) <= 1 {
		return nil, false
	}
	names := make([]string, 0, len(row)-1)
	for _, val := range row[1:] {
		if _, err := strconv.ParseFloat(val, 64); err == nil {
			return nil, false
		}
		names = append(names, val)
	}
	return names, true
}
