package main

import (
	"strings"
	"testing"
)

func TestParseCSVDetectsHeaderAndClasses(t *testing.T) {
	r := strings.NewReader(irisCSV)

	p, err := parseCSV(r)
	if err != nil {
		t.Fatal("unexpected error parsing iris data:", err)
	}

	if p.VarNames[0] != "Sepal.Length" {
		t.Error("expected first variable name to be Sepal.Length, got:", p.VarNames[0])
	}

	if len(p.X) != 9 {
		t.Error("expected dataset to have 9 rows, got:", len(p.X))
	}
	if len(p.X[0]) != 4 {
		t.Error("expected dataset to have 4 columns, got:", len(p.X[0]))
	}

	if len(p.Classes) != 2 {
		t.Fatalf("expected 2 distinct classes, got %d: %v", len(p.Classes), p.Classes)
	}
	if p.Classes[0] != "setosa" {
		t.Error("expected first-seen class to be setosa, got:", p.Classes[0])
	}
	if p.Y[4] != 1 {
		t.Error("expected 5th row (virginica) to have class id 1, got:", p.Y[4])
	}
}

func TestParseCSVWithoutHeader(t *testing.T) {
	r := strings.NewReader("a,1,2\nb,3,4\na,5,6\n")

	p, err := parseCSV(r)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	if len(p.VarNames) != 2 || p.VarNames[0] != "X1" || p.VarNames[1] != "X2" {
		t.Errorf("expected synthesized variable names [X1 X2], got %v", p.VarNames)
	}
	if len(p.X) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(p.X))
	}
	if p.X[0][0] != 1 || p.X[0][1] != 2 {
		t.Errorf("expected first row [1 2], got %v", p.X[0])
	}
	if p.Y[0] != p.Y[2] {
		t.Error("expected rows labeled 'a' to share a class id")
	}
	if p.Y[0] == p.Y[1] {
		t.Error("expected rows labeled 'a' and 'b' to have distinct class ids")
	}
}

var irisCSV = `"Species","Sepal.Length","Sepal.Width","Petal.Length","Petal.Width"
"setosa",5.1,3.5,1.4,0.2
"setosa",4.9,3,1.4,0.2
"setosa",4.7,3.2,1.3,0.2
"setosa",4.6,3.1,1.5,0.2
"virginica",5,3.6,1.4,0.2
"setosa",5.4,3.9,1.7,0.4
"setosa",4.6,3.4,1.4,0.3
"setosa",5,3.4,1.5,0.2
"setosa",4.4,2.9,1.4,0.2
`
