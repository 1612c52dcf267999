package trace

import (
	"strings"
	"testing"
)

func TestAppendOnlyOrder(t *testing.T) {
	var tr Trace
	tr.Add(Step{Description: "one"})
	tr.Warn(Step{Description: "two"})
	tr.Add(Step{Description: "three"})

	steps := tr.Steps()
	if len(steps) != 3 {
		t.Fatalf("len = %d", len(steps))
	}
	for i, want := range []string{"one", "two", "three"} {
		if steps[i].Description != want {
			t.Errorf("step %d = %s", i, steps[i].Description)
		}
	}

	steps[0].Description = "changed"
	if tr.Steps()[0].Description != "one" {
		t.Error("Steps must return a copy")
	}

	w := tr.Warnings()
	if len(w) != 1 || w[0].Description != "two" || w[0].Level != Warning {
		t.Errorf("Warnings = %+v", w)
	}
}

func TestVariablesAreCopied(t *testing.T) {
	vars := map[string]string{"Fy": "345 MPa"}
	var tr Trace
	tr.Add(Step{Description: "params", Variables: vars})
	vars["Fy"] = "0"
	if got := tr.Steps()[0].Variables["Fy"]; got != "345 MPa" {
		t.Errorf("Fy = %s", got)
	}
}

func TestAppend(t *testing.T) {
	var a, b Trace
	a.Add(Step{Description: "a1"})
	b.Add(Step{Description: "b1"})
	b.Add(Step{Description: "b2"})
	a.Append(&b)
	a.Append(nil)

	var got []string
	for _, s := range a.Steps() {
		got = append(got, s.Description)
	}
	if strings.Join(got, ",") != "a1,b1,b2" {
		t.Errorf("order = %v", got)
	}
}

func TestFingerprint(t *testing.T) {
	build := func(result string) *Trace {
		var tr Trace
		tr.Add(Step{Description: "Pn", Formula: "Pn = Fcr·Ag", Result: result,
			Variables: map[string]string{"Ag": "5890 mm²", "Fcr": "268.6 MPa"}})
		return &tr
	}
	if build("1582 kN").Fingerprint() != build("1582 kN").Fingerprint() {
		t.Error("identical traces must share a fingerprint")
	}
	if build("1582 kN").Fingerprint() == build("1583 kN").Fingerprint() {
		t.Error("different traces must differ")
	}
}

func TestStepString(t *testing.T) {
	s := Step{Description: "Slenderness", Reference: "AISC E2", Result: "58.48", Level: Warning}
	got := s.String()
	if !strings.HasPrefix(got, "[WARNING] Slenderness (AISC E2)") || !strings.Contains(got, "= 58.48") {
		t.Errorf("String() = %q", got)
	}
}
