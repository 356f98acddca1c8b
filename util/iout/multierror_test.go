package iout

import (
	"errors"
	"testing"
)

func TestMultiErrors(t *testing.T) {
	if err := MultiErrors(nil, nil); err != nil {
		t.Fatal(err)
	}

	e1 := errors.New("e1")
	err := MultiErrors(nil, e1)
	if err == nil || err.Error() != "e1" {
		t.Fatal(err)
	}

	e2 := errors.New("e2\nline2")
	err = MultiErrors(e1, e2)
	want := "multierror(2){\n\terr1: e1\n\terr2: e2\n\tline2\n}"
	if err.Error() != want {
		t.Fatalf("%q", err.Error())
	}
	if !errors.Is(err, e2) {
		t.Fatal("expecting to match e2")
	}
}
