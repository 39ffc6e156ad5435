package hobby_test

import (
	"fmt"

	"honnef.co/go/hobby"
)

func ExampleFit() {
	// Hobby's algorithm turns the corners of a square into a shape that is
	// very close to the circle through them.
	square := []hobby.Point{
		hobby.Pt(0, 0),
		hobby.Pt(100, 0),
		hobby.Pt(100, 100),
		hobby.Pt(0, 100),
	}
	c, err := hobby.Fit(square, true, nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("segments: %d\n", c.NumSegments())
	fmt.Printf("length: %.0f\n", c.Length())
	fmt.Printf("passes through %s at t=0.5\n", c.Eval(0.5))

	// Output:
	// segments: 4
	// length: 444
	// passes through (100, 100) at t=0.5
}

func ExampleContour_SVG() {
	c, err := hobby.Fit([]hobby.Point{hobby.Pt(0, 0), hobby.Pt(30, 0)}, false, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(c.SVG(hobby.SVGOptions{MaxPrecision: 3}))

	// Output:
	// M0,0 C10,0 20,0 30,0
}

func ExampleBuildRibbon() {
	c, err := hobby.Fit([]hobby.Point{hobby.Pt(0, 0), hobby.Pt(100, 0)}, false, nil)
	if err != nil {
		panic(err)
	}
	left, right := hobby.BuildRibbon(c, hobby.Constant(10), 3)
	for i, l := range left {
		r := right[i]
		fmt.Printf("(%.3g, %.3g) (%.3g, %.3g)\n", l.X, l.Y, r.X, r.Y)
	}

	// Output:
	// (0, 5) (0, -5)
	// (50, 5) (50, -5)
	// (100, 5) (100, -5)
}
