package goanf_test

import (
	"fmt"
	"log"

	goanf "github.com/zzenonn/go-anf"
)

// ExampleNewForest demonstrates building polynomials in a fresh Forest.
func ExampleNewForest() {
	f := goanf.NewForest()
	c := goanf.NewCache()

	fmt.Printf("Size: %d\n", f.Size())

	x0, x1 := f.Term(0), f.Term(1)
	p := goanf.Add(c, f, x0, x1)
	fmt.Println(goanf.Format(f, goanf.Add(c, f, p, x0)))

	// Output:
	// Size: 2
	// x1
}

// ExampleSlimGrobnerBasis demonstrates solving a small system.
func ExampleSlimGrobnerBasis() {
	f := goanf.NewForest()
	c := goanf.NewCache()

	x, y, z := f.Term(0), f.Term(1), f.Term(2)
	system := []goanf.NodeID{
		x,
		goanf.Add(c, f, z, y),
		goanf.Add(c, f, goanf.Multiply(c, f, z, x), y),
	}

	res := goanf.SlimGrobnerBasis(c, f, system, 0, 0)
	if err := res.Err(); err != nil {
		log.Fatal(err)
	}

	basis := goanf.ReducedGrobnerBasis(c, f, res.Basis)
	fmt.Println(goanf.FormatAll(f, basis))

	// Output:
	// [x0 x1 x2]
}

// ExampleFormat demonstrates the graded order used for printing.
func ExampleFormat() {
	f := goanf.NewForest()
	c := goanf.NewCache()

	p := goanf.Add(c, f, f.Monomial(0, 1), goanf.Add(c, f, f.Term(2), goanf.True))
	fmt.Println(goanf.Format(f, p))
	fmt.Println(goanf.Format(f, goanf.False))

	// Output:
	// x0*x1 + x2 + 1
	// 0
}

// ExampleForest_Evaluate demonstrates substituting an assignment.
func ExampleForest_Evaluate() {
	f := goanf.NewForest()
	c := goanf.NewCache()

	p := goanf.Add(c, f, f.Monomial(0, 1), f.Term(2))
	for _, a := range []goanf.Assignment{
		goanf.NewAssignment(),
		goanf.NewAssignment(0, 1),
		goanf.NewAssignment(0, 1, 2),
	} {
		fmt.Printf("%v: %v\n", a, f.Evaluate(p, a))
	}

	// Output:
	// {}: false
	// {x0, x1}: true
	// {x0, x1, x2}: false
}
