// Command mortise performs boolean operations on STL solids using a
// BSP-based CSG kernel, and runs Lisp scripts that drive the kernel.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/mortise/pkg/csg"
	"github.com/chazu/mortise/pkg/engine"
	"github.com/chazu/mortise/pkg/mesh"
	"github.com/chazu/mortise/pkg/stlio"
)

var outPath string

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func loadOperand(path string) *mesh.Mesh {
	m, err := stlio.Load(path)
	if err != nil {
		fail(err)
	}
	return m
}

func info(cmd *cobra.Command, args []string) {
	m := loadOperand(args[0])
	min, max := m.BoundingBox()
	fmt.Printf("%s: %d verts, %d faces\n", args[0], m.NumVerts(), m.NumFaces())
	fmt.Printf("bounds: (%g, %g, %g) .. (%g, %g, %g)\n",
		min.X, min.Y, min.Z, max.X, max.Y, max.Z)
	if err := m.CheckSanity(); err != nil {
		fmt.Printf("sanity: %v\n", err)
		return
	}
	fmt.Printf("sanity: ok\n")
	fmt.Printf("volume: %g\n", m.Volume())
}

func check(cmd *cobra.Command, args []string) {
	m := loadOperand(args[0])
	if err := m.CheckSanity(); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func booleanCmd(op csg.Op) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		a := loadOperand(args[0])
		b := loadOperand(args[1])
		out, err := csg.Boolean(op, a, b)
		if err != nil {
			fail(err)
		}
		if err := stlio.Save(out, outPath); err != nil {
			fail(err)
		}
	}
}

func runScript(cmd *cobra.Command, args []string) {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fail(err)
	}
	session, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		fail(err)
	}
	for _, e := range evalErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(evalErrs) > 0 {
		os.Exit(1)
	}
	for _, line := range session.Output {
		fmt.Println(line)
	}
	for _, path := range session.Saved {
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}
}

func main() {
	root := &cobra.Command{
		Use:   "mortise",
		Short: "Boolean operations on STL solids",
	}

	root.AddCommand(&cobra.Command{
		Use:   "info <in.stl>",
		Short: "Print mesh statistics",
		Args:  cobra.ExactArgs(1),
		Run:   info,
	})
	root.AddCommand(&cobra.Command{
		Use:   "check <in.stl>",
		Short: "Validate a mesh and exit non-zero if it is unusable",
		Args:  cobra.ExactArgs(1),
		Run:   check,
	})

	for op, short := range map[csg.Op]string{
		csg.Union:        "Union of two solids",
		csg.Intersection: "Intersection of two solids",
		csg.Difference:   "First solid minus the second",
	} {
		boolCmd := &cobra.Command{
			Use:   fmt.Sprintf("%s <a.stl> <b.stl>", op),
			Short: short,
			Args:  cobra.ExactArgs(2),
			Run:   booleanCmd(op),
		}
		boolCmd.Flags().StringVarP(&outPath, "out", "o", "out.stl", "output STL path")
		root.AddCommand(boolCmd)
	}

	root.AddCommand(&cobra.Command{
		Use:   "run <script.lisp>",
		Short: "Run a CSG script",
		Args:  cobra.ExactArgs(1),
		Run:   runScript,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
