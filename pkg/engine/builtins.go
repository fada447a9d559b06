package engine

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/mortise/pkg/csg"
	"github.com/chazu/mortise/pkg/mesh"
	"github.com/chazu/mortise/pkg/shapes"
	"github.com/chazu/mortise/pkg/stlio"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before passing it to
// zygomys:
//
//  1. Kebab-case to underscore: save-stl -> save_stl. zygomys does not
//     allow hyphens in identifiers (it reads them as subtraction), so
//     a hyphen preceded by an identifier character and followed by a
//     letter becomes an underscore; a-1 stays arithmetic.
//  2. Lisp ; line comments become zygomys // comments.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/8)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Copy backtick-quoted string literals untouched.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Hyphen between identifier characters is part of a name.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Solid values
// ---------------------------------------------------------------------------

// sexpSolid wraps a mesh so solids can flow between builtins and be
// bound with def like any other value.
type sexpSolid struct {
	m *mesh.Mesh
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(solid :verts %d :faces %d)", s.m.NumVerts(), s.m.NumFaces())
}

func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// floatArgs extracts exactly n numeric arguments.
func floatArgs(name string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// optCells reads an optional trailing resolution argument.
func optCells(name string, args []zygo.Sexp, after int) (int, error) {
	if len(args) <= after {
		return 0, nil
	}
	f, err := toFloat64(args[after])
	if err != nil {
		return 0, fmt.Errorf("%s: resolution: %w", name, err)
	}
	return int(f), nil
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

// registerBuiltins installs the CSG vocabulary into a fresh sandbox.
// Builtins that perform file I/O do so on the Go side; the sandbox
// itself has no filesystem access.
func registerBuiltins(env *zygo.Zlisp, session *Session) {
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		dims, err := floatArgs("box", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{m: shapes.Box(dims[0], dims[1], dims[2])}, nil
	})

	env.AddFunction("tetrahedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("tetrahedron: expected no arguments")
		}
		return &sexpSolid{m: shapes.Tetrahedron()}, nil
	})

	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 || len(args) > 2 {
			return zygo.SexpNull, fmt.Errorf("sphere: expected radius and optional resolution")
		}
		r, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		cells, err := optCells("sphere", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		m, err := shapes.Sphere(r, cells)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{m: m}, nil
	})

	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 || len(args) > 3 {
			return zygo.SexpNull, fmt.Errorf("cylinder: expected height, radius and optional resolution")
		}
		h, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		cells, err := optCells("cylinder", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		m, err := shapes.Cylinder(h, r, cells)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{m: m}, nil
	})

	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("translate: expected solid, x, y, z")
		}
		m, err := mustSolid("translate", 0, args[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		d, err := floatArgs("translate", args[1:], 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		moved := m.Clone()
		moved.Translate(v3.Vec{X: d[0], Y: d[1], Z: d[2]})
		return &sexpSolid{m: moved}, nil
	})

	for op, opName := range map[csg.Op]string{
		csg.Union:        "union",
		csg.Intersection: "intersection",
		csg.Difference:   "difference",
	} {
		op, opName := op, opName
		env.AddFunction(opName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s: expected two solids", opName)
			}
			a, err := mustSolid(opName, 0, args[0])
			if err != nil {
				return zygo.SexpNull, err
			}
			b, err := mustSolid(opName, 1, args[1])
			if err != nil {
				return zygo.SexpNull, err
			}
			out, err := csg.Boolean(op, a, b)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpSolid{m: out}, nil
		})
	}

	env.AddFunction("volume", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("volume: expected one solid")
		}
		m, err := mustSolid("volume", 0, args[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: m.Volume()}, nil
	})

	env.AddFunction("check", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("check: expected one solid")
		}
		m, err := mustSolid("check", 0, args[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := m.CheckSanity(); err != nil {
			return zygo.SexpNull, err
		}
		// Pass the solid through so checks can sit inline in a chain.
		return args[0], nil
	})

	env.AddFunction("load_stl", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("load-stl: expected a path")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-stl: %w", err)
		}
		m, err := stlio.Load(path)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{m: m}, nil
	})

	env.AddFunction("save_stl", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("save-stl: expected a solid and a path")
		}
		m, err := mustSolid("save-stl", 0, args[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		path, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("save-stl: %w", err)
		}
		if err := stlio.Save(m, path); err != nil {
			return zygo.SexpNull, err
		}
		session.Saved = append(session.Saved, path)
		return args[0], nil
	})

	env.AddFunction("echo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			if s, ok := a.(*zygo.SexpStr); ok {
				parts[i] = s.S
			} else {
				parts[i] = a.SexpString(nil)
			}
		}
		line := ""
		for i, p := range parts {
			if i > 0 {
				line += " "
			}
			line += p
		}
		session.Output = append(session.Output, line)
		return zygo.SexpNull, nil
	})
}
