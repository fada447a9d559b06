// Package engine provides a Lisp scripting surface for the CSG kernel.
// It wraps zygomys in a sandboxed environment with builtins for
// constructing solids, combining them with boolean operations, and
// reading or writing STL files.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/mortise/pkg/mesh"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Session records the observable effects of one evaluation: the files
// written by save-stl and the lines printed by echo.
type Session struct {
	Saved  []string
	Output []string
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment for
// determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a script and reports its effects.
//
// Return semantics:
//   - On success: session + nil errors + nil error
//   - On parse/eval failure: nil session + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Session, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		session, evalErrs, err := e.evaluate(source)
		ch <- evalResult{session: session, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Session, []EvalError, error) {
	session := &Session{}

	// Empty source is a valid program with no effects.
	if strings.TrimSpace(source) == "" {
		return session, nil, nil
	}

	// Sandbox mode keeps user code away from the filesystem and
	// syscalls; the only I/O is through the registered builtins.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, session)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return session, nil, nil
}

// zygomysLineRe extracts a line number from zygomys error text.
var zygomysLineRe = regexp.MustCompile(`line (\d+)`)

// parseZygomysError converts a zygomys error into EvalErrors, pulling
// out a line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	line := 0
	if m := zygomysLineRe.FindStringSubmatch(msg); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			line = n
		}
	}
	return []EvalError{{Line: line, Message: msg}}
}

// mustSolid unwraps a solid argument.
func mustSolid(name string, pos int, s zygo.Sexp) (*mesh.Mesh, error) {
	sol, ok := s.(*sexpSolid)
	if !ok {
		return nil, fmt.Errorf("%s: argument %d: expected a solid, got %T", name, pos+1, s)
	}
	return sol.m, nil
}
