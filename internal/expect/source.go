package expect

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"sync"
)

// fallbackSource is used when the expression text cannot be recovered.
const fallbackSource = "condition"

type lineKey struct {
	file string
	line int
}

var (
	sourcesMu sync.Mutex
	sources   = map[string]map[int][]string{}
	// call sites seen per line, ordered by program counter
	sites = map[lineKey][]uintptr{}
)

// Source returns the literal text of the first argument of the first Expect
// call at file:line. The file is parsed once and its calls are cached.
func Source(file string, line int) string {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()

	if texts := callsAt(file, line); len(texts) > 0 {
		return texts[0]
	}
	return fallbackSource
}

// SourceAt is Source for the Expect call returning to pc. When a line holds
// several Expect calls, they are told apart by the order of their call sites,
// which follows their order on the line. Every call should be reported here,
// passing or not, so that the sites of a line are known.
func SourceAt(pc uintptr, file string, line int) string {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()

	texts := callsAt(file, line)
	switch len(texts) {
	case 0:
		return fallbackSource
	case 1:
		return texts[0]
	}

	key := lineKey{file, line}
	pcs := sites[key]
	i := sort.Search(len(pcs), func(i int) bool { return pcs[i] >= pc })
	if i == len(pcs) || pcs[i] != pc {
		pcs = append(pcs, 0)
		copy(pcs[i+1:], pcs[i:])
		pcs[i] = pc
		sites[key] = pcs
	}
	if i < len(texts) {
		return texts[i]
	}
	return texts[len(texts)-1]
}

// callsAt must be called with sourcesMu held.
func callsAt(file string, line int) []string {
	calls, ok := sources[file]
	if !ok {
		calls = scanExpectCalls(file)
		sources[file] = calls
	}
	return calls[line]
}

func scanExpectCalls(file string) map[int][]string {
	calls := map[int][]string{}
	src, err := os.ReadFile(file)
	if err != nil {
		return calls
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, src, parser.SkipObjectResolution)
	if err != nil {
		return calls
	}

	// ast.Inspect visits calls in source order
	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || len(call.Args) == 0 || !isExpect(call.Fun) {
			return true
		}
		start := fset.Position(call.Args[0].Pos()).Offset
		end := fset.Position(call.Args[0].End()).Offset
		if start < 0 || end > len(src) || start >= end {
			return true
		}
		text := string(src[start:end])
		// the reported line of a multi-line call may be either of these
		first := fset.Position(call.Pos()).Line
		calls[first] = append(calls[first], text)
		if paren := fset.Position(call.Lparen).Line; paren != first {
			calls[paren] = append(calls[paren], text)
		}
		return true
	})
	return calls
}

func isExpect(fun ast.Expr) bool {
	switch f := fun.(type) {
	case *ast.SelectorExpr:
		return f.Sel.Name == "Expect"
	case *ast.Ident:
		return f.Name == "Expect"
	}
	return false
}
