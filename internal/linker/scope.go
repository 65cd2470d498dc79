package linker

// ScopeSymbol is one identifier introduced into a frame by a
// structural controller or a destructuring pattern.
type ScopeSymbol struct {
	Name string
	Kind string // "repeat-item" | "repeat-contextual" | "destructure"
}

// ScopeFrame is one scope-graph node: the root frame, or a frame a
// repeat-style controller pushed for its iteration variable(s) and
// the contextual `$index`/`$first`/... properties (spec.md §4.5
// "Scope graph").
type ScopeFrame struct {
	Id       int
	ParentId int // -1 for the root frame
	Symbols  map[string]ScopeSymbol
}

// ScopeGraph is the arena of frames a linked template builds, plus the
// root frame id.
type ScopeGraph struct {
	Frames []*ScopeFrame
	RootId int
}

// contextualNames are pushed into every repeat frame alongside the
// loop variable itself.
var contextualNames = []string{"$index", "$first", "$last", "$even", "$odd", "$length"}

// NewScopeGraph creates a graph with a single empty root frame.
func NewScopeGraph() *ScopeGraph {
	root := &ScopeFrame{Id: 0, ParentId: -1, Symbols: map[string]ScopeSymbol{}}
	return &ScopeGraph{Frames: []*ScopeFrame{root}, RootId: 0}
}

// PushFrame creates a new frame as a child of parentId and returns its
// id.
func (g *ScopeGraph) PushFrame(parentId int) int {
	f := &ScopeFrame{Id: len(g.Frames), ParentId: parentId, Symbols: map[string]ScopeSymbol{}}
	g.Frames = append(g.Frames, f)
	return f.Id
}

// Frame returns the frame with the given id, or nil.
func (g *ScopeGraph) Frame(id int) *ScopeFrame {
	if id < 0 || id >= len(g.Frames) {
		return nil
	}
	return g.Frames[id]
}

// PushRepeatFrame builds the frame a `repeat.for="name of iterable"`
// controller introduces: the loop variable plus the six contextual
// properties (spec.md §4.5 "Scope graph").
func (g *ScopeGraph) PushRepeatFrame(parentId int, loopVar string) int {
	id := g.PushFrame(parentId)
	f := g.Frame(id)
	f.Symbols[loopVar] = ScopeSymbol{Name: loopVar, Kind: "repeat-item"}
	for _, name := range contextualNames {
		f.Symbols[name] = ScopeSymbol{Name: name, Kind: "repeat-contextual"}
	}
	return id
}

// AddDestructureSymbol adds one pattern-destructured binding name to
// frame id.
func (g *ScopeGraph) AddDestructureSymbol(frameId int, name string) {
	f := g.Frame(frameId)
	if f == nil {
		return
	}
	f.Symbols[name] = ScopeSymbol{Name: name, Kind: "destructure"}
}

// Resolve implements "Identifier resolution" (spec.md §4.5): starting
// at frame, walk ancestor hops times, then keep walking the parent
// chain until a symbol named name is found. Returns the owning frame
// id and the symbol, or ok=false if resolution reaches the root
// without a match.
func (g *ScopeGraph) Resolve(frameId int, ancestor int, name string) (int, ScopeSymbol, bool) {
	cur := g.Frame(frameId)
	for i := 0; i < ancestor && cur != nil; i++ {
		cur = g.Frame(cur.ParentId)
	}
	for cur != nil {
		if sym, ok := cur.Symbols[name]; ok {
			return cur.Id, sym, true
		}
		cur = g.Frame(cur.ParentId)
	}
	return -1, ScopeSymbol{}, false
}
