package ir

// Module is a single compiled file's IR: its global variables and its
// functions.
type Module struct {
	SourceName string
	Globals    []*GlobalVar
	Funcs      []*Function

	// holding is the "holding basic block": a scratch block used only during
	// generation to lower global-variable and default-argument initializer
	// expressions. It belongs to no function in Funcs and is never printed;
	// lowering an initializer into it returns the resulting value directly,
	// the instructions it accumulates are otherwise never read. See
	// lang/ir/gen.
	holding *BasicBlock
}

// NewModule creates an empty module, including its holding block.
func NewModule(sourceName string) *Module {
	return &Module{SourceName: sourceName, holding: NewBasicBlock("$init")}
}

// Holding returns the module's holding basic block.
func (m *Module) Holding() *BasicBlock { return m.holding }

// AddGlobal appends a global variable to the module.
func (m *Module) AddGlobal(g *GlobalVar) { m.Globals = append(m.Globals, g) }

// AddFunc appends a function to the module.
func (m *Module) AddFunc(f *Function) { m.Funcs = append(m.Funcs, f) }
