package sir

// Module is one compilation unit of lowered SIR.
type Module struct {
	Name     string
	MainFile string // primary source path; empty for synthesized units
	Funcs    []*Func
	Globals  []*Global
}

// AddFunc appends a function to the module.
func (m *Module) AddFunc(f *Func) *Func {
	m.Funcs = append(m.Funcs, f)
	return f
}

// AddGlobal appends a global to the module.
func (m *Module) AddGlobal(g *Global) *Global {
	m.Globals = append(m.Globals, g)
	return g
}
