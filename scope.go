package main

type binding struct {
	name  string
	value WidthInt
}

type scopeFrame []binding

func (fr scopeFrame) lookup(name string) *WidthInt {
	for i := len(fr) - 1; i >= 0; i-- {
		if fr[i].name == name {
			return &fr[i].value
		}
	}
	return nil
}

// scopes is the variable environment: a stack of binding frames. Frame 0
// holds globals; base marks the first frame of the running function call, so
// lookups see the call's own blocks and the globals but never a caller's
// locals.
type scopes struct {
	frames []scopeFrame
	base   int
}

func newScopes() scopes {
	return scopes{frames: []scopeFrame{nil}, base: 0}
}

func (sc *scopes) depth() int { return len(sc.frames) }

func (sc *scopes) push() { sc.frames = append(sc.frames, nil) }

func (sc *scopes) pop() {
	i := len(sc.frames) - 1
	sc.frames[i] = nil
	sc.frames = sc.frames[:i]
}

// enter starts a function call frame holding params, returning the base to
// restore through leave.
func (sc *scopes) enter(params []string, args []WidthInt) (saved int) {
	fr := make(scopeFrame, len(params))
	for i, name := range params {
		fr[i] = binding{name, args[i]}
	}
	saved = sc.base
	sc.base = len(sc.frames)
	sc.frames = append(sc.frames, fr)
	return saved
}

func (sc *scopes) leave(saved int) {
	for len(sc.frames) > sc.base {
		sc.pop()
	}
	sc.base = saved
}

func (sc *scopes) find(name string) *WidthInt {
	for i := len(sc.frames) - 1; i >= sc.base && i > 0; i-- {
		if v := sc.frames[i].lookup(name); v != nil {
			return v
		}
	}
	return sc.frames[0].lookup(name)
}

// lookup resolves name innermost first.
func (sc *scopes) lookup(name string) (WidthInt, bool) {
	if v := sc.find(name); v != nil {
		return *v, true
	}
	return WidthInt{}, false
}

// assign binds name in the innermost frame, shadowing any outer binding.
func (sc *scopes) assign(name string, value WidthInt) {
	i := len(sc.frames) - 1
	if v := sc.frames[i].lookup(name); v != nil {
		*v = value
		return
	}
	sc.frames[i] = append(sc.frames[i], binding{name, value})
}

// reassign updates the visible binding of name, or creates it among the
// globals.
func (sc *scopes) reassign(name string, value WidthInt) {
	if v := sc.find(name); v != nil {
		*v = value
		return
	}
	sc.frames[0] = append(sc.frames[0], binding{name, value})
}

// registry holds user function definitions; later definitions shadow
// earlier ones of the same name.
type registry []*FunctionDef

func (reg *registry) define(def *FunctionDef) { *reg = append(*reg, def) }

func (reg registry) lookup(name string) *FunctionDef {
	for i := len(reg) - 1; i >= 0; i-- {
		if reg[i].Name == name {
			return reg[i]
		}
	}
	return nil
}
