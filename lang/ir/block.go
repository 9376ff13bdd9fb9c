package ir

// BasicBlock is a straight-line sequence of instructions ending in a
// terminator (Return, Jump or CondJump), or left unterminated only
// transiently while IR generation is still filling it in.
type BasicBlock struct {
	Name  string
	Instr []Value
	// Func is the function this block belongs to; nil for the module's
	// holding block, which is never attached to any function.
	Func *Function
}

// NewBasicBlock allocates a block; always take its address and keep that
// pointer, never copy a BasicBlock by value, so cross-references such as
// Jump.Target stay valid no matter how the owning function's block slice is
// grown.
func NewBasicBlock(name string) *BasicBlock {
	return &BasicBlock{Name: name}
}

// Append adds an instruction to the end of the block.
func (b *BasicBlock) Append(v Value) {
	b.Instr = append(b.Instr, v)
}

// Terminator returns the block's last instruction if it is a terminator
// (Return, Jump or CondJump), or nil otherwise.
func (b *BasicBlock) Terminator() Value {
	if len(b.Instr) == 0 {
		return nil
	}
	last := b.Instr[len(b.Instr)-1]
	switch last.(type) {
	case *Return, *Jump, *CondJump:
		return last
	default:
		return nil
	}
}

// IsTerminated reports whether the block already ends in a terminator.
func (b *BasicBlock) IsTerminated() bool {
	return b.Terminator() != nil
}
