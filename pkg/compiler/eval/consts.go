package eval

import (
	"github.com/noisylang/noisy/pkg/compiler/diag"
	"github.com/noisylang/noisy/pkg/core/value"
)

// Consts is the process-wide constant table built from #const
// declarations. Names are stored lowercased; capitalization is ignored.
type Consts struct {
	vals map[string]value.Value
}

// NewConsts creates an empty constant table.
func NewConsts() *Consts {
	return &Consts{vals: make(map[string]value.Value)}
}

// Define records a constant. Re-declaring an existing name fails.
func (c *Consts) Define(name string, v value.Value, line uint32) error {
	if prev, ok := c.vals[name]; ok {
		return diag.New(diag.ErrDuplicateConst, line,
			"constant %q is already defined with value %s", name, prev.Format())
	}
	c.vals[name] = v
	return nil
}

// Lookup resolves a constant by its lowercased name.
func (c *Consts) Lookup(name string) (value.Value, bool) {
	v, ok := c.vals[name]
	return v, ok
}
