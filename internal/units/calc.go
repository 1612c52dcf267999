package units

// Calc evaluates a chain of fallible quantity operations, keeping the first
// error. Once an error is recorded every later call returns a zero value.
type Calc struct {
	err error
}

// Err returns the first error recorded.
func (c *Calc) Err() error { return c.err }

func (c *Calc) keep(q Quantity, err error) Quantity {
	if c.err != nil {
		return Quantity{}
	}
	if err != nil {
		c.err = err
		return Quantity{}
	}
	return q
}

// Add returns a+b.
func (c *Calc) Add(a, b Quantity) Quantity { return c.keep(a.Add(b)) }

// Sub returns a-b.
func (c *Calc) Sub(a, b Quantity) Quantity { return c.keep(a.Sub(b)) }

// Sqrt returns √q.
func (c *Calc) Sqrt(q Quantity) Quantity { return c.keep(q.Sqrt()) }

// Max returns the larger of a and b.
func (c *Calc) Max(a, b Quantity) Quantity { return c.keep(Max(a, b)) }

// Min returns the smaller of a and b.
func (c *Calc) Min(a, b Quantity) Quantity { return c.keep(Min(a, b)) }

// Float returns the magnitude of a dimensionless quantity.
func (c *Calc) Float(q Quantity) float64 {
	if c.err != nil {
		return 0
	}
	v, err := q.Float()
	if err != nil {
		c.err = err
	}
	return v
}

// In converts q to u.
func (c *Calc) In(q Quantity, u Unit) float64 {
	if c.err != nil {
		return 0
	}
	v, err := q.In(u)
	if err != nil {
		c.err = err
	}
	return v
}

func (c *Calc) cmp(a, b Quantity) int {
	if c.err != nil {
		return 0
	}
	r, err := a.Cmp(b)
	if err != nil {
		c.err = err
	}
	return r
}

// Le reports a <= b.
func (c *Calc) Le(a, b Quantity) bool { return c.cmp(a, b) <= 0 && c.err == nil }

// Lt reports a < b.
func (c *Calc) Lt(a, b Quantity) bool { return c.cmp(a, b) < 0 && c.err == nil }

// Gt reports a > b.
func (c *Calc) Gt(a, b Quantity) bool { return c.cmp(a, b) > 0 && c.err == nil }
