package count

// Counts 是一个输入源的计量结果。未选中的指标恒为 0，表示“未统计”而不是“没有”。
type Counts struct {
	Lines  int
	Words  int
	Chars  int
	Tokens int
}

// Add 把 o 逐字段累加到 c 上，用作多源汇总的累加器。
func (c *Counts) Add(o Counts) {
	c.Lines += o.Lines
	c.Words += o.Words
	c.Chars += o.Chars
	c.Tokens += o.Tokens
}

func (c Counts) Plus(o Counts) Counts {
	c.Add(o)
	return c
}
