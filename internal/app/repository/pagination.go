package repository

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Limit returns -1 (no limit in gorm) for a zero size
func (p Page) Limit() int {
	if p.Size <= 0 {
		return -1
	}
	return p.Size
}
