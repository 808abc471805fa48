package heyreach

// LeadsPage covers both response shapes the list API has returned: leads vs
// data for the array, totalPages vs total_pages for the page marker.
type LeadsPage struct {
	Leads           []map[string]any `json:"leads"`
	Data            []map[string]any `json:"data"`
	TotalPages      int              `json:"totalPages"`
	TotalPagesSnake int              `json:"total_pages"`
}

func (p *LeadsPage) Items() []map[string]any {
	if len(p.Leads) > 0 {
		return p.Leads
	}
	return p.Data
}

func (p *LeadsPage) PageCount() int {
	if p.TotalPages > 0 {
		return p.TotalPages
	}
	return p.TotalPagesSnake
}
