package model

// PaginatedView is a windowed slice of a Graph: the nodes on the
// requested page plus every edge touching at least one of them, along
// with totals so a client can compute further pages.
type PaginatedView struct {
	Nodes       []*Node
	Edges       []Edge
	TotalNodes  int
	TotalEdges  int
	TotalPages  int
	CurrentPage int
}

// Paginate builds a PaginatedView of g for the given zero-based page
// and page size. An out-of-range page yields an empty Nodes/Edges
// slice with totals still populated.
func Paginate(g *Graph, page, pageSize int) PaginatedView {
	totalNodes := len(g.Nodes)
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalNodes + pageSize - 1) / pageSize
	}

	view := PaginatedView{
		TotalNodes:  totalNodes,
		TotalEdges:  len(g.Edges),
		TotalPages:  totalPages,
		CurrentPage: page,
	}
	if pageSize <= 0 || page < 0 {
		return view
	}

	start := page * pageSize
	if start >= totalNodes {
		return view
	}
	end := start + pageSize
	if end > totalNodes {
		end = totalNodes
	}

	view.Nodes = append(view.Nodes, g.Nodes[start:end]...)

	inPage := make(map[string]bool, len(view.Nodes))
	for _, n := range view.Nodes {
		inPage[n.StringID] = true
	}
	for _, e := range g.Edges {
		if inPage[e.Source] || inPage[e.Target] {
			view.Edges = append(view.Edges, e)
		}
	}

	return view
}
