package core

import "strconv"

// GraphNode is a view in export shape. ID is the string form of the business
// key, which is what the front-end uses to join edges to nodes.
type GraphNode struct {
	ID          string  `json:"id"`
	ViewID      int     `json:"view_id"`
	Name        string  `json:"name"`
	Name2       *string `json:"name2"`
	Alias       *string `json:"alias"`
	DisplayName string  `json:"display_name"`
}

// GraphEdge is a relation in export shape.
type GraphEdge struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Relation   string  `json:"relation"`
	Relation2  *string `json:"relation2"`
	EdgeWeight int     `json:"edge_weight"`
}

// GraphData is the full graph export.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// DisplayName resolves the preferred label for a view: alias if set, else
// name, else a placeholder derived from the business key.
func (v *View) DisplayName() string {
	if v.Alias != nil && *v.Alias != "" {
		return *v.Alias
	}
	if v.Name != "" {
		return v.Name
	}
	return "View_" + strconv.Itoa(v.ViewID)
}

// BuildGraph assembles the export shape from raw collections. Shared by the
// store implementations so the export contract lives in one place.
func BuildGraph(views []*View, relations []*ViewRelation) *GraphData {
	nodes := make([]GraphNode, 0, len(views))
	for _, v := range views {
		nodes = append(nodes, GraphNode{
			ID:          strconv.Itoa(v.ViewID),
			ViewID:      v.ViewID,
			Name:        v.Name,
			Name2:       v.Name2,
			Alias:       v.Alias,
			DisplayName: v.DisplayName(),
		})
	}

	edges := make([]GraphEdge, 0, len(relations))
	for _, r := range relations {
		weight := DefaultEdgeWeight
		if r.EdgeWeight != nil {
			weight = *r.EdgeWeight
		}
		edges = append(edges, GraphEdge{
			ID:         r.ID,
			Source:     strconv.Itoa(r.IDView1),
			Target:     strconv.Itoa(r.IDView2),
			Relation:   r.Relation,
			Relation2:  r.Relation2,
			EdgeWeight: weight,
		})
	}

	return &GraphData{Nodes: nodes, Edges: edges}
}
