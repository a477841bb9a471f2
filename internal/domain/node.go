package domain

// NodeType represents what a tree node stands for
type NodeType int

const (
	NodeRoot NodeType = iota
	NodeFolder
	NodeRap
)

func (t NodeType) String() string {
	switch t {
	case NodeRoot:
		return "Root"
	case NodeFolder:
		return "Folder"
	case NodeRap:
		return "Rap"
	default:
		return "Unknown"
	}
}

// TreeNode represents a node in the library tree for navigation
type TreeNode struct {
	Type       NodeType
	ID         string // empty for the root
	Name       string
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// BuildTree nests folders and raps under a synthetic root. Siblings are
// folders by name followed by raps newest first. Folders that can't be
// reached from the root (orphans, cycles) are left out.
func BuildTree(folders []Folder, raps []Rap, rootLabel string) *TreeNode {
	root := &TreeNode{Type: NodeRoot, Name: rootLabel, IsExpanded: true}

	children := indexChildren(folders)
	rapsByFolder := make(map[string][]Rap)
	for _, r := range raps {
		key := IDOrEmpty(r.FolderID)
		rapsByFolder[key] = append(rapsByFolder[key], r)
	}
	visited := make(map[string]bool, len(folders))

	var attach func(node *TreeNode, folderID string)
	attach = func(node *TreeNode, folderID string) {
		for _, f := range children[folderID] {
			if visited[f.ID] {
				continue
			}
			visited[f.ID] = true
			child := &TreeNode{Type: NodeFolder, ID: f.ID, Name: f.Name, Parent: node}
			node.Children = append(node.Children, child)
			attach(child, f.ID)
		}

		folderRaps := rapsByFolder[folderID]
		SortRapsByRecent(folderRaps)
		for _, r := range folderRaps {
			node.Children = append(node.Children, &TreeNode{Type: NodeRap, ID: r.ID, Name: r.Title, Parent: node})
		}
	}
	attach(root, "")

	return root
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Find returns the node with the given type and ID, or nil
func (n *TreeNode) Find(t NodeType, id string) *TreeNode {
	if n.Type == t && n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(t, id); found != nil {
			return found
		}
	}
	return nil
}

// ExpandedFolders returns the IDs of all expanded folder nodes
func (n *TreeNode) ExpandedFolders() map[string]bool {
	out := make(map[string]bool)
	var walk func(node *TreeNode)
	walk = func(node *TreeNode) {
		if node.Type == NodeFolder && node.IsExpanded {
			out[node.ID] = true
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

// ExpandFolders expands every folder node whose ID is in ids
func (n *TreeNode) ExpandFolders(ids map[string]bool) {
	if n.Type == NodeFolder && ids[n.ID] {
		n.IsExpanded = true
	}
	for _, child := range n.Children {
		child.ExpandFolders(ids)
	}
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}
