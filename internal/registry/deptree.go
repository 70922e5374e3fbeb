package registry

import (
	"errors"
	"fmt"
	"io"
)

// ErrItemNotFound is returned when a tree root is not in the registry.
var ErrItemNotFound = errors.New("item not found")

// TreeNode is a registry item with its registry dependencies as children.
type TreeNode struct {
	Name     string
	Type     string
	Item     *Item
	Children []*TreeNode
	Deduped  bool // already expanded earlier in the tree
	Cycle    bool // reappears on its own ancestor path
	External bool // dependency on another registry, by URL
	Missing  bool // named dependency not present in the registry
}

// BuildTree resolves name in reg and recursively builds its dependency tree.
// Each item is expanded once; later occurrences are marked Deduped, and an
// occurrence on its own ancestor path is marked Cycle instead.
func BuildTree(reg *Registry, name string) (*TreeNode, error) {
	item, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	seen := make(map[string]bool)
	path := make(map[string]bool)
	return buildNode(reg, item, seen, path), nil
}

func buildNode(reg *Registry, item *Item, seen, path map[string]bool) *TreeNode {
	node := &TreeNode{
		Name: item.Name,
		Type: item.Type,
		Item: item,
	}

	if path[item.Name] {
		node.Cycle = true
		return node
	}
	if seen[item.Name] {
		node.Deduped = true
		return node
	}
	seen[item.Name] = true
	path[item.Name] = true
	defer delete(path, item.Name)

	for _, dep := range item.RegistryDependencies {
		if IsExternal(dep) {
			node.Children = append(node.Children, &TreeNode{Name: dep, External: true})
			continue
		}
		child, ok := reg.Lookup(dep)
		if !ok {
			node.Children = append(node.Children, &TreeNode{Name: dep, Missing: true})
			continue
		}
		node.Children = append(node.Children, buildNode(reg, child, seen, path))
	}

	return node
}

// FlattenTree returns the local items of the tree in install order
// (dependencies before dependents), each once.
func FlattenTree(root *TreeNode) []*Item {
	seen := make(map[string]bool)
	var result []*Item
	flattenRecursive(root, seen, &result)
	return result
}

func flattenRecursive(node *TreeNode, seen map[string]bool, result *[]*Item) {
	if node == nil || node.Item == nil || node.Deduped || node.Cycle || seen[node.Name] {
		return
	}

	for _, child := range node.Children {
		flattenRecursive(child, seen, result)
	}

	if !seen[node.Name] {
		seen[node.Name] = true
		*result = append(*result, node.Item)
	}
}

// PrintTree prints the dependency tree with box-drawing characters.
func PrintTree(w io.Writer, node *TreeNode, prefix string, isLast bool) {
	if node == nil {
		return
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	label := node.Name
	switch {
	case node.External:
		label += " (external)"
	case node.Missing:
		label += " (missing)"
	case node.Cycle:
		label += " (cycle)"
	case node.Deduped:
		label += " (deduped)"
	}

	if prefix == "" {
		fmt.Fprintf(w, "  %s\n", label)
	} else {
		fmt.Fprintf(w, "  %s%s%s\n", prefix, connector, label)
	}

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	} else {
		// Root children hang directly under the root label.
		childPrefix = " "
	}

	for i, child := range node.Children {
		PrintTree(w, child, childPrefix, i == len(node.Children)-1)
	}
}
