package facet

import (
	"sort"
	"strings"

	"github.com/ramon-reichert/photoshelf/internal/library"
)

// FolderNode is one node of the nested folder tree.
type FolderNode struct {
	Name       string
	Path       string
	Children   []*FolderNode
	PhotoCount int // photos in this folder or any folder below it
}

// BuildTree arranges the collection's folders into a tree rooted at the
// import root. Photos sitting directly at the root appear only in the root
// node's count.
func BuildTree(photos []library.Photo) *FolderNode {
	root := &FolderNode{}
	index := map[string]*FolderNode{"": root}

	for _, p := range photos {
		root.PhotoCount++

		folder, ok := folderOf(p.Metadata.Path)
		if !ok {
			continue
		}

		segments := strings.Split(folder, "/")
		prefix := ""
		for _, seg := range segments {
			parent := index[prefix]
			if prefix == "" {
				prefix = seg
			} else {
				prefix = prefix + "/" + seg
			}

			node, ok := index[prefix]
			if !ok {
				node = &FolderNode{Name: seg, Path: prefix}
				index[prefix] = node
				parent.Children = append(parent.Children, node)
			}
			node.PhotoCount++
		}
	}

	sortChildren(root)
	return root
}

func sortChildren(n *FolderNode) {
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].Name < n.Children[j].Name
	})
	for _, c := range n.Children {
		sortChildren(c)
	}
}
