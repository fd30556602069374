package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is one element of a prefab transform hierarchy. A node owns its
// children; mesh and material are shared handles owned by an asset cache.
type Node struct {
	Name      string
	Transform Transform
	Mesh      *Mesh
	Material  *Material
	// Children is read-only outside this package. Use AddChild and
	// RemoveChild, which keep the parent link GlobalMatrix walks.
	Children []*Node
	Visible  bool

	// DistanceToCamera is written by the renderer during categorization and
	// is only meaningful for transparent nodes within the current frame.
	DistanceToCamera float32

	parent *Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: NewTransform(),
		Visible:   true,
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

// AddChild appends child, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// LocalMatrix is the node transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	return n.Transform.Matrix()
}

// GlobalMatrix composes the ancestor chain. It is recomputed on every call.
func (n *Node) GlobalMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Renderable reports whether the node carries both a mesh and a material.
func (n *Node) Renderable() bool {
	return n.Mesh != nil && n.Material != nil
}

// Walk visits n and its descendants depth-first, parent before children.
// Returning false from fn stops descent into that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Clone deep-copies the transform hierarchy. Mesh and material handles are
// shared with the original.
func (n *Node) Clone() *Node {
	cp := &Node{
		Name:      n.Name,
		Transform: n.Transform,
		Mesh:      n.Mesh,
		Material:  n.Material,
		Visible:   n.Visible,
	}
	for _, c := range n.Children {
		cp.AddChild(c.Clone())
	}
	return cp
}
