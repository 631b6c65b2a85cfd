package lsx

import "encoding/xml"

// Save is the root element of every LSX document.
type Save struct {
	XMLName xml.Name `xml:"save"`
	Version Version  `xml:"version"`
	Regions []Region `xml:"region"`
}

// Version is the LSX format header.
type Version struct {
	Major    int `xml:"major,attr"`
	Minor    int `xml:"minor,attr"`
	Revision int `xml:"revision,attr"`
	Build    int `xml:"build,attr"`
}

// Region is a named top-level section.
type Region struct {
	ID    string `xml:"id,attr"`
	Nodes []Node `xml:"node"`
}

// Node is one element of a region tree.
type Node struct {
	ID         string      `xml:"id,attr"`
	Attributes []Attribute `xml:"attribute"`
	Children   []Node      `xml:"children>node"`
}

// Attribute is a typed value attached to a node.
type Attribute struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
	Type  string `xml:"type,attr"`
}

// FindNode returns the first node with the given id, searching every region depth-first in
// document order.
func (s *Save) FindNode(id string) *Node {
	for i := range s.Regions {
		for j := range s.Regions[i].Nodes {
			if n := s.Regions[i].Nodes[j].find(id); n != nil {
				return n
			}
		}
	}
	return nil
}

func (n *Node) find(id string) *Node {
	if n.ID == id {
		return n
	}
	for i := range n.Children {
		if found := n.Children[i].find(id); found != nil {
			return found
		}
	}
	return nil
}

// Attribute returns the first attribute with the given id at or below n. A node's own attributes
// precede its children in the document, so they are checked first.
func (n *Node) Attribute(id string) (Attribute, bool) {
	for _, a := range n.Attributes {
		if a.ID == id {
			return a, true
		}
	}
	for i := range n.Children {
		if a, ok := n.Children[i].Attribute(id); ok {
			return a, true
		}
	}
	return Attribute{}, false
}
