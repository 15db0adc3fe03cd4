package model

import "strings"

// NodeIndex returns the index of the node named name, or -1.
func (m *Model) NodeIndex(name string) int {
	for i, n := range m.Nodes {
		if n.Name == name {
			return i
		}
	}
	return -1
}

// InletList returns the index of the inlet list named name, or -1.
func (m *Model) InletList(name string) int {
	return listIndex(m.InletLists, name)
}

// OutletList returns the index of the outlet list named name, or -1.
func (m *Model) OutletList(name string) int {
	return listIndex(m.OutletLists, name)
}

func listIndex(lists []SegmentList, name string) int {
	for i, l := range lists {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// MaterialIndex returns the index of the material named name, or -1.
func (m *Model) MaterialIndex(name string) int {
	for i, mat := range m.Materials {
		if mat.Name == name {
			return i
		}
	}
	return -1
}

// DataTableIndex returns the index of the data table named name, or -1.
// Data-table names are matched case-insensitively.
func (m *Model) DataTableIndex(name string) int {
	for i, d := range m.DataTables {
		if strings.EqualFold(d.Name, name) {
			return i
		}
	}
	return -1
}
