package module

import "sort"

// GetDependencyGraph returns each loaded module's direct dependency
// list, keyed by canonical module name — the module DAG the backend
// contract exposes for deterministic emission ordering.
func (m *Manager) GetDependencyGraph() map[string][]string {
	graph := make(map[string][]string, len(m.cache))
	for name, mod := range m.cache {
		graph[name] = append([]string{}, mod.Deps...)
	}
	return graph
}

// TopologicalSort orders every loaded module so each appears after all
// of its dependencies, via recursive post-order DFS. The module graph
// is guaranteed acyclic by Load's circular-dependency detection, so
// this never needs cycle handling of its own.
func (m *Manager) TopologicalSort() []string {
	graph := m.GetDependencyGraph()
	visited := make(map[string]bool, len(graph))
	var order []string

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, dep := range graph[name] {
			visit(dep)
		}
		order = append(order, name)
	}

	names := make([]string, 0, len(graph))
	for name := range graph {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic iteration order, independent of map order
	for _, name := range names {
		visit(name)
	}
	return order
}
