package modulemanager

import (
	"fmt"
	"sort"
)

// dependencyNode represents a module in the dependency graph
type dependencyNode struct {
	module       Module
	dependencies []string
	visited      bool
	inStack      bool
}

// initializationOrder sorts modules so that every module comes after the
// modules it depends on. Independent modules keep ID order.
func initializationOrder(modules map[string]Module) ([]Module, error) {
	nodes := make(map[string]*dependencyNode, len(modules))
	ids := make([]string, 0, len(modules))
	for id, module := range modules {
		node := &dependencyNode{module: module}
		if provider, ok := module.(DependencyProvider); ok {
			node.dependencies = append([]string(nil), provider.Dependencies()...)
			sort.Strings(node.dependencies)
		}
		nodes[id] = node
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, depID := range nodes[id].dependencies {
			if _, ok := nodes[depID]; !ok {
				return nil, fmt.Errorf("module %s depends on non-existent module %s", id, depID)
			}
		}
	}

	order := make([]Module, 0, len(nodes))
	var visit func(id string, path []string) error
	visit = func(id string, path []string) error {
		node := nodes[id]
		if node.inStack {
			return fmt.Errorf("circular dependency detected: %v", append(path, id))
		}
		if node.visited {
			return nil
		}
		node.inStack = true
		for _, depID := range node.dependencies {
			if err := visit(depID, append(path, id)); err != nil {
				return err
			}
		}
		node.inStack = false
		node.visited = true
		order = append(order, node.module)
		return nil
	}

	for _, id := range ids {
		if err := visit(id, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}
