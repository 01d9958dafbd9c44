package ml

import (
	"fmt"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
)

type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	proba     []float64 // nil for split nodes
}

// treeEnsemble averages the leaf class distributions of every tree, the way
// a random forest computes class probabilities.
type treeEnsemble struct {
	trees      [][]treeNode
	numClasses int
}

func newTreeEnsemble(defs []treeSpec, numClasses int) (*treeEnsemble, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: tree ensemble has no trees", ErrInvalidArtifact)
	}

	e := &treeEnsemble{trees: make([][]treeNode, len(defs)), numClasses: numClasses}
	for t, def := range defs {
		nodes, err := buildTree(def, numClasses)
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, t, err)
		}
		e.trees[t] = nodes
	}
	return e, nil
}

// buildTree requires children to follow their parent so that every walk
// terminates.
func buildTree(def treeSpec, numClasses int) ([]treeNode, error) {
	if len(def.Nodes) == 0 {
		return nil, fmt.Errorf("no nodes")
	}

	nodes := make([]treeNode, len(def.Nodes))
	for i, n := range def.Nodes {
		switch {
		case n.Feature != nil && len(n.Value) == 0:
			if *n.Feature < 0 || *n.Feature >= model.FeatureCount {
				return nil, fmt.Errorf("node %d: feature index %d out of range", i, *n.Feature)
			}
			if n.Left <= i || n.Left >= len(def.Nodes) || n.Right <= i || n.Right >= len(def.Nodes) {
				return nil, fmt.Errorf("node %d: children %d/%d out of range", i, n.Left, n.Right)
			}
			nodes[i] = treeNode{feature: *n.Feature, threshold: n.Threshold, left: n.Left, right: n.Right}
		case n.Feature == nil && len(n.Value) > 0:
			if len(n.Value) != numClasses {
				return nil, fmt.Errorf("node %d: leaf has %d values for %d classes", i, len(n.Value), numClasses)
			}
			nodes[i] = treeNode{proba: normalize(n.Value)}
		default:
			return nil, fmt.Errorf("node %d: must be either a split or a leaf", i)
		}
	}
	return nodes, nil
}

func normalize(values []float64) []float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if sum > 0 {
			out[i] = v / sum
		}
	}
	return out
}

func (e *treeEnsemble) classify(x []float64) int {
	avg := make([]float64, e.numClasses)
	for _, nodes := range e.trees {
		leaf := walk(nodes, x)
		for c, p := range leaf {
			avg[c] += p
		}
	}
	return argmax(avg)
}

func walk(nodes []treeNode, x []float64) []float64 {
	i := 0
	for nodes[i].proba == nil {
		if x[nodes[i].feature] <= nodes[i].threshold {
			i = nodes[i].left
		} else {
			i = nodes[i].right
		}
	}
	return nodes[i].proba
}
