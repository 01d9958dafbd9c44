package model

import (
	"fmt"
	"math"
)

// FeatureCount is the fixed width of the classifier's input.
const FeatureCount = 10

// Positions of each feature inside a FeatureVector. The order is part of the
// contract with the trained model and must only change together with it.
const (
	FeatureAge = iota
	FeatureSex
	FeatureBMI
	FeatureHighBP
	FeatureHighChol
	FeatureGenHlth
	FeaturePhysActivity
	FeatureFruits
	FeatureVeggies
	FeatureDiffWalk
)

// FeatureNames lists the feature names in vector order. Model artifacts
// declare the same list and are rejected at load time when it differs.
var FeatureNames = [FeatureCount]string{
	"Age",
	"Sex",
	"BMI",
	"HighBP",
	"HighChol",
	"GenHlth",
	"PhysActivity",
	"Fruits",
	"Veggies",
	"DiffWalk",
}

// FeatureVector is the ordered numeric encoding of one survey record.
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Validate rejects vectors carrying NaN or infinite values.
func (v FeatureVector) Validate() error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("feature %s is not a finite number: %v", FeatureNames[i], x)
		}
	}
	return nil
}

// FeatureVectorFromSlice rebuilds a vector from its slice form.
func FeatureVectorFromSlice(values []float64) (FeatureVector, error) {
	var v FeatureVector
	if len(values) != FeatureCount {
		return v, fmt.Errorf("feature vector must have %d values, got %d", FeatureCount, len(values))
	}
	copy(v[:], values)
	return v, nil
}
