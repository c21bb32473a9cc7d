package algorithms

import (
	"errors"
	"testing"

	"github.com/evobench/archmoea/pkg/moea/framework"
	"github.com/evobench/archmoea/pkg/moea/operators"
)

func TestNSGAIIRun(t *testing.T) {
	popSize := 40
	problem := newTestProblem(10, 20)

	nsga := NewNSGAII(popSize, 50, operators.Defaults())

	finalPop, err := nsga.Run(problem)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Basic validation
	if len(finalPop) != popSize {
		t.Errorf("Expected population size %d, got %d", popSize, len(finalPop))
	}

	bounds := problem.Bounds()
	for _, ind := range finalPop {
		for i, v := range ind.Variables {
			if v < bounds[i].L || v > bounds[i].H {
				t.Fatalf("final population violates bounds: variable %d = %d", i, v)
			}
		}
		if len(ind.Objectives) != problem.NumObjectives() {
			t.Fatalf("individual carries %d objectives, want %d", len(ind.Objectives), problem.NumObjectives())
		}
	}

	// Verify Pareto front characteristics
	fronts := framework.NonDominatedSort(finalPop)
	if len(fronts) == 0 {
		t.Fatal("No fronts found in final population")
	}

	// Check if first front is non-dominated
	firstFront := fronts[0]
	for i := 0; i < len(firstFront); i++ {
		for j := 0; j < len(firstFront); j++ {
			if i != j && framework.Dominates(firstFront[i], firstFront[j]) {
				t.Error("First front contains dominated solutions")
			}
		}
	}
}

func TestNSGAIIOffspringHasNoDuplicates(t *testing.T) {
	problem := newTestProblem(6, 9)
	nsga := NewNSGAII(30, 1, operators.Defaults())

	population, err := initialPopulation(problem, nsga.PopSize)
	if err != nil {
		t.Fatal(err)
	}
	offspring, err := nsga.makeOffspring(problem, population)
	if err != nil {
		t.Fatal(err)
	}

	seen := signatureSet(population)
	for _, child := range offspring {
		sig := signature(child.Variables)
		if _, dup := seen[sig]; dup {
			t.Fatalf("duplicate offspring %v", child.Variables)
		}
		seen[sig] = struct{}{}
	}
}

func TestNSGAIIPropagatesEvaluationError(t *testing.T) {
	nsga := NewNSGAII(10, 5, operators.Defaults())
	_, err := nsga.Run(failingProblem{newTestProblem(5, 9)})
	if !errors.Is(err, errEvaluation) {
		t.Errorf("Run error = %v, want wrapped evaluation failure", err)
	}
}

func TestCrowdingDistanceBoundaries(t *testing.T) {
	front := []framework.Individual{
		{Objectives: []float64{0, 4}},
		{Objectives: []float64{1, 3}},
		{Objectives: []float64{2, 2}},
		{Objectives: []float64{4, 0}},
	}

	CrowdingDistance(front)

	// After per-objective sorting the extremes hold infinite distance
	finite := 0
	for _, ind := range front {
		if ind.Distance < 1e308 {
			finite++
			if ind.Distance <= 0 {
				t.Errorf("interior point has non-positive crowding distance %v", ind.Distance)
			}
		}
	}
	if finite != 2 {
		t.Errorf("expected 2 interior points with finite distance, got %d", finite)
	}
}
