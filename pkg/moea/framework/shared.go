package framework

// NonDominatedSort performs non-dominated sorting on the population
func NonDominatedSort(population []Individual) [][]Individual {
	var fronts [][]Individual
	dominated := make(map[int][]int)
	domCount := make([]int, len(population))

	// Calculate domination for each individual
	for i := 0; i < len(population); i++ {
		dominated[i] = []int{}
		for j := 0; j < len(population); j++ {
			if i != j {
				if Dominates(population[i], population[j]) {
					dominated[i] = append(dominated[i], j)
				} else if Dominates(population[j], population[i]) {
					domCount[i]++
				}
			}
		}
	}

	// Find first front
	currentFront := []Individual{}
	currentFrontIndices := []int{}
	for i := 0; i < len(population); i++ {
		if domCount[i] == 0 {
			population[i].Rank = 0
			currentFront = append(currentFront, population[i])
			currentFrontIndices = append(currentFrontIndices, i)
		}
	}
	fronts = append(fronts, currentFront)

	// Find subsequent fronts
	frontIndex := 0
	for len(currentFront) > 0 {
		nextFront := []Individual{}
		nextFrontIndices := []int{}
		for _, idx := range currentFrontIndices {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					population[dominatedIdx].Rank = frontIndex + 1
					nextFront = append(nextFront, population[dominatedIdx])
					nextFrontIndices = append(nextFrontIndices, dominatedIdx)
				}
			}
		}
		frontIndex++
		if len(nextFront) > 0 {
			fronts = append(fronts, nextFront)
		}
		currentFront = nextFront
		currentFrontIndices = nextFrontIndices
	}

	return fronts
}

// Dominates checks if individual a dominates individual b
func Dominates(a, b Individual) bool {
	better := false
	for i := 0; i < len(a.Objectives); i++ {
		if a.Objectives[i] > b.Objectives[i] {
			return false
		}
		if a.Objectives[i] < b.Objectives[i] {
			better = true
		}
	}
	return better
}

// ParetoFront extracts the first non-dominated front of the population as
// points in objective space.
func ParetoFront(population []Individual) []ObjectiveSpacePoint {
	if len(population) == 0 {
		return nil
	}
	fronts := NonDominatedSort(population)
	front := make([]ObjectiveSpacePoint, len(fronts[0]))
	for i, ind := range fronts[0] {
		point := make(ObjectiveSpacePoint, len(ind.Objectives))
		copy(point, ind.Objectives)
		front[i] = point
	}
	return front
}

// Variables collects the decision matrix of a population, one row per
// individual.
func Variables(population []Individual) [][]int {
	x := make([][]int, len(population))
	for i, ind := range population {
		row := make([]int, len(ind.Variables))
		copy(row, ind.Variables)
		x[i] = row
	}
	return x
}
