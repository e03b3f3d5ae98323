package main

// RecalcPlan is the evaluation order for one batch. Cells in Order can be
// evaluated front to back without reading a stale value from the same batch.
// Cyclic cells transitively depend on themselves (or on a cycle) and cannot
// be ordered; they are written as #CIRCULAR! instead of being evaluated.
type RecalcPlan struct {
	Order  []string
	Cyclic []string
}

// PlanRecalculation topologically orders the recomputation set of a batch:
// the edited cells plus their transitive dependants. readsFrom reports the
// reference set of a cell's current formula; references outside the set are
// already up to date and do not constrain the order. Ties keep the input
// order, so independent edits are evaluated in the order they were given.
func PlanRecalculation(cellIds []string, readsFrom func(cellId string) []string) RecalcPlan {
	inSet := make(map[string]bool, len(cellIds))
	for _, cellId := range cellIds {
		inSet[cellId] = true
	}

	pending := make(map[string]int, len(cellIds))
	waiting := map[string][]string{}
	for _, cellId := range cellIds {
		count := 0
		for _, reference := range readsFrom(cellId) {
			if inSet[reference] {
				count++
				waiting[reference] = append(waiting[reference], cellId)
			}
		}
		pending[cellId] = count
	}

	queue := make([]string, 0, len(cellIds))
	for _, cellId := range cellIds {
		if pending[cellId] == 0 {
			queue = append(queue, cellId)
		}
	}

	plan := RecalcPlan{Order: make([]string, 0, len(cellIds))}
	for len(queue) > 0 {
		cellId := queue[0]
		queue = queue[1:]
		plan.Order = append(plan.Order, cellId)

		for _, waitingCellId := range waiting[cellId] {
			pending[waitingCellId]--
			if pending[waitingCellId] == 0 {
				queue = append(queue, waitingCellId)
			}
		}
	}

	if len(plan.Order) < len(cellIds) {
		for _, cellId := range cellIds {
			if pending[cellId] > 0 {
				plan.Cyclic = append(plan.Cyclic, cellId)
			}
		}
	}

	return plan
}
