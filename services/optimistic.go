package services

// applyOptimistic snapshots target, applies mutate in memory and then persists it.
// If either step fails target is restored to the snapshot. Persist errors come back
// wrapped in ErrPersistence; mutate errors are returned as they are.
func applyOptimistic[T any](target *T, clone func(*T) *T, mutate func(*T) error, persist func(*T) error) error {
	snapshot := clone(target)

	if err := mutate(target); err != nil {
		*target = *snapshot
		return err
	}

	if err := persist(target); err != nil {
		*target = *snapshot
		return persistenceError("write rejected", err)
	}
	return nil
}
