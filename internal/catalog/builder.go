package catalog

import "fmt"

// SchemaReflector is the slice of schema reflection the builder consumes.
// *schema.View satisfies it; tests can supply a handcrafted implementation.
type SchemaReflector interface {
	// CollectionNames returns the schema-declared collection names.
	CollectionNames() []string
	// ClassesEligibleForCollection returns the classes (subclass closure
	// included) whose instances may be stored in the named collection.
	ClassesEligibleForCollection(collectionName string) ([]string, error)
	// ClassSlotNames returns the named class's slots, inherited included.
	ClassSlotNames(className string) ([]string, error)
	// EffectiveRangeClassNames returns the classes the slot may point to,
	// after any_of and subclass-closure expansion. Scalar slots yield an
	// empty set; an undefined range class is an error.
	EffectiveRangeClassNames(slotName string) ([]string, error)
}

// Build derives the complete reference catalog from the schema: for every
// collection, every class eligible to live there, and every slot of that
// class, each class in the slot's effective range contributes one Reference
// per collection that may store it. Pure function of the schema; no database
// access.
func Build(reflector SchemaReflector) (*Catalog, error) {
	collectionNames := reflector.CollectionNames()

	// Invert collection eligibility so target classes can be mapped back to
	// the collections allowed to store them.
	collectionsByClass := make(map[string][]string)
	eligibleClassesByCollection := make(map[string][]string, len(collectionNames))
	for _, collectionName := range collectionNames {
		classNames, err := reflector.ClassesEligibleForCollection(collectionName)
		if err != nil {
			return nil, fmt.Errorf("resolving classes for collection %q: %w", collectionName, err)
		}
		eligibleClassesByCollection[collectionName] = classNames
		for _, className := range classNames {
			collectionsByClass[className] = append(collectionsByClass[className], collectionName)
		}
	}

	targetClassesBySlot := make(map[string][]string)
	var refs []Reference
	for _, collectionName := range collectionNames {
		for _, className := range eligibleClassesByCollection[collectionName] {
			slotNames, err := reflector.ClassSlotNames(className)
			if err != nil {
				return nil, fmt.Errorf("resolving slots of class %q: %w", className, err)
			}
			for _, slotName := range slotNames {
				targetClassNames, ok := targetClassesBySlot[slotName]
				if !ok {
					targetClassNames, err = reflector.EffectiveRangeClassNames(slotName)
					if err != nil {
						return nil, fmt.Errorf("resolving range of slot %q: %w", slotName, err)
					}
					targetClassesBySlot[slotName] = targetClassNames
				}
				for _, targetClassName := range targetClassNames {
					for _, targetCollectionName := range collectionsByClass[targetClassName] {
						refs = append(refs, Reference{
							SourceCollectionName: collectionName,
							SourceClassName:      className,
							SourceFieldName:      slotName,
							TargetCollectionName: targetCollectionName,
							TargetClassName:      targetClassName,
						})
					}
				}
			}
		}
	}
	return New(refs), nil
}
