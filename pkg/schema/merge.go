package schema

// =============================================================================
// Multi-Source Merging
// =============================================================================

// Merge combines schemas from multiple sources (for example a live database
// plus one or more SQL files) into a single Schema.
//
// Tables are deduplicated by name: the first occurrence wins and later
// duplicates are dropped, with relations that referenced a dropped table ID
// rewritten to point at the surviving table. Relations are deduplicated by
// endpoint tuple (source table, source column, target table, target column).
//
// Merge is deterministic: output order follows input order across the given
// schemas. The inputs are not mutated.
func Merge(schemas ...*Schema) *Schema {
	out := &Schema{Tables: []Table{}, Relations: []Relation{}}

	// table name -> surviving table ID
	byName := make(map[string]string)
	// dropped table ID -> surviving table ID
	remap := make(map[string]string)

	for _, s := range schemas {
		if s == nil {
			continue
		}
		for _, t := range s.Tables {
			if keep, ok := byName[t.Name]; ok {
				if t.ID != keep {
					remap[t.ID] = keep
				}
				continue
			}
			byName[t.Name] = t.ID
			out.Tables = append(out.Tables, t)
		}
	}

	seen := make(map[[4]string]bool)
	for _, s := range schemas {
		if s == nil {
			continue
		}
		for _, r := range s.Relations {
			if to, ok := remap[r.SourceTableID]; ok {
				r.SourceTableID = to
			}
			if to, ok := remap[r.TargetTableID]; ok {
				r.TargetTableID = to
			}
			key := [4]string{r.SourceTableID, r.SourceColumn, r.TargetTableID, r.TargetColumn}
			if seen[key] {
				continue
			}
			seen[key] = true
			out.Relations = append(out.Relations, r)
		}
	}

	return out
}
