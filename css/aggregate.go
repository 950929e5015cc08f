package css

// SelectorInfo is the merged state of all rules sharing one normalized
// selector.
type SelectorInfo struct {
	FirstIndex int               // token index of the first occurrence
	LastIndex  int               // token index of the last occurrence
	Selector   string            // literal selector text of the last occurrence
	Order      []string          // property names in first-seen order
	Values     map[string]string // property name -> most recent value
	Count      int               // number of occurrences
}

// Declarations returns the merged declarations in first-seen property order.
func (si *SelectorInfo) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(si.Order))
	for _, prop := range si.Order {
		decls = append(decls, Declaration{Property: prop, Value: si.Values[prop]})
	}
	return decls
}

// Selectors maps normalized selectors to their merged state.
type Selectors map[string]*SelectorInfo

// Aggregate folds all rule tokens of the stylesheet into per selector state.
// Later values of a property overwrite earlier ones while the property keeps
// the position of its first appearance.
func (s *Stylesheet) Aggregate() Selectors {
	selectors := make(Selectors)
	for idx, t := range s.Tokens {
		if t.Rule == nil {
			continue
		}
		key := NormalizeSelector(t.Rule.Selector)
		info, ok := selectors[key]
		if !ok {
			info = &SelectorInfo{
				FirstIndex: idx,
				Values:     make(map[string]string),
			}
			selectors[key] = info
		}
		info.LastIndex = idx
		info.Selector = t.Rule.Selector
		info.Count++

		for _, d := range ParseDeclarations(t.Rule.Body) {
			if _, seen := info.Values[d.Property]; !seen {
				info.Order = append(info.Order, d.Property)
			}
			info.Values[d.Property] = d.Value
		}
	}
	return selectors
}
