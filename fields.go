package domainconv

import "sort"

// ExtractFieldPaths collects every string-typed field slot from every
// condition in the domain, nested sub-domains included. Non-string field
// slots (tautology sentinels) and logical-operator markers are ignored.
// The result is deduplicated and sorted.
func ExtractFieldPaths(domain Domain) []string {
	set := make(map[string]struct{})
	collectFieldPaths(domain, set)

	paths := make([]string, 0, len(set))
	for path := range set {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func collectFieldPaths(domain Domain, set map[string]struct{}) {
	for _, element := range domain {
		switch el := element.(type) {
		case Condition:
			if len(el) >= 3 {
				if field, ok := el[0].(*StringLiteral); ok {
					set[field.Val] = struct{}{}
				}
			}
		case Domain:
			collectFieldPaths(el, set)
		}
	}
}
