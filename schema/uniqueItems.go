package schema

import (
	"fmt"
	"strings"

	ujson "github.com/alfmep/libujson"
)

// EvaluateUniqueItems checks if all elements in the array are unique when the "uniqueItems" property is set to true.
// According to the JSON Schema Draft 2020-12:
//   - If "uniqueItems" is false, the data always validates successfully.
//   - If "uniqueItems" is true, the data validates successfully only if all elements in the array are unique.
//
// This function only applies when the data is an array and "uniqueItems" is true.
//
// This method ensures that the array elements conform to the uniqueness constraints defined in the schema.
// If the uniqueness constraint is violated, it returns a EvaluationError detailing the issue.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-uniqueitems
func evaluateUniqueItems(schema *Schema, data []ujson.Value) *EvaluationError {
	// If uniqueItems is false or not set, no validation is needed
	if schema.UniqueItems == nil || !*schema.UniqueItems {
		return nil
	}

	// Determine the array length to validate
	maxLength := len(data)

	// If items is false, only validate items defined by prefixItems
	if schema.Items != nil && schema.Items.Boolean != nil && !*schema.Items.Boolean {
		if schema.PrefixItems != nil {
			maxLength = len(schema.PrefixItems)
			if maxLength > len(data) {
				maxLength = len(data)
			}
		} else {
			maxLength = 0
		}
	}

	// If there are no items to validate, return immediately
	if maxLength == 0 {
		return nil
	}

	items := data[:maxLength]

	// Pairwise comparison using the value model's order-insensitive-for-objects
	// equality (the notion enum/const/uniqueItems share).
	seen := make(map[int]bool)
	groups := make([][]int, 0)
	for i := 0; i < len(items); i++ {
		if seen[i] {
			continue
		}
		group := []int{i}
		for j := i + 1; j < len(items); j++ {
			if seen[j] {
				continue
			}
			if ujson.EqualForSchema(items[i], items[j]) {
				group = append(group, j)
				seen[j] = true
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}

	if len(groups) > 0 {
		var duplicates []string
		for _, group := range groups {
			oneBased := make([]string, len(group))
			for i, idx := range group {
				oneBased[i] = fmt.Sprint(idx + 1)
			}
			duplicates = append(duplicates, fmt.Sprintf("(%s)", strings.Join(oneBased, ", ")))
		}
		return NewEvaluationError("uniqueItems", "unique_items_mismatch", "Found duplicates at the following index groups: {duplicates}", map[string]any{
			"duplicates": strings.Join(duplicates, ", "),
		})
	}
	return nil
}
