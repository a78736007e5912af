package resolver

import "fmt"

func extractPrompt(query string) string {
	return fmt.Sprintf(`Extract structured info from: "%s"
Return valid JSON: {"state":"name","city":"name","days":3,"budget":10000,"style":"balanced"}`, query)
}

func destinationsPrompt(city, state string, n int) string {
	return fmt.Sprintf(`List %d tourist places in %s, %s.
Return JSON array: [{"name":"Place 1"},{"name":"Place 2"}]`, n, city, state)
}
