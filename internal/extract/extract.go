// Package extract turns raw xview page markup into typed field values.
// Every field is resolved by an ordered list of strategies over a versioned
// pattern table, with the page's JSON-LD as the last resort.
package extract
