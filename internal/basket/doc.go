// Package basket implements market-basket analysis over retail transactions.
//
// The package has three stages, each a pure function of its arguments:
//
//   - Encode turns (transaction, item, count) triples into a boolean
//     transaction x item incidence matrix.
//   - Mine extracts every frequent itemset from the matrix with FP-Growth.
//   - GenerateRules derives association rules from the frequent itemsets and
//     keeps those whose chosen metric meets a threshold.
//
// Results are freshly allocated on every call and never shared between runs,
// so independent callers may use the package concurrently. Mining the same
// matrix with the same parameters always returns the same itemsets in the same
// order. CachedMiner adds optional memoisation on top of Mine.
package basket
