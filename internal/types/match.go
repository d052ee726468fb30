//nolint:revive // types is a standard Go package name pattern
package types

// MatchEvaluation is the result of scoring a finalized document against a
// target job description.
type MatchEvaluation struct {
	Score       int    `json:"match_rating"`
	Explanation string `json:"explanation"`
}
