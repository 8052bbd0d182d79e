package llmcorrect

import "strings"

// anchor pairs the index of a common token in the original sequence with
// its index in the corrected sequence.
type anchor struct {
	orig int
	corr int
}

// verifyCorrectedText cross-references the token-level differences between
// original and corrected against the substitutions the model declared.
// Differing regions that match a declared substitution are kept; anything
// else is reverted to the original tokens. Returns the verified text and
// the confirmed corrections only.
func verifyCorrectedText(original, corrected string, corrections []Correction) (string, []Correction) {
	if original == corrected {
		return original, corrections
	}

	origTokens := strings.Fields(original)
	corrTokens := strings.Fields(corrected)
	anchors := tokenLCS(origTokens, corrTokens)

	type pair struct{ orig, corr string }
	declared := make(map[pair]Correction, len(corrections))
	for _, c := range corrections {
		declared[pair{canonToken(c.Original), canonToken(c.Corrected)}] = c
	}

	var out []string
	var verified []Correction

	// keepOrRevert resolves one differing region.
	keepOrRevert := func(orig, corr []string) {
		key := pair{
			canonToken(strings.Join(orig, " ")),
			canonToken(strings.Join(corr, " ")),
		}
		if c, ok := declared[key]; ok {
			out = append(out, corr...)
			verified = append(verified, c)
			return
		}
		out = append(out, orig...)
	}

	oi, ci := 0, 0
	for _, a := range anchors {
		if oi < a.orig || ci < a.corr {
			keepOrRevert(origTokens[oi:a.orig], corrTokens[ci:a.corr])
		}
		out = append(out, origTokens[a.orig])
		oi, ci = a.orig+1, a.corr+1
	}
	if oi < len(origTokens) || ci < len(corrTokens) {
		keepOrRevert(origTokens[oi:], corrTokens[ci:])
	}

	return strings.Join(out, " "), verified
}

// tokenLCS returns the longest common subsequence of the two token slices
// as ordered anchor pairs. Standard O(m·n) DP — transcripts are short.
func tokenLCS(a, b []string) []anchor {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return nil
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				dp[i][j] = dp[i-1][j-1] + 1
			case dp[i-1][j] >= dp[i][j-1]:
				dp[i][j] = dp[i-1][j]
			default:
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	if dp[m][n] == 0 {
		return nil
	}

	anchors := make([]anchor, dp[m][n])
	i, j, k := m, n, dp[m][n]-1
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			anchors[k] = anchor{orig: i - 1, corr: j - 1}
			i, j, k = i-1, j-1, k-1
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return anchors
}

// canonToken lowercases s and strips trailing punctuation so that spans
// like "press." match substitutions declared as "press".
func canonToken(s string) string {
	return strings.ToLower(strings.TrimRight(s, ".,;:!?\"')"))
}
